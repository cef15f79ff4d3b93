package config

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	API    APIConfig    `mapstructure:"api"`
	Fetch  FetchConfig  `mapstructure:"fetch"`
	Logger LoggerConfig `mapstructure:"logger"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// APIConfig describes the remote timelines service.
type APIConfig struct {
	Endpoint  string  `mapstructure:"endpoint"`
	APIKey    string  `mapstructure:"api_key"`
	QPS       float64 `mapstructure:"qps"`
	TimeoutMs int     `mapstructure:"timeout_ms"`
}

// FetchConfig carries fetch defaults applied when a request leaves the
// corresponding parameter unset.
type FetchConfig struct {
	BatchSize int    `mapstructure:"batch_size"`
	Geo       string `mapstructure:"geo"`
	GeoLevel  string `mapstructure:"geo_level"`
	Frequency string `mapstructure:"frequency"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	TimeFormat string `mapstructure:"time_format"`
}

type Manager interface {
	Load(configPath string) (*Config, error)
	Reload() error
	GetConfig() *Config
}
