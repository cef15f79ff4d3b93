package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"trends-go/pkg/trends"
)

type manager struct {
	mu     sync.RWMutex
	config *Config
	viper  *viper.Viper
}

func NewManager() Manager {
	return &manager{
		viper: viper.New(),
	}
}

func (m *manager) Load(configPath string) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setupViper(configPath)

	if err := m.viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config, err := m.unmarshal()
	if err != nil {
		return nil, err
	}

	m.config = config
	return config, nil
}

func (m *manager) Reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config == nil {
		return fmt.Errorf("config not loaded")
	}

	if err := m.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}

	config, err := m.unmarshal()
	if err != nil {
		return err
	}

	m.config = config
	return nil
}

func (m *manager) GetConfig() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

func (m *manager) setupViper(configPath string) {
	m.viper.SetConfigFile(configPath)

	m.viper.SetEnvPrefix("TRENDS")
	m.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.viper.AutomaticEnv()
}

func (m *manager) unmarshal() (*Config, error) {
	var config Config
	if err := m.viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.API.Endpoint == "" {
		return fmt.Errorf("api endpoint cannot be empty")
	}

	if config.API.QPS < 0 {
		return fmt.Errorf("api qps cannot be negative")
	}

	if config.Fetch.BatchSize < 0 || config.Fetch.BatchSize > trends.MaxTermsPerRequest {
		return fmt.Errorf("batch_size must be between 1 and %d", trends.MaxTermsPerRequest)
	}

	if config.Fetch.GeoLevel != "" && !trends.GeoLevel(config.Fetch.GeoLevel).Valid() {
		return fmt.Errorf("invalid geo_level: %q", config.Fetch.GeoLevel)
	}

	return nil
}
