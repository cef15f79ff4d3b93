package handler

import (
	"bytes"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"trends-go/internal/config"
	"trends-go/internal/service"
	"trends-go/pkg/dateparse"
	"trends-go/pkg/export"
	"trends-go/pkg/logger"
	"trends-go/pkg/trends"
)

// Controller exposes the volume fetcher over HTTP.
type Controller struct {
	volumes  service.VolumeService
	defaults config.FetchConfig
	exporter *export.CSVExporter
	log      *logger.Logger
}

func NewController(volumes service.VolumeService, defaults config.FetchConfig) *Controller {
	return &Controller{
		volumes:  volumes,
		defaults: defaults,
		exporter: export.NewCSVExporter(),
		log:      logger.GetLogger().WithField("component", "handler"),
	}
}

// Register mounts the controller's routes on app.
func (c *Controller) Register(app *fiber.App) {
	app.Get("/health", c.Health)
	app.Get("/api/v1/volumes", c.Volumes)
}

func (c *Controller) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// Volumes serves the dense date-by-term table for the requested terms as
// CSV (default) or JSON.
func (c *Controller) Volumes(ctx *fiber.Ctx) error {
	terms := splitTerms(ctx.Query("terms"))
	if len(terms) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "terms parameter is required")
	}

	req := trends.FetchRequest{
		Terms:     terms,
		StartDate: ctx.Query("start"),
		EndDate:   ctx.Query("end"),
		Geo:       ctx.Query("geo", c.defaults.Geo),
		GeoLevel:  trends.GeoLevel(ctx.Query("geo_level", c.defaults.GeoLevel)),
		Frequency: trends.Frequency(ctx.Query("frequency", c.defaults.Frequency)),
	}

	table, err := c.volumes.FetchVolumes(ctx.UserContext(), req)
	if err != nil {
		switch {
		case errors.Is(err, trends.ErrInvalidGeoLevel):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case errors.Is(err, trends.ErrMissingAPIKey):
			return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
		case errors.Is(err, dateparse.ErrInvalidFormat):
			c.log.WithError(err).Error("Upstream returned unparseable dates")
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		default:
			c.log.WithError(err).Error("Volume fetch failed")
			return fiber.NewError(fiber.StatusBadGateway, "upstream fetch failed")
		}
	}

	if ctx.Query("format", "csv") == "json" {
		return ctx.JSON(table)
	}

	var buf bytes.Buffer
	if err := c.exporter.Write(&buf, table.Records()); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	ctx.Set(fiber.HeaderContentType, "text/csv")
	return ctx.Send(buf.Bytes())
}

// splitTerms splits a comma-separated terms parameter. Blank entries are
// dropped; duplicates are kept so output columns stay positional.
func splitTerms(raw string) []string {
	parts := strings.Split(raw, ",")
	terms := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			terms = append(terms, part)
		}
	}
	return terms
}
