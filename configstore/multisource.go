package configstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/certomancer/certomancer-go/interfaces"
)

// MultiSource implements interfaces.ConfigSource over an ordered list of
// sources with fallback: a document is served by the first available source
// that holds it.
type MultiSource struct {
	sources []interfaces.ConfigSource
	log     *slog.Logger
}

// NewMultiSource creates a new multi-source search path.
func NewMultiSource(sources []interfaces.ConfigSource, logger *slog.Logger) *MultiSource {
	if logger == nil {
		logger = slog.Default()
	}

	return &MultiSource{
		sources: sources,
		log:     logger,
	}
}

// Fetch retrieves a document from the first source that has it. If every
// source misses, ErrConfigNotFound is returned; other failures are collected
// and reported together.
func (m *MultiSource) Fetch(ctx context.Context, name interfaces.ConfigName) ([]byte, error) {
	start := time.Now()
	var errs []error
	allNotFound := true

	for _, source := range m.sources {
		if !source.Available(ctx) {
			m.log.Debug("Config source unavailable",
				slog.String("source_name", source.Name()),
				slog.String("config_name", name.String()))
			allNotFound = false
			continue
		}

		data, err := source.Fetch(ctx, name)
		if err == nil {
			m.log.Debug("Fetched config document",
				slog.String("source_name", source.Name()),
				slog.String("config_name", name.String()),
				slog.Duration("duration", time.Since(start)))
			return data, nil
		}

		if !errors.Is(err, interfaces.ErrConfigNotFound) {
			allNotFound = false
		}
		errs = append(errs, fmt.Errorf("%s: %w", source.Name(), err))
		m.log.Debug("Failed to fetch from config source",
			slog.String("source_name", source.Name()),
			slog.String("config_name", name.String()),
			"err", err)
	}

	if allNotFound {
		return nil, fmt.Errorf("%w: %s", interfaces.ErrConfigNotFound, name)
	}

	m.log.Error("All config sources failed",
		slog.String("config_name", name.String()),
		slog.Int("failed_sources", len(errs)),
		slog.Duration("duration", time.Since(start)))

	return nil, fmt.Errorf("all config sources failed to fetch %s: %v", name, errs)
}

// Available checks if any source is available.
func (m *MultiSource) Available(ctx context.Context) bool {
	for _, source := range m.sources {
		if source.Available(ctx) {
			return true
		}
	}
	return false
}

// Name returns the name of this source.
func (m *MultiSource) Name() string {
	return "multi-source"
}

// LocationURI returns a combined URI listing every underlying source.
func (m *MultiSource) LocationURI() string {
	var locations []string
	for _, source := range m.sources {
		locations = append(locations, source.LocationURI())
	}
	return "multi:[" + strings.Join(locations, ",") + "]"
}
