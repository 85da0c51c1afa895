package telemetry

import (
	"fmt"

	domain "github.com/NeuralTrust/TrustChat/pkg/domain/telemetry"
	factory "github.com/NeuralTrust/TrustChat/pkg/infra/telemetry"
)

type ExportersBuilder interface {
	Validate(configs []domain.ExporterConfig) error
	Build(configs []domain.ExporterConfig) ([]domain.Exporter, error)
}

type exportersBuilder struct {
	locator *factory.ExporterLocator
}

func NewExportersBuilder(locator *factory.ExporterLocator) ExportersBuilder {
	return &exportersBuilder{
		locator: locator,
	}
}

func (b *exportersBuilder) Validate(configs []domain.ExporterConfig) error {
	seen := make(map[string]struct{}, len(configs))
	for _, config := range configs {
		if _, dup := seen[config.Name]; dup {
			return fmt.Errorf("duplicate telemetry exporter: %s", config.Name)
		}
		seen[config.Name] = struct{}{}
		if err := b.locator.ValidateExporter(config); err != nil {
			return err
		}
	}
	return nil
}

// Build validates every config first, then instantiates the exporters. On
// failure, exporters already built are closed.
func (b *exportersBuilder) Build(configs []domain.ExporterConfig) ([]domain.Exporter, error) {
	if err := b.Validate(configs); err != nil {
		return nil, err
	}
	exporters := make([]domain.Exporter, 0, len(configs))
	for _, config := range configs {
		exporter, err := b.locator.GetExporter(config)
		if err != nil {
			for _, e := range exporters {
				e.Close()
			}
			return nil, fmt.Errorf("failed to build exporter %s: %w", config.Name, err)
		}
		exporters = append(exporters, exporter)
	}
	return exporters, nil
}
