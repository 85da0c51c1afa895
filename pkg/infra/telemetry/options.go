package telemetry

import "github.com/NeuralTrust/TrustChat/pkg/domain/telemetry"

type ExporterLocatorOption func(*ExporterLocator)

// WithExporter registers exporter under its own name.
func WithExporter(exporter telemetry.Exporter) ExporterLocatorOption {
	return func(el *ExporterLocator) {
		el.exporters[exporter.Name()] = exporter
	}
}
