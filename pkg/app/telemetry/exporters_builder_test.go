package telemetry_test

import (
	"testing"

	appTelemetry "github.com/NeuralTrust/TrustChat/pkg/app/telemetry"
	domain "github.com/NeuralTrust/TrustChat/pkg/domain/telemetry"
	factory "github.com/NeuralTrust/TrustChat/pkg/infra/telemetry"
	"github.com/NeuralTrust/TrustChat/pkg/infra/telemetry/kafka"
	"github.com/NeuralTrust/TrustChat/pkg/infra/telemetry/logexporter"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBuilder() appTelemetry.ExportersBuilder {
	logger := logrus.New()
	return appTelemetry.NewExportersBuilder(factory.NewExporterLocator(
		factory.WithExporter(kafka.NewKafkaExporter(logger)),
		factory.WithExporter(logexporter.NewLogExporter(logger)),
	))
}

func TestExportersBuilder_Validate(t *testing.T) {
	b := newBuilder()

	assert.NoError(t, b.Validate(nil))
	assert.NoError(t, b.Validate([]domain.ExporterConfig{{Name: "log"}}))
	assert.ErrorContains(t, b.Validate([]domain.ExporterConfig{{Name: "log"}, {Name: "log"}}), "duplicate telemetry exporter")
	assert.ErrorContains(t, b.Validate([]domain.ExporterConfig{{Name: "kafka", Settings: map[string]interface{}{"host": "k"}}}), "kafka port is required")
	assert.ErrorContains(t, b.Validate([]domain.ExporterConfig{{Name: "datadog"}}), "unknown exporter")
}

func TestExportersBuilder_Build(t *testing.T) {
	b := newBuilder()

	exporters, err := b.Build([]domain.ExporterConfig{{Name: "log", Settings: map[string]interface{}{"level": "debug"}}})
	require.NoError(t, err)
	require.Len(t, exporters, 1)
	assert.Equal(t, "log", exporters[0].Name())

	_, err = b.Build([]domain.ExporterConfig{{Name: "log"}, {Name: "kafka"}})
	assert.Error(t, err)
}
