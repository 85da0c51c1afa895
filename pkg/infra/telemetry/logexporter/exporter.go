package logexporter

import (
	"context"
	"fmt"

	"github.com/NeuralTrust/TrustChat/pkg/domain/telemetry"
	"github.com/NeuralTrust/TrustChat/pkg/infra/metrics/metric_events"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
)

const ExporterName = "log"

type Config struct {
	Level        string `mapstructure:"level"`
	IncludeInput bool   `mapstructure:"include_input"`
}

// Exporter writes audit events through logrus. Useful when no broker is
// available.
type Exporter struct {
	cfg    Config
	level  logrus.Level
	logger *logrus.Logger
}

func NewLogExporter(logger *logrus.Logger) *Exporter {
	return &Exporter{logger: logger, level: logrus.InfoLevel}
}

func (e *Exporter) Name() string {
	return ExporterName
}

func parse(settings map[string]interface{}) (Config, logrus.Level, error) {
	var conf Config
	if err := mapstructure.WeakDecode(settings, &conf); err != nil {
		return conf, 0, fmt.Errorf("invalid log exporter config: %w", err)
	}
	if conf.Level == "" {
		return conf, logrus.InfoLevel, nil
	}
	level, err := logrus.ParseLevel(conf.Level)
	if err != nil {
		return conf, 0, fmt.Errorf("invalid log exporter level: %w", err)
	}
	return conf, level, nil
}

func (e *Exporter) ValidateConfig(settings map[string]interface{}) error {
	_, _, err := parse(settings)
	return err
}

func (e *Exporter) WithSettings(settings map[string]interface{}) (telemetry.Exporter, error) {
	conf, level, err := parse(settings)
	if err != nil {
		return nil, err
	}
	return &Exporter{cfg: conf, level: level, logger: e.logger}, nil
}

func (e *Exporter) Handle(_ context.Context, evt *metric_events.Event) error {
	fields := logrus.Fields{
		"trace_id":   evt.TraceID,
		"type":       evt.Type,
		"user_id":    evt.UserID,
		"risk_level": evt.RiskLevel,
		"confidence": evt.Confidence,
		"latency_ms": evt.Latency,
	}
	if evt.MessageCount > 0 {
		fields["message_count"] = evt.MessageCount
	}
	if e.cfg.IncludeInput {
		fields["input"] = evt.Input
	}
	if evt.Error != "" {
		fields["error"] = evt.Error
	}
	e.logger.WithFields(fields).Log(e.level, "audit event")
	return nil
}

func (e *Exporter) Close() {}
