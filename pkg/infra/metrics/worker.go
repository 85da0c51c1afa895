package metrics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/NeuralTrust/TrustChat/pkg/domain/telemetry"
	"github.com/NeuralTrust/TrustChat/pkg/infra/metrics/metric_events"
	"github.com/NeuralTrust/TrustChat/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
)

const (
	DefaultQueueSize     = 1000
	DefaultExportTimeout = 10 * time.Second
)

type Config struct {
	QueueSize     int
	ExportTimeout time.Duration
	// ExtraParams are stamped on every exported event.
	ExtraParams map[string]string
}

//go:generate mockery --name=Worker --dir=. --output=./mocks --filename=worker_mock.go --case=underscore --with-expecter
type Worker interface {
	Shutdown()
	StartWorkers(n int)
	Process(evt *metric_events.Event)
}

type worker struct {
	logger    *logrus.Logger
	exporters []telemetry.Exporter
	cfg       Config
	taskChan  chan func()
	mu        sync.RWMutex
	closed    bool
	wg        sync.WaitGroup
}

// NewWorker owns exporters and closes them on Shutdown.
func NewWorker(logger *logrus.Logger, exporters []telemetry.Exporter, cfg Config) Worker {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	if cfg.ExportTimeout <= 0 {
		cfg.ExportTimeout = DefaultExportTimeout
	}
	return &worker{
		logger:    logger,
		exporters: exporters,
		cfg:       cfg,
		taskChan:  make(chan func(), cfg.QueueSize),
	}
}

// Shutdown stops accepting events, drains the queue and closes exporters.
func (m *worker) Shutdown() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	close(m.taskChan)
	m.mu.Unlock()

	m.logger.Info("shutting down metrics workers")
	m.wg.Wait()
	for _, exporter := range m.exporters {
		exporter.Close()
	}
	m.logger.Info("metrics workers stopped")
}

func (m *worker) StartWorkers(n int) {
	m.logger.WithField("workers", n).Info("starting metrics workers")
	for i := 0; i < n; i++ {
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			for task := range m.taskChan {
				task()
			}
		}()
	}
}

func (m *worker) Process(evt *metric_events.Event) {
	if evt == nil {
		return
	}
	if len(m.cfg.ExtraParams) > 0 {
		params := make(map[string]string, len(m.cfg.ExtraParams)+len(evt.Params))
		for k, v := range m.cfg.ExtraParams {
			params[k] = v
		}
		for k, v := range evt.Params {
			params[k] = v
		}
		evt.Params = params
	}

	m.enqueueTask(func() {
		m.registryMetricsToPrometheus(evt)
	}, evt)

	if len(m.exporters) > 0 {
		m.enqueueTask(func() {
			m.registryMetricsToExporters(evt)
		}, evt)
	}
}

func (m *worker) registryMetricsToPrometheus(evt *metric_events.Event) {
	risk := evt.RiskLevel
	if risk == "" {
		risk = "none"
	}
	prometheus.AnalysisTotal.WithLabelValues(evt.Type, risk).Inc()

	if !prometheus.Config.EnableSourceMetrics {
		return
	}
	for _, source := range evt.Sources {
		prometheus.SourceLatency.WithLabelValues(source.Name).Observe(float64(source.LatencyMs))
		if source.Failed {
			prometheus.SourceFailures.WithLabelValues(source.Name).Inc()
		}
	}
}

func (m *worker) registryMetricsToExporters(evt *metric_events.Event) {
	var failedExporters []string
	for _, exporter := range m.exporters {
		ctx, cancel := context.WithTimeout(context.Background(), m.cfg.ExportTimeout)
		err := exporter.Handle(ctx, evt)
		cancel()
		if err != nil {
			m.logger.WithFields(logrus.Fields{
				"trace_id": evt.TraceID,
				"exporter": exporter.Name(),
				"type":     evt.Type,
			}).WithError(err).Error("exporter failed")
			failedExporters = append(failedExporters, exporter.Name())
		}
	}
	if len(failedExporters) > 0 {
		m.logger.WithField("failedExporters", failedExporters).
			Warn(fmt.Sprintf("%d exporters failed to handle metrics events", len(failedExporters)))
	}
}

func (m *worker) enqueueTask(task func(), evt *metric_events.Event) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return
	}
	select {
	case m.taskChan <- task:
	default:
		m.logger.WithFields(logrus.Fields{
			"trace_id": evt.TraceID,
			"type":     evt.Type,
		}).Warn("taskChan is full, dropping metrics task")
	}
}
