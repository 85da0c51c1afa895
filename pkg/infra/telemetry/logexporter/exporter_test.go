package logexporter

import (
	"context"
	"testing"

	"github.com/NeuralTrust/TrustChat/pkg/infra/metrics/metric_events"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExporter_Handle(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	base := NewLogExporter(logger)
	require.Error(t, base.ValidateConfig(map[string]interface{}{"level": "loud"}))

	exp, err := base.WithSettings(map[string]interface{}{"level": "debug", "include_input": true})
	require.NoError(t, err)

	evt := metric_events.NewAnalysisEvent()
	evt.UserID = "u1"
	evt.Input = "hello"
	evt.RiskLevel = "warning"
	require.NoError(t, exp.Handle(context.Background(), evt))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.DebugLevel, entry.Level)
	assert.Equal(t, "u1", entry.Data["user_id"])
	assert.Equal(t, "hello", entry.Data["input"])
	assert.Equal(t, "warning", entry.Data["risk_level"])
}
