package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
server:
  port: 8081
analysis:
  provider: openai
  model: gpt-4o-mini
  sources: [harassment, policy]
  source_timeout: 5s
session:
  ttl: 30m
telemetry:
  exporters:
    - name: kafka
      settings:
        host: kafka
        port: "9092"
        topic: trustchat-audit
`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(testConfig), 0o600))
	t.Setenv("SERVER_METRICS_PORT", "9191")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	require.NoError(t, Load(dir))
	cfg := GetConfig()

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, 9191, cfg.Server.MetricsPort)
	assert.Equal(t, "openai", cfg.Analysis.Provider)
	assert.Equal(t, []string{"harassment", "policy"}, cfg.Analysis.Sources)
	assert.Equal(t, 5*time.Second, cfg.Analysis.SourceTimeout)
	assert.Equal(t, 0.1, cfg.Analysis.Temperature)
	assert.True(t, cfg.Analysis.KeywordFallback)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, 10, cfg.Session.MaxTurns)
	assert.Equal(t, "sk-test", cfg.Providers.OpenAI.APIKey)
	assert.Equal(t, 1000, cfg.WebSocket.MaxConnections)
	require.Len(t, cfg.Telemetry.Exporters, 1)
	assert.Equal(t, "kafka", cfg.Telemetry.Exporters[0].Name)
	assert.Equal(t, "trustchat-audit", cfg.Telemetry.Exporters[0].Settings["topic"])
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Auth:     AuthConfig{Enabled: true},
		Analysis: AnalysisConfig{Sources: []string{"harassment"}},
		Session:  SessionConfig{MaxTurns: 10},
	}
	assert.ErrorContains(t, cfg.Validate(), "auth.secret_key")

	cfg.Auth.SecretKey = "s3cret"
	assert.NoError(t, cfg.Validate())

	cfg.Analysis.Sources = nil
	assert.ErrorContains(t, cfg.Validate(), "analysis.sources")
}
