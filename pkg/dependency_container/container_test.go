package dependency_container

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	appAnalysis "github.com/NeuralTrust/TrustChat/pkg/app/analysis"
	"github.com/NeuralTrust/TrustChat/pkg/config"
	domainAnalysis "github.com/NeuralTrust/TrustChat/pkg/domain/analysis"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seed = `
policies:
  - id: harassment_prevention_v1
    name: Harassment prevention
    type: harassment_prevention
    scope: company_wide
    rules:
      prohibited_phrases: ["バカ"]
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policies.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o600))

	return &config.Config{
		Session: config.SessionConfig{TTL: time.Minute, MaxTurns: 5, ContextTurns: 2},
		Analysis: config.AnalysisConfig{
			Provider:        "openai",
			Model:           "gpt-4o-mini",
			Sources:         []string{domainAnalysis.SourcePolicy},
			SourceTimeout:   time.Second,
			KeywordFallback: true,
		},
		WebSocket: config.WebSocketConfig{MaxConnections: 2},
		Telemetry: config.TelemetryConfig{Workers: 1, QueueSize: 10},
		Policies:  config.PoliciesConfig{SeedFile: path, CacheTTL: time.Minute},
	}
}

func TestNewContainer_LocalMode(t *testing.T) {
	logger, _ := test.NewNullLogger()

	c, err := NewContainer(ContainerDI{Cfg: testConfig(t), Logger: logger})
	require.NoError(t, err)
	defer c.Close()

	assert.Nil(t, c.RedisListener)
	assert.Nil(t, c.MiddlewareTransport.MetricsMiddleware)
	assert.Equal(t, []string{domainAnalysis.SourcePolicy}, c.Analyzer.SourceNames())
	assert.Equal(t, 2, c.Semaphore.Capacity())

	policies, err := c.PolicyManager.List(context.Background())
	require.NoError(t, err)
	require.Len(t, policies, 1)

	resp := c.Analyzer.Analyze(context.Background(), appAnalysis.Request{Message: "このバカ", UserID: "u1"})
	require.NotNil(t, resp)
	assert.Equal(t, domainAnalysis.RiskDanger, resp.RiskLevel)
}

func TestNewContainer_MissingSeed(t *testing.T) {
	logger, _ := test.NewNullLogger()
	cfg := testConfig(t)
	cfg.Policies.SeedFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := NewContainer(ContainerDI{Cfg: cfg, Logger: logger})
	assert.ErrorContains(t, err, "failed to load policy seed")
}

func TestBuildSources_UnknownProvider(t *testing.T) {
	logger, _ := test.NewNullLogger()
	cfg := testConfig(t)
	cfg.Analysis.Provider = "unknown"
	cfg.Analysis.Sources = []string{domainAnalysis.SourceHarassment}

	_, err := NewContainer(ContainerDI{Cfg: cfg, Logger: logger})
	assert.Error(t, err)
}

func TestCredentialsFor(t *testing.T) {
	cfg := &config.Config{}
	cfg.Providers.Gemini.APIKey = "g"
	cfg.Providers.Bedrock.Region = "eu-west-1"

	cfg.Analysis.Provider = "gemini"
	assert.Equal(t, "g", credentialsFor(cfg).ApiKey)

	cfg.Analysis.Provider = "bedrock"
	creds := credentialsFor(cfg)
	require.NotNil(t, creds.AwsBedrock)
	assert.Equal(t, "eu-west-1", creds.AwsBedrock.Region)
}
