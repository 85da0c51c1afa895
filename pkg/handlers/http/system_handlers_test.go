package http

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	analysisMocks "github.com/NeuralTrust/TrustChat/pkg/app/analysis/mocks"
	"github.com/NeuralTrust/TrustChat/pkg/version"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	analyzer := analysisMocks.NewAnalyzer(t)
	analyzer.EXPECT().SourceNames().Return([]string{"gemini", "policy"}).Once()

	app := fiber.New()
	app.Get("/health", NewHealthHandler(analyzer).Handle)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, []interface{}{"gemini", "policy"}, body["sources"])
}

func TestGetVersionHandler(t *testing.T) {
	app := fiber.New()
	app.Get("/version", NewGetVersionHandler().Handle)

	resp, err := app.Test(httptest.NewRequest("GET", "/version", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var info version.Info
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.Equal(t, version.AppName, info.AppName)
	assert.Equal(t, version.Version, info.Version)
}
