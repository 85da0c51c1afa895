package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/NeuralTrust/TrustChat/pkg/app/analysis"
	analysisMocks "github.com/NeuralTrust/TrustChat/pkg/app/analysis/mocks"
	"github.com/NeuralTrust/TrustChat/pkg/app/report"
	reportMocks "github.com/NeuralTrust/TrustChat/pkg/app/report/mocks"
	"github.com/NeuralTrust/TrustChat/pkg/common"
	domainAnalysis "github.com/NeuralTrust/TrustChat/pkg/domain/analysis"
	"github.com/NeuralTrust/TrustChat/pkg/infra/auth/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest("POST", path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	if resp.StatusCode != fiber.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp.StatusCode, out
}

func TestAnalyzeMessageHandler(t *testing.T) {
	analyzer := analysisMocks.NewAnalyzer(t)
	analyzer.EXPECT().
		Analyze(mock.Anything, analysis.Request{Message: "お疲れさまです", UserID: "u1", RoomID: "r1"}).
		Return(&analysis.Response{
			RiskLevel:      domainAnalysis.RiskSafe,
			Confidence:     0.9,
			DetectedIssues: []string{},
		}).Once()

	app := fiber.New()
	app.Post("/api/analyze-message", NewAnalyzeMessageHandler(logrus.New(), analyzer).Handle)

	status, body := postJSON(t, app, "/api/analyze-message", map[string]string{
		"message": "お疲れさまです",
		"user_id": "u1",
		"room_id": "r1",
	})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "safe", body["risk_level"])
	assert.Equal(t, 0.9, body["confidence"])
}

func TestAnalyzeMessageHandler_UserIDFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		identity *jwt.Identity
		want     string
	}{
		{"default user", nil, common.DefaultUserID},
		{"authenticated caller", &jwt.Identity{UID: "firebase-uid"}, "firebase-uid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := analysisMocks.NewAnalyzer(t)
			analyzer.EXPECT().
				Analyze(mock.Anything, mock.MatchedBy(func(r analysis.Request) bool { return r.UserID == tt.want })).
				Return(&analysis.Response{RiskLevel: domainAnalysis.RiskSafe}).Once()

			app := fiber.New()
			app.Post("/api/analyze-message", func(c *fiber.Ctx) error {
				if tt.identity != nil {
					c.Locals(string(common.IdentityContextKey), tt.identity)
				}
				return c.Next()
			}, NewAnalyzeMessageHandler(logrus.New(), analyzer).Handle)

			status, _ := postJSON(t, app, "/api/analyze-message", map[string]string{"message": "hello"})
			assert.Equal(t, fiber.StatusOK, status)
		})
	}
}

func TestAnalyzeMessageHandler_BadRequests(t *testing.T) {
	analyzer := analysisMocks.NewAnalyzer(t)
	app := fiber.New()
	app.Post("/api/analyze-message", NewAnalyzeMessageHandler(logrus.New(), analyzer).Handle)

	status, body := postJSON(t, app, "/api/analyze-message", map[string]string{"message": "   ", "user_id": "u1"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body["error"], "message is required")

	status, _ = postJSON(t, app, "/api/analyze-message", "{broken")
	assert.Equal(t, fiber.StatusBadRequest, status)

	analyzer.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
}

func TestAnalyzeChatHandler(t *testing.T) {
	messages := []domainAnalysis.ChatMessage{
		{Timestamp: "2025-03-01T10:00:00Z", User: "tanaka", Content: "おはようございます"},
		{Timestamp: "2025-03-01T10:01:00Z", Content: "資料を共有します"},
	}
	reports := reportMocks.NewService(t)
	reports.EXPECT().
		Generate(mock.Anything, mock.MatchedBy(func(r report.Request) bool {
			return r.RoomID == "room-1" && len(r.Messages) == 2 && r.Messages[1].User == "unknown"
		})).
		Return(&domainAnalysis.ChatReport{
			Summary: domainAnalysis.ReportSummary{OverallRiskLevel: domainAnalysis.RiskWarning, TotalMessages: 2},
		}).Once()

	app := fiber.New()
	app.Post("/api/analyze-chat", NewAnalyzeChatHandler(logrus.New(), reports).Handle)

	status, body := postJSON(t, app, "/api/analyze-chat", map[string]interface{}{
		"messages": messages,
		"room_id":  "room-1",
	})
	require.Equal(t, fiber.StatusOK, status)
	summary, ok := body["summary"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "warning", summary["overall_risk_level"])
	assert.Equal(t, float64(2), summary["total_messages"])
}

func TestAnalyzeChatHandler_Validation(t *testing.T) {
	reports := reportMocks.NewService(t)
	app := fiber.New()
	app.Post("/api/analyze-chat", NewAnalyzeChatHandler(logrus.New(), reports).Handle)

	status, body := postJSON(t, app, "/api/analyze-chat", map[string]interface{}{"messages": []interface{}{}})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body["error"], "messages must not be empty")

	status, body = postJSON(t, app, "/api/analyze-chat", map[string]interface{}{
		"messages": []map[string]string{{"user": "a", "content": ""}},
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body["error"], "messages[0].content")
}
