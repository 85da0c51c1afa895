package report

import (
	"context"
	"sync"
	"testing"
	"time"

	appAnalysis "github.com/NeuralTrust/TrustChat/pkg/app/analysis"
	"github.com/NeuralTrust/TrustChat/pkg/app/analysis/mocks"
	"github.com/NeuralTrust/TrustChat/pkg/domain/analysis"
	"github.com/NeuralTrust/TrustChat/pkg/infra/metrics/metric_events"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type captureAuditor struct {
	events []*metric_events.Event
}

func (a *captureAuditor) Process(evt *metric_events.Event) {
	a.events = append(a.events, evt)
}

func responseWith(risk analysis.RiskLevel, source string) *appAnalysis.Response {
	v := analysis.Aggregate([]*analysis.Record{{
		Source:     source,
		Risk:       analysis.Risk(risk),
		Confidence: 0.9,
		Detail:     map[string]interface{}{},
	}})
	return &appAnalysis.Response{RiskLevel: v.Risk, Confidence: v.Confidence, Verdict: v}
}

func TestService_Generate(t *testing.T) {
	logger, _ := test.NewNullLogger()
	analyzer := mocks.NewAnalyzer(t)

	var mu sync.Mutex
	seen := map[string][]string{}
	analyzer.EXPECT().Analyze(mock.Anything, mock.MatchedBy(func(req appAnalysis.Request) bool {
		return req.RoomID == "general"
	})).RunAndReturn(func(_ context.Context, req appAnalysis.Request) *appAnalysis.Response {
		mu.Lock()
		seen[req.UserID] = append(seen[req.UserID], req.Message)
		mu.Unlock()
		switch req.Message {
		case "ばかじゃないの":
			return responseWith(analysis.RiskWarning, analysis.SourceHarassment)
		case "パスワードは hunter2":
			return responseWith(analysis.RiskDanger, analysis.SourceConfidentiality)
		case "lost":
			return nil
		}
		return responseWith(analysis.RiskSafe, analysis.SourceHarassment)
	}).Times(5)

	auditor := &captureAuditor{}
	svc := NewService(logger, analyzer, auditor, 2).(*service)
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC) }

	report := svc.Generate(context.Background(), Request{
		RoomID: "general",
		Messages: []analysis.ChatMessage{
			{Timestamp: "2025-03-01T09:00:00Z", User: "sato", Content: "おはようございます"},
			{Timestamp: "2025-03-01T09:05:00Z", User: "tanaka", Content: "ばかじゃないの"},
			{Timestamp: "2025-03-01T09:10:00Z", User: "sato", Content: "パスワードは hunter2"},
			{Timestamp: "2025-03-01T09:20:00Z", User: "suzuki", Content: "lost"},
			{Timestamp: "2025-03-01T09:30:00Z", User: "sato", Content: "以上です"},
		},
	})

	assert.Equal(t, []string{"おはようございます", "パスワードは hunter2", "以上です"}, seen["sato"])
	assert.Equal(t, analysis.RiskDanger, report.Summary.OverallRiskLevel)
	assert.Equal(t, 5, report.Summary.TotalMessages)
	assert.Equal(t, 30, report.Summary.ChatDurationMinutes)
	assert.Equal(t, []string{"sato", "tanaka", "suzuki"}, report.Summary.Participants)
	assert.Equal(t, "2025-03-01T10:00:00Z", report.Summary.AnalysisTimestamp)
	assert.Len(t, report.TimelineAnalysis.RiskTimeline, 2)
	assert.Equal(t, 1, report.ConfidentialReport.TotalLeaks)

	require.Len(t, auditor.events, 1)
	assert.Equal(t, metric_events.ChatReportType, auditor.events[0].Type)
	assert.Equal(t, 5, auditor.events[0].MessageCount)
	assert.Equal(t, "danger", auditor.events[0].RiskLevel)
}

func TestService_GenerateEmpty(t *testing.T) {
	logger, _ := test.NewNullLogger()
	report := NewService(logger, mocks.NewAnalyzer(t), nil, 0).Generate(context.Background(), Request{})

	assert.Equal(t, analysis.RiskSafe, report.Summary.OverallRiskLevel)
	assert.Equal(t, 0, report.Summary.TotalMessages)
	assert.Empty(t, report.DetailedFindings)
}

func TestGroupByUser(t *testing.T) {
	groups := groupByUser([]analysis.ChatMessage{{User: "a"}, {User: "b"}, {User: "a"}, {User: "c"}, {User: "b"}})
	assert.Equal(t, [][]int{{0, 2}, {1, 4}, {3}}, groups)
}
