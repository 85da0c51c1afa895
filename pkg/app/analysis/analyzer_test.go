package analysis_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	appAnalysis "github.com/NeuralTrust/TrustChat/pkg/app/analysis"
	"github.com/NeuralTrust/TrustChat/pkg/app/analysis/mocks"
	"github.com/NeuralTrust/TrustChat/pkg/domain/analysis"
	"github.com/NeuralTrust/TrustChat/pkg/domain/session"
	sessionMocks "github.com/NeuralTrust/TrustChat/pkg/domain/session/mocks"
	"github.com/NeuralTrust/TrustChat/pkg/infra/metrics/metric_events"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type stubSource struct {
	name     string
	record   *analysis.Record
	err      error
	panics   bool
	block    bool
	fallback *analysis.Record
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Analyze(ctx context.Context, _ appAnalysis.Input) (*analysis.Record, error) {
	if s.panics {
		panic("source exploded")
	}
	if s.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return s.record, s.err
}

func (s *stubSource) Fallback(appAnalysis.Input) *analysis.Record {
	return s.fallback
}

type recordingAuditor struct {
	mu     sync.Mutex
	events []*metric_events.Event
}

func (a *recordingAuditor) Process(evt *metric_events.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, evt)
}

func record(source string, risk analysis.RiskLevel, confidence float64, issues ...string) *analysis.Record {
	return &analysis.Record{
		Source:         source,
		Risk:           analysis.Risk(risk),
		Issues:         issues,
		FlaggedContent: []string{},
		Suggestions:    []string{},
		Confidence:     confidence,
		Detail:         map[string]interface{}{"explanation": source + " checked"},
	}
}

func liveSession(userID string, history ...string) *session.Session {
	s := session.NewSession(userID, time.Hour)
	for _, m := range history {
		s.AppendTurn(session.Turn{Message: m}, 10)
	}
	return s
}

func expectSession(t *testing.T, userID string, history ...string) *sessionMocks.Repository {
	sessions := sessionMocks.NewRepository(t)
	sessions.EXPECT().GetOrCreate(mock.Anything, userID).Return(liveSession(userID, history...), nil).Once()
	return sessions
}

func TestAnalyzer_AggregatesSourcesInOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	logger, _ := test.NewNullLogger()
	sessions := expectSession(t, "u1", "昨日の件", "了解です")
	sessions.EXPECT().AppendTurn(mock.Anything, "u1", mock.MatchedBy(func(turn session.Turn) bool {
		return turn.Message == "今すぐやれ" && turn.RiskLevel == analysis.RiskDanger
	})).Return(nil).Once()

	harassment := mocks.NewSource(t)
	harassment.EXPECT().Name().Return(analysis.SourceHarassment)
	harassment.EXPECT().Analyze(mock.Anything, appAnalysis.Input{
		Message: "今すぐやれ",
		UserID:  "u1",
		RoomID:  "room-7",
		History: []string{"昨日の件", "了解です"},
	}).Return(record(analysis.SourceHarassment, analysis.RiskWarning, 0.6, "pressure"), nil).Once()

	toxicity := mocks.NewSource(t)
	toxicity.EXPECT().Name().Return(analysis.SourceToxicity)
	toxicity.EXPECT().Analyze(mock.Anything, mock.Anything).
		Return(record(analysis.SourceToxicity, analysis.RiskDanger, 1.0, "threat", "pressure"), nil).Once()

	auditor := &recordingAuditor{}
	a := appAnalysis.NewAnalyzer(logger, []appAnalysis.Source{harassment, toxicity}, sessions, auditor, appAnalysis.Config{})

	resp := a.Analyze(context.Background(), appAnalysis.Request{Message: "今すぐやれ", UserID: "u1", RoomID: "room-7"})

	assert.Equal(t, analysis.RiskDanger, resp.RiskLevel)
	assert.Equal(t, []string{"pressure", "threat"}, resp.DetectedIssues)
	assert.InDelta(t, 0.8, resp.Confidence, 1e-9)
	assert.Equal(t, "harassment checked / toxicity checked", resp.ComplianceNotes)
	assert.Contains(t, resp.DetailedAnalysis, analysis.SourceHarassment)
	assert.Contains(t, resp.DetailedAnalysis, analysis.SourceToxicity)
	assert.Equal(t, []string{analysis.SourceHarassment, analysis.SourceToxicity}, a.SourceNames())

	require.Len(t, auditor.events, 1)
	evt := auditor.events[0]
	assert.Equal(t, metric_events.AnalysisType, evt.Type)
	assert.Equal(t, "danger", evt.RiskLevel)
	assert.Equal(t, "room-7", evt.RoomID)
	require.Len(t, evt.Sources, 2)
	assert.Equal(t, analysis.SourceHarassment, evt.Sources[0].Name)
	assert.Equal(t, "warning", evt.Sources[0].Risk)
	assert.False(t, evt.Sources[1].Failed)
}

func TestAnalyzer_FailedSourceFallsBackToKeywords(t *testing.T) {
	defer goleak.VerifyNone(t)

	logger, _ := test.NewNullLogger()
	sessions := expectSession(t, "u1")
	sessions.EXPECT().AppendTurn(mock.Anything, "u1", mock.Anything).Return(nil).Once()

	keywordRecord := record("harassment_keywords", analysis.RiskDanger, 0.7, "harassment_detected")
	failing := &stubSource{name: analysis.SourceHarassment, err: errors.New("rate limited"), fallback: keywordRecord}
	healthy := &stubSource{name: analysis.SourceToxicity, record: record(analysis.SourceToxicity, analysis.RiskSafe, 0.9)}

	auditor := &recordingAuditor{}
	a := appAnalysis.NewAnalyzer(logger, []appAnalysis.Source{failing, healthy}, sessions, auditor,
		appAnalysis.Config{KeywordFallback: true})

	resp := a.Analyze(context.Background(), appAnalysis.Request{Message: "kill", UserID: "u1"})

	assert.Equal(t, analysis.RiskDanger, resp.RiskLevel)
	assert.Equal(t, map[string]interface{}{"error": true}, resp.DetailedAnalysis[analysis.SourceHarassment])
	assert.Contains(t, resp.DetailedAnalysis, "harassment_keywords")
	assert.InDelta(t, 0.8, resp.Confidence, 1e-9)

	require.Len(t, auditor.events, 1)
	assert.True(t, auditor.events[0].Sources[0].Failed)
	assert.Equal(t, "rate limited", auditor.events[0].Sources[0].Error)
}

func TestAnalyzer_KeywordFallbackDisabled(t *testing.T) {
	logger, _ := test.NewNullLogger()
	sessions := expectSession(t, "u1")
	sessions.EXPECT().AppendTurn(mock.Anything, "u1", mock.Anything).Return(nil).Once()

	failing := &stubSource{
		name:     analysis.SourceHarassment,
		err:      errors.New("rate limited"),
		fallback: record("harassment_keywords", analysis.RiskDanger, 0.7),
	}
	a := appAnalysis.NewAnalyzer(logger, []appAnalysis.Source{failing}, sessions, nil, appAnalysis.Config{})

	resp := a.Analyze(context.Background(), appAnalysis.Request{Message: "kill", UserID: "u1"})

	assert.Equal(t, analysis.RiskSafe, resp.RiskLevel)
	assert.Equal(t, 0.0, resp.Confidence)
	assert.NotContains(t, resp.DetailedAnalysis, "harassment_keywords")
}

func TestAnalyzer_SourceTimeoutAndPanic(t *testing.T) {
	defer goleak.VerifyNone(t)

	logger, _ := test.NewNullLogger()
	sessions := expectSession(t, "u1")
	sessions.EXPECT().AppendTurn(mock.Anything, "u1", mock.Anything).Return(nil).Once()

	slow := &stubSource{name: analysis.SourceSentiment, block: true}
	broken := &stubSource{name: analysis.SourceToxicity, panics: true}
	healthy := &stubSource{name: analysis.SourceHarassment, record: record(analysis.SourceHarassment, analysis.RiskWarning, 0.5, "rude")}

	a := appAnalysis.NewAnalyzer(logger, []appAnalysis.Source{slow, broken, healthy}, sessions, nil,
		appAnalysis.Config{SourceTimeout: 50 * time.Millisecond})

	start := time.Now()
	resp := a.Analyze(context.Background(), appAnalysis.Request{Message: "x", UserID: "u1"})

	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, analysis.RiskWarning, resp.RiskLevel)
	assert.Equal(t, []string{"rude"}, resp.DetectedIssues)
	assert.Equal(t, map[string]interface{}{"error": true}, resp.DetailedAnalysis[analysis.SourceSentiment])
	assert.Equal(t, map[string]interface{}{"error": true}, resp.DetailedAnalysis[analysis.SourceToxicity])
}

func TestAnalyzer_NoSourcesFailsOpen(t *testing.T) {
	logger, _ := test.NewNullLogger()
	sessions := expectSession(t, appAnalysis.DefaultUserID)
	sessions.EXPECT().AppendTurn(mock.Anything, appAnalysis.DefaultUserID, mock.Anything).Return(nil).Once()

	a := appAnalysis.NewAnalyzer(logger, nil, sessions, nil, appAnalysis.Config{})
	resp := a.Analyze(context.Background(), appAnalysis.Request{Message: "hello"})

	assert.Equal(t, analysis.RiskSafe, resp.RiskLevel)
	assert.Equal(t, analysis.FallbackConfidence, resp.Confidence)
	assert.Empty(t, resp.DetectedIssues)
	assert.Empty(t, resp.ComplianceNotes)
}

func TestAnalyzer_SessionErrorsDoNotFailAnalysis(t *testing.T) {
	logger, hook := test.NewNullLogger()
	sessions := sessionMocks.NewRepository(t)
	sessions.EXPECT().GetOrCreate(mock.Anything, "u1").Return(nil, errors.New("redis down")).Once()
	sessions.EXPECT().AppendTurn(mock.Anything, "u1", mock.Anything).Return(errors.New("redis down")).Once()

	src := mocks.NewSource(t)
	src.EXPECT().Name().Return(analysis.SourceHarassment)
	src.EXPECT().Analyze(mock.Anything, mock.MatchedBy(func(in appAnalysis.Input) bool {
		return in.History == nil
	})).Return(record(analysis.SourceHarassment, analysis.RiskSafe, 0.9), nil).Once()

	a := appAnalysis.NewAnalyzer(logger, []appAnalysis.Source{src}, sessions, nil, appAnalysis.Config{})
	resp := a.Analyze(context.Background(), appAnalysis.Request{Message: "hi", UserID: "u1"})

	assert.Equal(t, analysis.RiskSafe, resp.RiskLevel)
	assert.Equal(t, 0.9, resp.Confidence)
	assert.Len(t, hook.AllEntries(), 2)
}

func TestAnalyzer_RecoversFromPanics(t *testing.T) {
	logger, _ := test.NewNullLogger()
	sessions := sessionMocks.NewRepository(t)
	sessions.EXPECT().GetOrCreate(mock.Anything, "u1").
		Run(func(context.Context, string) { panic("corrupt session") }).
		Return(nil, nil).Once()

	a := appAnalysis.NewAnalyzer(logger, nil, sessions, nil, appAnalysis.Config{})
	resp := a.Analyze(context.Background(), appAnalysis.Request{Message: "hi", UserID: "u1"})

	require.NotNil(t, resp)
	assert.Equal(t, analysis.RiskSafe, resp.RiskLevel)
	assert.Equal(t, analysis.FallbackConfidence, resp.Confidence)
}

func TestAnalyzer_ConcurrentRequests(t *testing.T) {
	defer goleak.VerifyNone(t)

	logger, _ := test.NewNullLogger()
	sessions := sessionMocks.NewRepository(t)
	sessions.EXPECT().GetOrCreate(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, userID string) (*session.Session, error) {
			return liveSession(userID), nil
		})
	sessions.EXPECT().AppendTurn(mock.Anything, mock.Anything, mock.Anything).Return(nil)

	src := &stubSource{name: analysis.SourceToxicity, record: record(analysis.SourceToxicity, analysis.RiskWarning, 0.4, "x")}
	a := appAnalysis.NewAnalyzer(logger, []appAnalysis.Source{src}, sessions, nil, appAnalysis.Config{})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp := a.Analyze(context.Background(), appAnalysis.Request{Message: "m", UserID: "u"})
			assert.Equal(t, analysis.RiskWarning, resp.RiskLevel)
		}()
	}
	wg.Wait()
}
