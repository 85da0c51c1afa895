package analysis

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/NeuralTrust/TrustChat/pkg/domain/analysis"
	"github.com/NeuralTrust/TrustChat/pkg/domain/session"
	"github.com/NeuralTrust/TrustChat/pkg/infra/metrics/metric_events"
	"github.com/sirupsen/logrus"
)

const (
	DefaultUserID        = "default_user"
	DefaultSourceTimeout = 30 * time.Second
	DefaultContextTurns  = 5
)

type Config struct {
	SourceTimeout   time.Duration
	KeywordFallback bool
	ContextTurns    int
}

type Request struct {
	Message   string
	UserID    string
	RoomID    string
	Timestamp string
}

type Response struct {
	RiskLevel        analysis.RiskLevel     `json:"risk_level"`
	Confidence       float64                `json:"confidence"`
	DetectedIssues   []string               `json:"detected_issues"`
	Suggestions      []string               `json:"suggestions"`
	FlaggedContent   []string               `json:"flagged_content"`
	ProcessingTimeMs int64                  `json:"processing_time_ms"`
	ComplianceNotes  string                 `json:"compliance_notes"`
	DetailedAnalysis map[string]interface{} `json:"detailed_analysis"`

	Verdict *analysis.Verdict `json:"-"`
}

// Auditor receives one event per analysed message.
type Auditor interface {
	Process(evt *metric_events.Event)
}

//go:generate mockery --name=Analyzer --dir=. --output=./mocks --filename=analyzer_mock.go --case=underscore --with-expecter
type Analyzer interface {
	Analyze(ctx context.Context, req Request) *Response
	SourceNames() []string
}

type analyzer struct {
	logger   *logrus.Logger
	sources  []Source
	sessions session.Repository
	auditor  Auditor
	cfg      Config
}

// NewAnalyzer fans every message out to sources in the given order. auditor
// may be nil.
func NewAnalyzer(
	logger *logrus.Logger,
	sources []Source,
	sessions session.Repository,
	auditor Auditor,
	cfg Config,
) Analyzer {
	if cfg.SourceTimeout <= 0 {
		cfg.SourceTimeout = DefaultSourceTimeout
	}
	if cfg.ContextTurns < 0 {
		cfg.ContextTurns = 0
	}
	return &analyzer{
		logger:   logger,
		sources:  sources,
		sessions: sessions,
		auditor:  auditor,
		cfg:      cfg,
	}
}

func (a *analyzer) SourceNames() []string {
	names := make([]string, 0, len(a.sources))
	for _, s := range a.sources {
		names = append(names, s.Name())
	}
	return names
}

func (a *analyzer) Analyze(ctx context.Context, req Request) (resp *Response) {
	start := time.Now()
	if req.UserID == "" {
		req.UserID = DefaultUserID
	}
	defer func() {
		if r := recover(); r != nil {
			a.logger.WithField("panic", r).Error("message analysis panicked")
			resp = newResponse(analysis.FallbackVerdict(), nil, start)
		}
	}()

	in := Input{Message: req.Message, UserID: req.UserID, RoomID: req.RoomID}
	sess, err := a.sessions.GetOrCreate(ctx, req.UserID)
	if err != nil {
		a.logger.WithError(err).WithField("user_id", req.UserID).Warn("session unavailable, analysing without context")
	} else {
		in.History = sess.RecentMessages(a.cfg.ContextTurns)
	}

	records, outcomes := a.fanOut(ctx, in)

	verdict := analysis.FallbackVerdict()
	if len(records) > 0 {
		verdict = analysis.Aggregate(records)
	}
	resp = newResponse(verdict, records, start)

	turn := session.Turn{Message: req.Message, RiskLevel: verdict.Risk, At: time.Now().UTC()}
	if err := a.sessions.AppendTurn(context.WithoutCancel(ctx), req.UserID, turn); err != nil {
		a.logger.WithError(err).WithField("user_id", req.UserID).Warn("failed to record session turn")
	}

	a.audit(ctx, req, sess, resp, outcomes, start)
	return resp
}

type sourceResult struct {
	record   *analysis.Record
	fallback *analysis.Record
	outcome  metric_events.SourceOutcome
}

// fanOut runs every source concurrently and waits for all of them. Each
// goroutine writes only its own slot.
func (a *analyzer) fanOut(ctx context.Context, in Input) ([]*analysis.Record, []metric_events.SourceOutcome) {
	results := make([]sourceResult, len(a.sources))
	var wg sync.WaitGroup
	for i, src := range a.sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			results[i] = a.runBranch(ctx, src, in)
		}(i, src)
	}
	wg.Wait()

	records := make([]*analysis.Record, 0, 2*len(results))
	outcomes := make([]metric_events.SourceOutcome, 0, len(results))
	for _, r := range results {
		records = append(records, r.record)
		if r.fallback != nil {
			records = append(records, r.fallback)
		}
		outcomes = append(outcomes, r.outcome)
	}
	return records, outcomes
}

func (a *analyzer) runBranch(ctx context.Context, src Source, in Input) (res sourceResult) {
	name := src.Name()
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			a.logger.WithField("source", name).WithField("panic", r).Error("analysis source panicked")
			res = sourceResult{
				record:  analysis.NewFailedRecord(name),
				outcome: metric_events.SourceOutcome{Name: name, Failed: true, LatencyMs: time.Since(start).Milliseconds()},
			}
		}
	}()

	record, err := a.callSource(ctx, src, in)
	res.outcome = metric_events.SourceOutcome{Name: name, LatencyMs: time.Since(start).Milliseconds()}
	if err == nil && record != nil {
		if record.Source == "" {
			record.Source = name
		}
		res.record = record
		res.outcome.Risk = record.RiskOrSafe().String()
		return res
	}

	if err == nil {
		err = fmt.Errorf("%s returned no record", name)
	}
	a.logger.WithError(err).WithField("source", name).Warn("analysis source failed")
	res.record = analysis.NewFailedRecord(name)
	res.outcome.Failed = true
	res.outcome.Error = err.Error()
	if fb, ok := src.(KeywordFallback); ok && a.cfg.KeywordFallback {
		res.fallback = fb.Fallback(in)
	}
	return res
}

// callSource bounds one source call by the source timeout. A source that
// ignores its context is abandoned; its late result lands in a buffered
// channel nobody reads.
func (a *analyzer) callSource(ctx context.Context, src Source, in Input) (*analysis.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.SourceTimeout)
	defer cancel()

	type outcome struct {
		record *analysis.Record
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("panic recovered: %v", r)}
			}
		}()
		record, err := src.Analyze(ctx, in)
		done <- outcome{record: record, err: err}
	}()

	select {
	case o := <-done:
		return o.record, o.err
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", src.Name(), ctx.Err())
	}
}

func newResponse(verdict *analysis.Verdict, records []*analysis.Record, start time.Time) *Response {
	return &Response{
		RiskLevel:        verdict.Risk,
		Confidence:       verdict.Confidence,
		DetectedIssues:   verdict.DetectedIssues,
		Suggestions:      verdict.Suggestions,
		FlaggedContent:   verdict.FlaggedContent,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
		ComplianceNotes:  complianceNotes(records),
		DetailedAnalysis: verdict.Detail,
		Verdict:          verdict,
	}
}

// complianceNotes joins the compliance_notes and explanation strings of the
// non-failed records in source order.
func complianceNotes(records []*analysis.Record) string {
	var notes []string
	for _, r := range records {
		if r == nil || r.Failed {
			continue
		}
		for _, key := range []string{"compliance_notes", "explanation"} {
			if s, ok := r.Detail[key].(string); ok && strings.TrimSpace(s) != "" {
				notes = append(notes, strings.TrimSpace(s))
			}
		}
	}
	return strings.Join(notes, " / ")
}

func (a *analyzer) audit(ctx context.Context, req Request, sess *session.Session, resp *Response, outcomes []metric_events.SourceOutcome, start time.Time) {
	if a.auditor == nil {
		return
	}
	evt := metric_events.NewAnalysisEvent().Attach(ctx)
	evt.UserID = req.UserID
	evt.RoomID = req.RoomID
	if sess != nil {
		evt.SessionID = sess.ID
	}
	evt.Input = req.Message
	evt.RiskLevel = resp.RiskLevel.String()
	evt.Confidence = resp.Confidence
	evt.DetectedIssues = resp.DetectedIssues
	evt.Sources = outcomes
	evt.StartTimestamp = start.Unix()
	evt.EndTimestamp = time.Now().Unix()
	evt.Latency = resp.ProcessingTimeMs
	a.auditor.Process(evt)
}
