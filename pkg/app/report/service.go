package report

import (
	"context"
	"time"

	appAnalysis "github.com/NeuralTrust/TrustChat/pkg/app/analysis"
	"github.com/NeuralTrust/TrustChat/pkg/domain/analysis"
	"github.com/NeuralTrust/TrustChat/pkg/infra/metrics/metric_events"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const DefaultConcurrency = 4

type Request struct {
	Messages []analysis.ChatMessage
	RoomID   string
}

//go:generate mockery --name=Service --dir=. --output=./mocks --filename=report_service_mock.go --case=underscore --with-expecter
type Service interface {
	Generate(ctx context.Context, req Request) *analysis.ChatReport
}

type service struct {
	logger      *logrus.Logger
	analyzer    appAnalysis.Analyzer
	auditor     appAnalysis.Auditor
	concurrency int
	now         func() time.Time
}

// NewService analyses every message of a conversation and rolls the
// verdicts up into a report. auditor may be nil.
func NewService(logger *logrus.Logger, analyzer appAnalysis.Analyzer, auditor appAnalysis.Auditor, concurrency int) Service {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &service{
		logger:      logger,
		analyzer:    analyzer,
		auditor:     auditor,
		concurrency: concurrency,
		now:         time.Now,
	}
}

// Generate runs participants concurrently, but each participant's messages
// in conversation order so their session context builds up as it would live.
func (s *service) Generate(ctx context.Context, req Request) *analysis.ChatReport {
	start := time.Now()
	items := make([]analysis.MessageVerdict, len(req.Messages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, indexes := range groupByUser(req.Messages) {
		indexes := indexes
		g.Go(func() error {
			for _, i := range indexes {
				msg := req.Messages[i]
				resp := s.analyzer.Analyze(gctx, appAnalysis.Request{
					Message:   msg.Content,
					UserID:    msg.User,
					RoomID:    req.RoomID,
					Timestamp: msg.Timestamp,
				})
				items[i] = analysis.MessageVerdict{Message: msg, Verdict: verdictOf(resp)}
			}
			return nil
		})
	}
	_ = g.Wait()

	report := analysis.Rollup(items, s.now())
	s.logger.WithFields(logrus.Fields{
		"room_id":  req.RoomID,
		"messages": len(req.Messages),
		"risk":     report.Summary.OverallRiskLevel.String(),
	}).Debug("chat report generated")
	s.audit(ctx, req, report, start)
	return report
}

func verdictOf(resp *appAnalysis.Response) *analysis.Verdict {
	if resp == nil || resp.Verdict == nil {
		return analysis.FallbackVerdict()
	}
	return resp.Verdict
}

// groupByUser returns message indexes per user, in first-appearance order.
func groupByUser(messages []analysis.ChatMessage) [][]int {
	var order []string
	groups := map[string][]int{}
	for i, m := range messages {
		if _, ok := groups[m.User]; !ok {
			order = append(order, m.User)
		}
		groups[m.User] = append(groups[m.User], i)
	}
	out := make([][]int, 0, len(order))
	for _, user := range order {
		out = append(out, groups[user])
	}
	return out
}

func (s *service) audit(ctx context.Context, req Request, report *analysis.ChatReport, start time.Time) {
	if s.auditor == nil {
		return
	}
	evt := metric_events.NewChatReportEvent().Attach(ctx)
	evt.RoomID = req.RoomID
	evt.MessageCount = len(req.Messages)
	evt.RiskLevel = report.Summary.OverallRiskLevel.String()
	evt.StartTimestamp = start.Unix()
	evt.EndTimestamp = time.Now().Unix()
	evt.Latency = time.Since(start).Milliseconds()
	s.auditor.Process(evt)
}
