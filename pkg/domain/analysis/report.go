package analysis

import (
	"math"
	"sort"
	"strings"
	"time"
)

const (
	FindingComplianceViolation = "compliance_violation"
	FindingConfidentialLeak    = "confidential_leak"

	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"

	// KeywordSourceSuffix names the deterministic record emitted when a source's model call failed.
	KeywordSourceSuffix = "_keywords"

	maxViolationExamples = 3
	defaultLeakType      = "confidential_info"
)

var complianceTypes = map[string]string{
	SourceHarassment:                       "harassment",
	SourceHarassment + KeywordSourceSuffix: "harassment",
	SourceToxicity:                         "toxicity",
	SourcePolicy:                           "policy_violation",
}

var confidentialSources = []string{
	SourceConfidentiality,
	SourceConfidentiality + KeywordSourceSuffix,
}

var recommendedActions = map[string]string{
	"harassment":       "関係者へのヒアリングを行い、ハラスメント防止研修の実施を検討してください",
	"toxicity":         "攻撃的な表現について当事者に注意喚起を行ってください",
	"policy_violation": "社内ポリシーの再周知を行ってください",
}

var mitigationSteps = []string{
	"共有された機密情報の範囲を確認し、必要に応じて削除してください",
	"関連する認証情報やキーを速やかに無効化・再発行してください",
	"機密情報の取り扱いルールを関係者に再周知してください",
}

type ChatMessage struct {
	Timestamp string `json:"timestamp"`
	User      string `json:"user"`
	Content   string `json:"content"`
}

// MessageVerdict pairs one chat message with the verdict produced for it.
type MessageVerdict struct {
	Message ChatMessage
	Verdict *Verdict
}

type ChatReport struct {
	Summary            ReportSummary      `json:"summary"`
	ComplianceReport   ComplianceReport   `json:"compliance_report"`
	ConfidentialReport ConfidentialReport `json:"confidential_report"`
	TimelineAnalysis   TimelineAnalysis   `json:"timeline_analysis"`
	DetailedFindings   []Finding          `json:"detailed_findings"`
}

type ReportSummary struct {
	OverallRiskLevel    RiskLevel `json:"overall_risk_level"`
	TotalMessages       int       `json:"total_messages"`
	AnalysisTimestamp   string    `json:"analysis_timestamp"`
	ChatDurationMinutes int       `json:"chat_duration_minutes"`
	Participants        []string  `json:"participants"`
}

type ComplianceReport struct {
	TotalViolations    int         `json:"total_violations"`
	ViolationRate      float64     `json:"violation_rate"`
	LegalRiskLevel     string      `json:"legal_risk_level"`
	Violations         []Violation `json:"violations"`
	RecommendedActions []string    `json:"recommended_actions"`
}

type Violation struct {
	Type     string   `json:"type"`
	Count    int      `json:"count"`
	Severity string   `json:"severity"`
	Examples []string `json:"examples"`
}

type ConfidentialReport struct {
	TotalLeaks        int        `json:"total_leaks"`
	SecurityRiskLevel string     `json:"security_risk_level"`
	LeakTypes         []LeakType `json:"leak_types"`
	MitigationSteps   []string   `json:"mitigation_steps"`
}

type LeakType struct {
	Type      string `json:"type"`
	Count     int    `json:"count"`
	RiskLevel string `json:"risk_level"`
}

type TimelineAnalysis struct {
	RiskTrend        string             `json:"risk_trend"`
	RiskTimeline     []TimelineEntry    `json:"risk_timeline"`
	ParticipantStats []ParticipantStats `json:"participant_stats"`
}

type TimelineEntry struct {
	Timestamp string    `json:"timestamp"`
	RiskLevel RiskLevel `json:"risk_level"`
	Message   string    `json:"message"`
	User      string    `json:"user"`
}

type ParticipantStats struct {
	User         string  `json:"user"`
	MessageCount int     `json:"message_count"`
	RiskScore    float64 `json:"risk_score"`
	Violations   int     `json:"violations"`
}

type Finding struct {
	FindingID      int    `json:"finding_id"`
	Type           string `json:"type"`
	Severity       string `json:"severity"`
	Description    string `json:"description"`
	Message        string `json:"message"`
	User           string `json:"user"`
	Timestamp      string `json:"timestamp"`
	Recommendation string `json:"recommendation"`
}

// Rollup builds a conversation report from per-message verdicts. The overall
// risk is the maximum over all message verdicts.
func Rollup(items []MessageVerdict, now time.Time) *ChatReport {
	report := &ChatReport{
		Summary: ReportSummary{
			OverallRiskLevel:  RiskSafe,
			TotalMessages:     len(items),
			AnalysisTimestamp: now.UTC().Format(time.RFC3339),
			Participants:      []string{},
		},
		ComplianceReport: ComplianceReport{
			LegalRiskLevel:     RiskSafe.Severity(),
			Violations:         []Violation{},
			RecommendedActions: []string{},
		},
		ConfidentialReport: ConfidentialReport{
			SecurityRiskLevel: RiskSafe.Severity(),
			LeakTypes:         []LeakType{},
			MitigationSteps:   []string{},
		},
		TimelineAnalysis: TimelineAnalysis{
			RiskTrend:        TrendStable,
			RiskTimeline:     []TimelineEntry{},
			ParticipantStats: []ParticipantStats{},
		},
		DetailedFindings: []Finding{},
	}
	if len(items) == 0 {
		return report
	}

	var (
		violationOrder []string
		violations     = map[string]*Violation{}
		leakOrder      []string
		leaks          = map[string]*LeakType{}
		complianceMax  = RiskSafe
		leakMax        = RiskSafe
		stats          = map[string]*ParticipantStats{}
		scores         = make([]float64, 0, len(items))
		first, last    time.Time
	)

	for _, item := range items {
		verdict := item.Verdict
		if verdict == nil {
			verdict = FallbackVerdict()
		}
		msg := item.Message

		report.Summary.OverallRiskLevel = MaxRisk(report.Summary.OverallRiskLevel, verdict.Risk)
		scores = append(scores, verdict.Risk.Score())

		if ts, ok := parseTimestamp(msg.Timestamp); ok {
			if first.IsZero() || ts.Before(first) {
				first = ts
			}
			if last.IsZero() || ts.After(last) {
				last = ts
			}
		}

		st, ok := stats[msg.User]
		if !ok {
			st = &ParticipantStats{User: msg.User}
			stats[msg.User] = st
			report.Summary.Participants = append(report.Summary.Participants, msg.User)
		}
		st.MessageCount++
		st.RiskScore += verdict.Risk.Score()
		if verdict.Risk > RiskSafe {
			st.Violations++
			report.TimelineAnalysis.RiskTimeline = append(report.TimelineAnalysis.RiskTimeline, TimelineEntry{
				Timestamp: msg.Timestamp,
				RiskLevel: verdict.Risk,
				Message:   msg.Content,
				User:      msg.User,
			})
		}

		if risk, types := complianceRisk(verdict); risk > RiskSafe {
			report.ComplianceReport.TotalViolations++
			complianceMax = MaxRisk(complianceMax, risk)
			for _, t := range types {
				v, ok := violations[t]
				if !ok {
					v = &Violation{Type: t, Examples: []string{}}
					violations[t] = v
					violationOrder = append(violationOrder, t)
				}
				v.Count++
				if sev := verdict.SourceRiskFor(complianceSourcesOf(t)...); severityRank(sev.Severity()) > severityRank(v.Severity) {
					v.Severity = sev.Severity()
				}
				if len(v.Examples) < maxViolationExamples {
					v.Examples = append(v.Examples, msg.Content)
				}
			}
			report.DetailedFindings = append(report.DetailedFindings, newFinding(
				len(report.DetailedFindings)+1, FindingComplianceViolation, risk, verdict, msg,
			))
		}

		if risk := verdict.SourceRiskFor(confidentialSources...); risk > RiskSafe {
			report.ConfidentialReport.TotalLeaks++
			leakMax = MaxRisk(leakMax, risk)
			for _, t := range leakTypesOf(verdict) {
				l, ok := leaks[t]
				if !ok {
					l = &LeakType{Type: t, RiskLevel: RiskSafe.Severity()}
					leaks[t] = l
					leakOrder = append(leakOrder, t)
				}
				l.Count++
				if severityRank(risk.Severity()) > severityRank(l.RiskLevel) {
					l.RiskLevel = risk.Severity()
				}
			}
			report.DetailedFindings = append(report.DetailedFindings, newFinding(
				len(report.DetailedFindings)+1, FindingConfidentialLeak, risk, verdict, msg,
			))
		}
	}

	if !first.IsZero() && !last.IsZero() {
		report.Summary.ChatDurationMinutes = int(last.Sub(first).Minutes())
	}

	total := float64(len(items))
	report.ComplianceReport.ViolationRate = round2(float64(report.ComplianceReport.TotalViolations) / total)
	report.ComplianceReport.LegalRiskLevel = complianceMax.Severity()
	for _, t := range violationOrder {
		report.ComplianceReport.Violations = append(report.ComplianceReport.Violations, *violations[t])
		if action, ok := recommendedActions[t]; ok {
			report.ComplianceReport.RecommendedActions = append(report.ComplianceReport.RecommendedActions, action)
		}
	}

	report.ConfidentialReport.SecurityRiskLevel = leakMax.Severity()
	for _, t := range leakOrder {
		report.ConfidentialReport.LeakTypes = append(report.ConfidentialReport.LeakTypes, *leaks[t])
	}
	if report.ConfidentialReport.TotalLeaks > 0 {
		report.ConfidentialReport.MitigationSteps = append(report.ConfidentialReport.MitigationSteps, mitigationSteps...)
	}

	for _, user := range report.Summary.Participants {
		st := stats[user]
		st.RiskScore = round2(st.RiskScore / float64(st.MessageCount))
		report.TimelineAnalysis.ParticipantStats = append(report.TimelineAnalysis.ParticipantStats, *st)
	}
	report.TimelineAnalysis.RiskTrend = riskTrend(scores)

	return report
}

// SourceRiskFor returns the highest risk reported by any of the given sources.
func (v *Verdict) SourceRiskFor(sources ...string) RiskLevel {
	risk := RiskSafe
	for _, s := range sources {
		if r, ok := v.SourceRisks[s]; ok {
			risk = MaxRisk(risk, r)
		}
	}
	return risk
}

func complianceRisk(v *Verdict) (RiskLevel, []string) {
	risk := RiskSafe
	var types []string
	seen := map[string]bool{}
	sources := make([]string, 0, len(complianceTypes))
	for s := range complianceTypes {
		sources = append(sources, s)
	}
	sort.Strings(sources)
	for _, s := range sources {
		r, ok := v.SourceRisks[s]
		if !ok || r == RiskSafe {
			continue
		}
		risk = MaxRisk(risk, r)
		t := complianceTypes[s]
		if !seen[t] {
			seen[t] = true
			types = append(types, t)
		}
	}
	return risk, types
}

func complianceSourcesOf(violationType string) []string {
	var sources []string
	for s, t := range complianceTypes {
		if t == violationType {
			sources = append(sources, s)
		}
	}
	return sources
}

func leakTypesOf(v *Verdict) []string {
	var types []string
	seen := map[string]bool{}
	for _, source := range confidentialSources {
		detail, ok := v.Detail[source].(map[string]interface{})
		if !ok {
			continue
		}
		for _, key := range []string{"detected_info_types", "info_types", "detected_patterns"} {
			for _, t := range StringList(detail[key]) {
				if !seen[t] {
					seen[t] = true
					types = append(types, t)
				}
			}
		}
	}
	if len(types) == 0 {
		types = append(types, defaultLeakType)
	}
	return types
}

func newFinding(id int, findingType string, risk RiskLevel, v *Verdict, msg ChatMessage) Finding {
	description := strings.Join(v.DetectedIssues, ", ")
	recommendation := ""
	if len(v.Suggestions) > 0 {
		recommendation = v.Suggestions[0]
	}
	return Finding{
		FindingID:      id,
		Type:           findingType,
		Severity:       risk.Severity(),
		Description:    description,
		Message:        msg.Content,
		User:           msg.User,
		Timestamp:      msg.Timestamp,
		Recommendation: recommendation,
	}
}

// riskTrend compares the mean risk of the first and second half of the conversation.
func riskTrend(scores []float64) string {
	if len(scores) < 2 {
		return TrendStable
	}
	mid := len(scores) / 2
	head, tail := mean(scores[:mid]), mean(scores[mid:])
	switch {
	case tail-head > 1e-9:
		return TrendIncreasing
	case head-tail > 1e-9:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func severityRank(s string) int {
	switch s {
	case "medium":
		return 1
	case "high":
		return 2
	default:
		return 0
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// StringList reads a JSON-decoded array of strings, dropping non-string items.
func StringList(v interface{}) []string {
	switch items := v.(type) {
	case []string:
		return items
	case []interface{}:
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
