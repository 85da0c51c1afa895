package analysis

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/NeuralTrust/TrustChat/pkg/domain/analysis"
)

const defaultConfidence = 0.8

// Profile describes how a source's model output is read into a record.
type Profile struct {
	ClassifiesRisk    bool
	ToxicityScore     bool
	DefaultIssue      string
	DefaultSuggestion string
}

var Profiles = map[string]Profile{
	analysis.SourceHarassment: {
		ClassifiesRisk:    true,
		DefaultIssue:      "harassment_detected",
		DefaultSuggestion: "ハラスメントの可能性があります。適切な表現に変更してください。",
	},
	analysis.SourceConfidentiality: {
		ClassifiesRisk:    true,
		DefaultIssue:      "confidential_info_detected",
		DefaultSuggestion: "機密情報の可能性があります。共有前に確認してください。",
	},
	analysis.SourceSentiment: {},
	analysis.SourceToxicity: {
		ClassifiesRisk:    true,
		ToxicityScore:     true,
		DefaultIssue:      "toxic_content",
		DefaultSuggestion: "不適切な表現が含まれています。建設的な表現に変更してください。",
	},
}

var consumedKeys = map[string]struct{}{
	"detected_issues":   {},
	"flagged_content":   {},
	"keywords_detected": {},
	"detected_keywords": {},
	"suggestions":       {},
	"confidence":        {},
	"confidence_score":  {},
}

// violationKeys are the boolean verdict fields the prompts ask for.
var violationKeys = []string{"is_violation", "is_harassment", "contains_confidential", "is_toxic"}

// MapRecord turns an extracted model object into a record for source.
// recovered is false when the object was synthesized by the extractor.
func MapRecord(source string, profile Profile, parsed map[string]interface{}, recovered bool) *analysis.Record {
	record := &analysis.Record{
		Source:         source,
		Issues:         []string{},
		FlaggedContent: []string{},
		Suggestions:    []string{},
		Confidence:     defaultConfidence,
		Detail:         map[string]interface{}{},
	}

	risk := analysis.RiskSafe
	if profile.ClassifiesRisk {
		risk = deriveRisk(profile, parsed)
		record.Risk = analysis.Risk(risk)
	}

	record.Issues = append(record.Issues, analysis.StringList(parsed["detected_issues"])...)
	if len(record.Issues) == 0 && risk > analysis.RiskSafe && profile.DefaultIssue != "" {
		record.Issues = append(record.Issues, profile.DefaultIssue)
	}

	for _, key := range []string{"flagged_content", "keywords_detected", "detected_keywords"} {
		record.FlaggedContent = append(record.FlaggedContent, analysis.StringList(parsed[key])...)
	}

	record.Suggestions = append(record.Suggestions, analysis.StringList(parsed["suggestions"])...)
	if len(record.Suggestions) == 0 && risk > analysis.RiskSafe && profile.DefaultSuggestion != "" {
		record.Suggestions = append(record.Suggestions, profile.DefaultSuggestion)
	}

	if c, ok := number(parsed["confidence"]); ok {
		record.Confidence = clamp01(c)
	} else if c, ok := number(parsed["confidence_score"]); ok {
		record.Confidence = clamp01(c)
	}

	for k, v := range parsed {
		if _, skip := consumedKeys[k]; skip {
			continue
		}
		record.Detail[k] = v
	}
	if !recovered {
		record.Detail["fallback"] = true
	}
	return record
}

func deriveRisk(profile Profile, parsed map[string]interface{}) analysis.RiskLevel {
	if s, ok := parsed["risk_level"].(string); ok && s != "" {
		if r, err := analysis.ParseRiskLevel(s); err == nil {
			return r
		}
		if r, ok := analysis.SeverityRisk(s); ok {
			return r
		}
	}

	if profile.ToxicityScore {
		if score, ok := number(parsed["toxicity_score"]); ok {
			switch {
			case score > 0.7:
				return analysis.RiskDanger
			case score > 0.3:
				return analysis.RiskWarning
			default:
				return analysis.RiskSafe
			}
		}
	}

	violation, hasVerdict := false, false
	for _, key := range violationKeys {
		if b, ok := parsed[key].(bool); ok {
			hasVerdict = true
			violation = violation || b
		}
	}
	if hasVerdict && !violation {
		return analysis.RiskSafe
	}

	severity, _ := parsed["severity"].(string)
	if r, ok := analysis.SeverityRisk(severity); ok && severity != "" {
		if violation && r == analysis.RiskSafe {
			return analysis.RiskWarning
		}
		return r
	}
	if violation {
		return analysis.RiskWarning
	}
	return analysis.RiskSafe
}

func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

func clamp01(f float64) float64 {
	switch {
	case math.IsNaN(f):
		return defaultConfidence
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
