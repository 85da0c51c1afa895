package extractor

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/NeuralTrust/TrustChat/pkg/domain/analysis"
)

const (
	explanationLimit    = 200
	fallbackConfidence  = 0.3
	retrySuggestion     = "詳細な分析のため、再試行してください"
	unknownViolation    = "unknown"
	fallbackExplanation = "解析結果を構造化できませんでした"
)

// DefaultFallbackKeywords are scanned when model output is not valid JSON.
var DefaultFallbackKeywords = []string{"violation", "違反", "inappropriate", "不適切"}

type Extractor interface {
	// Extract returns the JSON object embedded in raw model output. recovered
	// is false when the object was synthesized from keyword heuristics.
	Extract(raw string) (parsed map[string]interface{}, recovered bool)
}

type extractor struct {
	keywords []string
}

func New(keywords ...string) Extractor {
	if len(keywords) == 0 {
		keywords = DefaultFallbackKeywords
	}
	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			lowered = append(lowered, k)
		}
	}
	return &extractor{keywords: lowered}
}

func (e *extractor) Extract(raw string) (parsed map[string]interface{}, recovered bool) {
	if raw == "" {
		return nil, false
	}
	defer func() {
		if r := recover(); r != nil {
			parsed, recovered = e.fallback(raw), false
		}
	}()

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		var obj map[string]interface{}
		if err := json.Unmarshal([]byte(raw[start:end+1]), &obj); err == nil && obj != nil {
			return obj, true
		}
	}
	return e.fallback(raw), false
}

func (e *extractor) fallback(raw string) map[string]interface{} {
	if e.matches(raw) {
		return map[string]interface{}{
			"risk_level":     analysis.RiskWarning.String(),
			"is_violation":   true,
			"violation_type": unknownViolation,
			"severity":       analysis.RiskWarning.Severity(),
			"explanation":    truncate(raw, explanationLimit),
			"confidence":     fallbackConfidence,
			"suggestions":    []interface{}{retrySuggestion},
		}
	}
	return map[string]interface{}{
		"risk_level":     analysis.RiskSafe.String(),
		"is_violation":   false,
		"violation_type": "none",
		"severity":       "none",
		"explanation":    fallbackExplanation,
		"confidence":     fallbackConfidence,
		"suggestions":    []interface{}{},
	}
}

func (e *extractor) matches(raw string) bool {
	lower := strings.ToLower(raw)
	for _, k := range e.keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "..."
}
