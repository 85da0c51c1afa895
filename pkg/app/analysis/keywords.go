package analysis

import (
	"regexp"
	"unicode"

	"github.com/NeuralTrust/TrustChat/pkg/domain/analysis"
)

const keywordOnlyExplanation = "AI分析失敗、キーワードベース分析のみ"

type keywordRule struct {
	label  string
	re     *regexp.Regexp
	danger bool
}

// KeywordTable is the deterministic scan a source falls back to when its
// model call fails.
type KeywordTable struct {
	source         string
	detailKey      string
	rules          []keywordRule
	hitConfidence  float64
	missConfidence float64
}

// Scan matches message against every rule and returns a <source>_keywords
// record. Any hit is a warning; a hit on a danger rule is dangerous.
func (t *KeywordTable) Scan(message string) *analysis.Record {
	profile := Profiles[t.source]
	risk := analysis.RiskSafe
	hits := []string{}
	for _, rule := range t.rules {
		if !rule.re.MatchString(message) {
			continue
		}
		hits = append(hits, rule.label)
		level := analysis.RiskWarning
		if rule.danger {
			level = analysis.RiskDanger
		}
		risk = analysis.MaxRisk(risk, level)
	}

	record := &analysis.Record{
		Source:         t.source + analysis.KeywordSourceSuffix,
		Risk:           analysis.Risk(risk),
		Issues:         []string{},
		FlaggedContent: hits,
		Suggestions:    []string{},
		Confidence:     t.missConfidence,
		Detail: map[string]interface{}{
			t.detailKey:   hits,
			"explanation": keywordOnlyExplanation,
		},
	}
	if risk > analysis.RiskSafe {
		record.Confidence = t.hitConfidence
		record.Issues = append(record.Issues, profile.DefaultIssue)
		record.Suggestions = append(record.Suggestions, profile.DefaultSuggestion)
	}
	return record
}

var harassmentKillWords = map[string]bool{
	"しね": true, "殺す": true, "消えろ": true, "kill": true, "die": true,
}

var harassmentKeywords = []string{
	"ばか", "あほ", "くず", "うざい", "きもい", "しね", "殺す", "消えろ",
	"セクハラ", "パワハラ", "いじめ", "差別", "暴力", "脅迫",
	"stupid", "idiot", "fool", "hate", "kill", "die", "ugly", "worthless",
	"harassment", "discrimination", "bullying", "threatening",
}

// NewHarassmentKeywords builds the harassment table. Latin keywords match on
// word boundaries; others match anywhere.
func NewHarassmentKeywords() *KeywordTable {
	rules := make([]keywordRule, 0, len(harassmentKeywords))
	for _, kw := range harassmentKeywords {
		pattern := regexp.QuoteMeta(kw)
		if isASCII(kw) {
			pattern = `\b` + pattern + `\b`
		}
		rules = append(rules, keywordRule{
			label:  kw,
			re:     regexp.MustCompile("(?i)" + pattern),
			danger: harassmentKillWords[kw],
		})
	}
	return &KeywordTable{
		source:         analysis.SourceHarassment,
		detailKey:      "detected_keywords",
		rules:          rules,
		hitConfidence:  0.7,
		missConfidence: 0.1,
	}
}

// NewConfidentialityPatterns builds the confidentiality table. Card numbers,
// api keys and passwords are dangerous.
func NewConfidentialityPatterns() *KeywordTable {
	patterns := []struct {
		name    string
		pattern string
		danger  bool
	}{
		{"email", `\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`, false},
		{"phone", `\b\d{3}-\d{4}-\d{4}\b|\b\d{11}\b`, false},
		{"credit_card", `\b\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`, true},
		{"ssn", `\b\d{3}-\d{2}-\d{4}\b`, false},
		{"bank_account", `\b\d{7,12}\b`, false},
		{"password", `(?i)(password|pass|pwd)[\s:=]+\S+`, true},
		{"api_key", `(?i)(api[_-]?key|token)[\s:=]+[A-Za-z0-9_-]+`, true},
		{"confidential", `(?i)(機密|秘密|confidential|secret|private)`, false},
		{"salary", `(?i)(給与|年収|salary|income)[\s:：]*\d+`, false},
		{"personal_id", `(?i)(個人番号|マイナンバー|personal[_\s]?id)[\s:：]*\d+`, false},
	}
	rules := make([]keywordRule, 0, len(patterns))
	for _, p := range patterns {
		rules = append(rules, keywordRule{
			label:  p.name,
			re:     regexp.MustCompile(p.pattern),
			danger: p.danger,
		})
	}
	return &KeywordTable{
		source:         analysis.SourceConfidentiality,
		detailKey:      "detected_patterns",
		rules:          rules,
		hitConfidence:  0.8,
		missConfidence: 0.2,
	}
}

// KeywordTableFor returns the fallback table for source, or nil.
func KeywordTableFor(source string) *KeywordTable {
	switch source {
	case analysis.SourceHarassment:
		return NewHarassmentKeywords()
	case analysis.SourceConfidentiality:
		return NewConfidentialityPatterns()
	}
	return nil
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}
