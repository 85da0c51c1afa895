package analysis

import (
	"testing"

	"github.com/NeuralTrust/TrustChat/pkg/domain/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapRecord_Harassment(t *testing.T) {
	parsed := map[string]interface{}{
		"is_violation":    true,
		"risk_level":      "danger",
		"severity":        "high",
		"flagged_content": []interface{}{"ばか"},
		"confidence":      0.9,
		"explanation":     "侮辱的な表現",
	}

	r := MapRecord(analysis.SourceHarassment, Profiles[analysis.SourceHarassment], parsed, true)

	require.NotNil(t, r.Risk)
	assert.Equal(t, analysis.RiskDanger, *r.Risk)
	assert.Equal(t, []string{"harassment_detected"}, r.Issues)
	assert.Equal(t, []string{"ばか"}, r.FlaggedContent)
	assert.Equal(t, []string{Profiles[analysis.SourceHarassment].DefaultSuggestion}, r.Suggestions)
	assert.Equal(t, 0.9, r.Confidence)
	assert.Equal(t, "侮辱的な表現", r.Detail["explanation"])
	assert.NotContains(t, r.Detail, "flagged_content")
	assert.NotContains(t, r.Detail, "fallback")
}

func TestMapRecord_RiskDerivation(t *testing.T) {
	tests := []struct {
		name   string
		source string
		parsed map[string]interface{}
		want   analysis.RiskLevel
	}{
		{"explicit level any case", analysis.SourceHarassment, map[string]interface{}{"risk_level": "WARNING"}, analysis.RiskWarning},
		{"severity word as level", analysis.SourceConfidentiality, map[string]interface{}{"risk_level": "critical"}, analysis.RiskDanger},
		{"toxicity score high", analysis.SourceToxicity, map[string]interface{}{"toxicity_score": 0.9}, analysis.RiskDanger},
		{"toxicity score medium", analysis.SourceToxicity, map[string]interface{}{"toxicity_score": "0.5"}, analysis.RiskWarning},
		{"toxicity score low", analysis.SourceToxicity, map[string]interface{}{"toxicity_score": 0.3}, analysis.RiskSafe},
		{"level wins over score", analysis.SourceToxicity, map[string]interface{}{"risk_level": "safe", "toxicity_score": 0.95}, analysis.RiskSafe},
		{"no violation ignores severity", analysis.SourceHarassment, map[string]interface{}{"is_violation": false, "severity": "high"}, analysis.RiskSafe},
		{"violation with no severity", analysis.SourceHarassment, map[string]interface{}{"is_harassment": true}, analysis.RiskWarning},
		{"violation with none severity", analysis.SourceConfidentiality, map[string]interface{}{"contains_confidential": true, "severity": "none"}, analysis.RiskWarning},
		{"violation with high severity", analysis.SourceToxicity, map[string]interface{}{"is_toxic": true, "severity": "high"}, analysis.RiskDanger},
		{"nothing to go on", analysis.SourceHarassment, map[string]interface{}{"explanation": "?"}, analysis.RiskSafe},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := MapRecord(tt.source, Profiles[tt.source], tt.parsed, true)
			require.NotNil(t, r.Risk)
			assert.Equal(t, tt.want, *r.Risk)
		})
	}
}

func TestMapRecord_SentimentHasNoRisk(t *testing.T) {
	parsed := map[string]interface{}{"sentiment": "negative", "confidence": 0.7}

	r := MapRecord(analysis.SourceSentiment, Profiles[analysis.SourceSentiment], parsed, true)

	assert.Nil(t, r.Risk)
	assert.Empty(t, r.Issues)
	assert.Empty(t, r.Suggestions)
	assert.Equal(t, "negative", r.Detail["sentiment"])
}

func TestMapRecord_ModelListsWinOverDefaults(t *testing.T) {
	parsed := map[string]interface{}{
		"risk_level":      "warning",
		"detected_issues": []interface{}{"personal_info"},
		"suggestions":     []interface{}{"電話番号を削除してください"},
	}

	r := MapRecord(analysis.SourceConfidentiality, Profiles[analysis.SourceConfidentiality], parsed, true)

	assert.Equal(t, []string{"personal_info"}, r.Issues)
	assert.Equal(t, []string{"電話番号を削除してください"}, r.Suggestions)
}

func TestMapRecord_Confidence(t *testing.T) {
	profile := Profiles[analysis.SourceHarassment]

	assert.Equal(t, defaultConfidence, MapRecord("harassment", profile, map[string]interface{}{}, true).Confidence)
	assert.Equal(t, 1.0, MapRecord("harassment", profile, map[string]interface{}{"confidence": "1.5"}, true).Confidence)
	assert.Equal(t, 0.0, MapRecord("harassment", profile, map[string]interface{}{"confidence": -2}, true).Confidence)
	assert.Equal(t, 0.4, MapRecord("harassment", profile, map[string]interface{}{"confidence_score": 0.4}, true).Confidence)
	assert.Equal(t, defaultConfidence, MapRecord("harassment", profile, map[string]interface{}{"confidence": "high"}, true).Confidence)
}

func TestMapRecord_MarksSynthesizedObjects(t *testing.T) {
	r := MapRecord(analysis.SourceHarassment, Profiles[analysis.SourceHarassment], map[string]interface{}{"risk_level": "warning"}, false)
	assert.Equal(t, true, r.Detail["fallback"])
}
