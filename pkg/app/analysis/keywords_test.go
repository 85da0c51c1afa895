package analysis

import (
	"testing"

	"github.com/NeuralTrust/TrustChat/pkg/domain/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHarassmentKeywords_Scan(t *testing.T) {
	table := NewHarassmentKeywords()

	tests := []struct {
		name       string
		message    string
		risk       analysis.RiskLevel
		hits       []string
		confidence float64
	}{
		{"insult", "お前は本当にばかだな", analysis.RiskWarning, []string{"ばか"}, 0.7},
		{"threat", "I will KILL you", analysis.RiskDanger, []string{"kill"}, 0.7},
		{"japanese threat", "しねばいいのに", analysis.RiskDanger, []string{"しね"}, 0.7},
		{"word boundary", "great skill and a diet plan", analysis.RiskSafe, []string{}, 0.1},
		{"clean", "明日の会議は10時からです", analysis.RiskSafe, []string{}, 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := table.Scan(tt.message)

			assert.Equal(t, "harassment_keywords", r.Source)
			require.NotNil(t, r.Risk)
			assert.Equal(t, tt.risk, *r.Risk)
			assert.Equal(t, tt.hits, r.FlaggedContent)
			assert.Equal(t, tt.hits, r.Detail["detected_keywords"])
			assert.Equal(t, tt.confidence, r.Confidence)
			assert.Equal(t, keywordOnlyExplanation, r.Detail["explanation"])
			if tt.risk == analysis.RiskSafe {
				assert.Empty(t, r.Issues)
			} else {
				assert.Equal(t, []string{"harassment_detected"}, r.Issues)
			}
		})
	}
}

func TestConfidentialityPatterns_Scan(t *testing.T) {
	table := NewConfidentialityPatterns()

	danger := table.Scan("password: hunter2")
	require.NotNil(t, danger.Risk)
	assert.Equal(t, analysis.RiskDanger, *danger.Risk)
	assert.Equal(t, []string{"password"}, danger.Detail["detected_patterns"])
	assert.Equal(t, 0.8, danger.Confidence)

	warning := table.Scan("連絡先は taro@example.com です")
	assert.Equal(t, analysis.RiskWarning, *warning.Risk)
	assert.Equal(t, []string{"email"}, warning.FlaggedContent)

	card := table.Scan("カード番号 4111-1111-1111-1111")
	assert.Equal(t, analysis.RiskDanger, *card.Risk)
	assert.Contains(t, card.FlaggedContent, "credit_card")

	clean := table.Scan("ランチに行きましょう")
	assert.Equal(t, analysis.RiskSafe, *clean.Risk)
	assert.Equal(t, 0.2, clean.Confidence)
}

func TestKeywordTableFor(t *testing.T) {
	assert.NotNil(t, KeywordTableFor(analysis.SourceHarassment))
	assert.NotNil(t, KeywordTableFor(analysis.SourceConfidentiality))
	assert.Nil(t, KeywordTableFor(analysis.SourceToxicity))
	assert.Nil(t, KeywordTableFor(analysis.SourceSentiment))
}
