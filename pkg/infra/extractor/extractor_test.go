package extractor_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/NeuralTrust/TrustChat/pkg/infra/extractor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_EmbeddedObject(t *testing.T) {
	ext := extractor.New()
	objects := []map[string]interface{}{
		{"risk_level": "danger", "detected_issues": []interface{}{"harassment_detected"}, "confidence": 0.95},
		{"nested": map[string]interface{}{"a": []interface{}{1.0, "b"}}, "empty": map[string]interface{}{}},
		{},
	}

	for _, obj := range objects {
		raw, err := json.Marshal(obj)
		require.NoError(t, err)

		parsed, recovered := ext.Extract("Here is the result: " + string(raw) + " hope it helps")
		assert.True(t, recovered)
		assert.Equal(t, obj, parsed)
	}
}

func TestExtract_MarkdownFence(t *testing.T) {
	raw := "```json\n{\"risk_level\": \"warning\", \"is_violation\": true}\n```"
	parsed, recovered := extractor.New().Extract(raw)

	assert.True(t, recovered)
	assert.Equal(t, "warning", parsed["risk_level"])
	assert.Equal(t, true, parsed["is_violation"])
}

func TestExtract_Empty(t *testing.T) {
	parsed, recovered := extractor.New().Extract("")
	assert.Nil(t, parsed)
	assert.False(t, recovered)
}

func TestExtract_KeywordFallback(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		risk string
	}{
		{"english keyword", "not json at all but contains the word violation", "warning"},
		{"case insensitive", "This is clearly INAPPROPRIATE", "warning"},
		{"japanese keyword", "このメッセージはポリシー違反です", "warning"},
		{"broken json with keyword", `{"risk_level": "danger", violation`, "warning"},
		{"garbage", "lorem ipsum dolor sit amet", "safe"},
		{"braces reversed", "} nothing here {", "safe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, recovered := extractor.New().Extract(tt.raw)
			assert.False(t, recovered)
			require.NotNil(t, parsed)
			assert.Equal(t, tt.risk, parsed["risk_level"])
			assert.Contains(t, parsed, "explanation")
			assert.Contains(t, parsed, "confidence")
		})
	}
}

func TestExtract_WarningShape(t *testing.T) {
	parsed, _ := extractor.New().Extract("violation detected")

	assert.Equal(t, true, parsed["is_violation"])
	assert.Equal(t, "unknown", parsed["violation_type"])
	assert.Equal(t, "medium", parsed["severity"])
	assert.Equal(t, "violation detected", parsed["explanation"])
	assert.Equal(t, 0.3, parsed["confidence"])
	assert.Len(t, parsed["suggestions"], 1)
}

func TestExtract_ExplanationIsBounded(t *testing.T) {
	raw := "violation " + strings.Repeat("違", 300)
	parsed, _ := extractor.New().Extract(raw)

	explanation, ok := parsed["explanation"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasSuffix(explanation, "..."))
	assert.Equal(t, 203, len([]rune(explanation)))
}

func TestExtract_CustomKeywords(t *testing.T) {
	ext := extractor.New("Forbidden")

	parsed, _ := ext.Extract("this is forbidden")
	assert.Equal(t, "warning", parsed["risk_level"])

	parsed, _ = ext.Extract("this is a violation")
	assert.Equal(t, "safe", parsed["risk_level"])
}
