package analysis

import (
	"fmt"
	"strings"

	"github.com/NeuralTrust/TrustChat/pkg/domain/analysis"
)

// SystemPrompt is sent with every model call.
const SystemPrompt = "あなたは職場チャットのコンプライアンス分析を行うアシスタントです。必ず指定されたJSON形式のみで回答してください。"

var promptTemplates = map[string]string{
	analysis.SourceHarassment: `以下のメッセージをハラスメントの観点で分析してください。
%s
メッセージ: %q

以下の形式でJSONで回答してください：
{
  "is_violation": true/false,
  "risk_level": "safe|warning|danger",
  "violation_type": "verbal_abuse|sexual_harassment|discrimination|bullying|none",
  "severity": "none|low|medium|high|critical",
  "detected_issues": ["..."],
  "flagged_content": ["問題のある表現"],
  "suggestions": ["改善案"],
  "confidence": 0.0-1.0,
  "explanation": "簡潔な説明"
}`,
	analysis.SourceConfidentiality: `以下のメッセージに機密情報や個人情報が含まれているか分析してください。
%s
メッセージ: %q

以下の形式でJSONで回答してください：
{
  "is_violation": true/false,
  "risk_level": "safe|warning|danger",
  "detected_info_types": ["personal_info", "financial_data", "business_secret", "customer_data", "credentials"],
  "severity": "none|low|medium|high|critical",
  "flagged_content": ["該当箇所"],
  "suggestions": ["改善案"],
  "confidence": 0.0-1.0,
  "explanation": "簡潔な説明"
}`,
	analysis.SourceSentiment: `以下のメッセージの感情を分析してください。
%s
メッセージ: %q

以下の形式でJSONで回答してください：
{
  "sentiment": "positive|negative|neutral",
  "confidence": 0.0-1.0,
  "emotional_intensity": 0.0-1.0,
  "dominant_emotion": "anger|joy|sadness|fear|surprise|disgust|neutral"
}`,
	analysis.SourceToxicity: `以下のメッセージの毒性レベルを分析してください。
%s
メッセージ: %q

以下の形式でJSONで回答してください：
{
  "is_toxic": true/false,
  "toxicity_score": 0.0-1.0,
  "toxicity_types": ["insult", "threat", "profanity", "identity_attack"],
  "flagged_content": ["該当箇所"],
  "confidence": 0.0-1.0,
  "explanation": "簡潔な説明"
}`,
}

// BuildPrompt renders the prompt for source with history lines quoted.
func BuildPrompt(source string, in Input) (string, error) {
	tmpl, ok := promptTemplates[source]
	if !ok {
		return "", fmt.Errorf("no prompt for source %q", source)
	}
	return fmt.Sprintf(tmpl, historyBlock(in.History), in.Message), nil
}

func historyBlock(history []string) string {
	if len(history) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n直近の会話（古い順）:\n")
	for _, msg := range history {
		b.WriteString(fmt.Sprintf("- %q\n", msg))
	}
	return b.String()
}
