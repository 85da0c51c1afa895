package analysis

const (
	SourceHarassment      = "harassment"
	SourceConfidentiality = "confidentiality"
	SourceSentiment       = "sentiment"
	SourceToxicity        = "toxicity"
	SourcePolicy          = "policy"
)

// Record is the structured result of one analysis call. Records are built once
// per call and must not be mutated after they are handed to Aggregate.
type Record struct {
	Source         string                 `json:"source"`
	Risk           *RiskLevel             `json:"risk,omitempty"`
	Issues         []string               `json:"issues"`
	FlaggedContent []string               `json:"flagged_content"`
	Suggestions    []string               `json:"suggestions"`
	Confidence     float64                `json:"confidence"`
	Detail         map[string]interface{} `json:"detail"`
	Failed         bool                   `json:"failed"`
}

// NewFailedRecord marks a source whose call errored or timed out.
func NewFailedRecord(source string) *Record {
	return &Record{
		Source: source,
		Failed: true,
	}
}

func (r *Record) RiskOrSafe() RiskLevel {
	if r == nil || r.Risk == nil {
		return RiskSafe
	}
	return *r.Risk
}
