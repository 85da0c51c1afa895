package analysis

// FallbackConfidence is the confidence of the fail-open verdict returned when
// no analysis record could be produced for a request.
const FallbackConfidence = 0.5

// Verdict is the aggregated outcome for one message.
type Verdict struct {
	Risk           RiskLevel              `json:"risk_level"`
	Confidence     float64                `json:"confidence"`
	DetectedIssues []string               `json:"detected_issues"`
	Suggestions    []string               `json:"suggestions"`
	FlaggedContent []string               `json:"flagged_content"`
	Detail         map[string]interface{} `json:"detailed_analysis"`

	// SourceRisks holds the risk reported by each non-failed, risk-classifying source.
	SourceRisks map[string]RiskLevel `json:"-"`
}

func emptyVerdict() *Verdict {
	return &Verdict{
		Risk:           RiskSafe,
		Confidence:     0,
		DetectedIssues: []string{},
		Suggestions:    []string{},
		FlaggedContent: []string{},
		Detail:         map[string]interface{}{},
		SourceRisks:    map[string]RiskLevel{},
	}
}

// FallbackVerdict is the single fail-open verdict: SAFE with FallbackConfidence.
func FallbackVerdict() *Verdict {
	v := emptyVerdict()
	v.Confidence = FallbackConfidence
	return v
}

// Aggregate folds records into a Verdict. Risk only ever moves upward, list
// fields keep first-seen order without duplicates, and failed records add
// nothing but an error marker in Detail. It never fails and holds no state.
func Aggregate(records []*Record) *Verdict {
	v := emptyVerdict()
	if len(records) == 0 {
		return v
	}

	issues := newOrderedSet(&v.DetectedIssues)
	suggestions := newOrderedSet(&v.Suggestions)
	flagged := newOrderedSet(&v.FlaggedContent)

	var confidenceSum float64
	var contributing int

	for _, record := range records {
		if record == nil {
			continue
		}
		if record.Failed {
			v.Detail[record.Source] = map[string]interface{}{"error": true}
			continue
		}

		if record.Risk != nil {
			v.Risk = MaxRisk(v.Risk, *record.Risk)
			v.SourceRisks[record.Source] = MaxRisk(v.SourceRisks[record.Source], *record.Risk)
		}

		issues.add(record.Issues...)
		suggestions.add(record.Suggestions...)
		flagged.add(record.FlaggedContent...)

		confidenceSum += record.Confidence
		contributing++

		detail := make(map[string]interface{}, len(record.Detail))
		for k, val := range record.Detail {
			detail[k] = val
		}
		v.Detail[record.Source] = detail
	}

	if contributing > 0 {
		v.Confidence = confidenceSum / float64(contributing)
	}
	return v
}

type orderedSet struct {
	seen map[string]struct{}
	dst  *[]string
}

func newOrderedSet(dst *[]string) *orderedSet {
	return &orderedSet{seen: make(map[string]struct{}), dst: dst}
}

func (s *orderedSet) add(values ...string) {
	for _, value := range values {
		if _, ok := s.seen[value]; ok {
			continue
		}
		s.seen[value] = struct{}{}
		*s.dst = append(*s.dst, value)
	}
}
