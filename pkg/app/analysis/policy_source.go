package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	appPolicy "github.com/NeuralTrust/TrustChat/pkg/app/policy"
	"github.com/NeuralTrust/TrustChat/pkg/domain/analysis"
)

const (
	policyIssue      = "policy_violation"
	policyWarning    = "policy_warning"
	policyConfidence = 1.0
)

type policySource struct {
	checker appPolicy.Checker
}

// NewPolicySource exposes the rule checker as an analysis source.
func NewPolicySource(checker appPolicy.Checker) Source {
	return &policySource{checker: checker}
}

func (s *policySource) Name() string {
	return analysis.SourcePolicy
}

func (s *policySource) Analyze(ctx context.Context, in Input) (*analysis.Record, error) {
	result := s.checker.Check(ctx, in.Message, in.UserID, nil)
	if result == nil {
		return nil, errors.New("policy check returned no result")
	}
	if result.Failed() {
		return nil, fmt.Errorf("policy check failed: %s", result.Error)
	}

	record := &analysis.Record{
		Source:         analysis.SourcePolicy,
		Risk:           analysis.Risk(result.RiskLevel()),
		Issues:         []string{},
		FlaggedContent: []string{},
		Suggestions:    []string{},
		Confidence:     policyConfidence,
		Detail: map[string]interface{}{
			"compliant":              result.Compliant,
			"violations":             result.Violations,
			"warnings":               result.Warnings,
			"total_policies_checked": result.TotalPoliciesChecked,
		},
	}

	notes := make([]string, 0, len(result.Violations)+len(result.Warnings))
	for _, v := range result.Violations {
		record.FlaggedContent = append(record.FlaggedContent, v.MatchedPatterns...)
		record.Suggestions = append(record.Suggestions, fmt.Sprintf("「%s」に違反しています: %s", v.PolicyName, v.Description))
		notes = append(notes, fmt.Sprintf("%s: %s", v.PolicyName, v.Description))
	}
	for _, w := range result.Warnings {
		record.Suggestions = append(record.Suggestions, w.Recommendations...)
		notes = append(notes, fmt.Sprintf("%s: %s", w.PolicyName, w.Description))
	}
	switch {
	case len(result.Violations) > 0:
		record.Issues = append(record.Issues, policyIssue)
	case len(result.Warnings) > 0:
		record.Issues = append(record.Issues, policyWarning)
	}
	if len(notes) > 0 {
		record.Detail["compliance_notes"] = strings.Join(notes, "; ")
	}
	return record, nil
}
