package policy

import (
	"time"

	"github.com/NeuralTrust/TrustChat/pkg/domain/analysis"
)

const (
	WarningTypeCheckError = "policy_check_error"
	SystemPolicyID        = "system"
)

type Violation struct {
	PolicyID        string   `json:"policy_id"`
	PolicyName      string   `json:"policy_name"`
	ViolationType   string   `json:"violation_type"`
	Severity        string   `json:"severity"`
	Description     string   `json:"description"`
	MatchedPatterns []string `json:"matched_patterns"`
}

type Warning struct {
	PolicyID        string   `json:"policy_id"`
	PolicyName      string   `json:"policy_name"`
	WarningType     string   `json:"warning_type"`
	Description     string   `json:"description"`
	Recommendations []string `json:"recommendations"`
}

type Result struct {
	Compliant            bool        `json:"compliant"`
	Violations           []Violation `json:"violations"`
	Warnings             []Warning   `json:"warnings"`
	TotalPoliciesChecked int         `json:"total_policies_checked"`
	CheckTimestamp       time.Time   `json:"check_timestamp"`
	Error                string      `json:"error,omitempty"`
}

// RiskLevel folds the result into the verdict scale. High or critical
// violations are dangerous; anything else flagged is a warning.
func (r *Result) RiskLevel() analysis.RiskLevel {
	level := analysis.RiskSafe
	for _, v := range r.Violations {
		if v.Severity == "high" || v.Severity == "critical" {
			return analysis.RiskDanger
		}
		level = analysis.RiskWarning
	}
	if len(r.Warnings) > 0 {
		level = analysis.RiskWarning
	}
	return level
}

// Failed reports whether the check itself could not run.
func (r *Result) Failed() bool {
	return r.Error != ""
}

func failOpen(err error, now time.Time) *Result {
	return &Result{
		Compliant:  true,
		Violations: []Violation{},
		Warnings: []Warning{{
			PolicyID:        SystemPolicyID,
			PolicyName:      "system error",
			WarningType:     WarningTypeCheckError,
			Description:     "policy check error: " + err.Error(),
			Recommendations: []string{"contact your system administrator"},
		}},
		CheckTimestamp: now,
		Error:          err.Error(),
	}
}
