package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidRiskLevel = errors.New("invalid risk level")

// RiskLevel is totally ordered: RiskSafe < RiskWarning < RiskDanger.
type RiskLevel int

const (
	RiskSafe RiskLevel = iota
	RiskWarning
	RiskDanger
)

func (r RiskLevel) String() string {
	switch r {
	case RiskSafe:
		return "safe"
	case RiskWarning:
		return "warning"
	case RiskDanger:
		return "danger"
	default:
		return fmt.Sprintf("RiskLevel(%d)", int(r))
	}
}

// Score maps a level onto [0,1] for averaging in reports.
func (r RiskLevel) Score() float64 {
	switch r {
	case RiskWarning:
		return 0.5
	case RiskDanger:
		return 1
	default:
		return 0
	}
}

// Severity renders the level using the low|medium|high vocabulary of reports.
func (r RiskLevel) Severity() string {
	switch r {
	case RiskWarning:
		return "medium"
	case RiskDanger:
		return "high"
	default:
		return "low"
	}
}

func (r RiskLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *RiskLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	level, err := ParseRiskLevel(s)
	if err != nil {
		return err
	}
	*r = level
	return nil
}

// ParseRiskLevel accepts safe|warning|danger in any letter case.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "safe":
		return RiskSafe, nil
	case "warning":
		return RiskWarning, nil
	case "danger":
		return RiskDanger, nil
	}
	return RiskSafe, fmt.Errorf("%w: %q", ErrInvalidRiskLevel, s)
}

// SeverityRisk maps the severity vocabulary used by model output and policies
// (none|low|medium|high|critical) onto a risk level.
func SeverityRisk(severity string) (RiskLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(severity)) {
	case "none", "":
		return RiskSafe, true
	case "low", "medium":
		return RiskWarning, true
	case "high", "critical":
		return RiskDanger, true
	}
	return RiskSafe, false
}

func MaxRisk(a, b RiskLevel) RiskLevel {
	if b > a {
		return b
	}
	return a
}

// Risk returns a pointer to level, for optional record fields.
func Risk(level RiskLevel) *RiskLevel {
	return &level
}
