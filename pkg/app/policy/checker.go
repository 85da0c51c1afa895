package policy

import (
	"context"
	"time"

	domainPolicy "github.com/NeuralTrust/TrustChat/pkg/domain/policy"
	"github.com/NeuralTrust/TrustChat/pkg/infra/cache"
	"github.com/sirupsen/logrus"
)

//go:generate mockery --name=Checker --dir=. --output=./mocks --filename=policy_checker_mock.go --case=underscore --with-expecter
type Checker interface {
	// Check evaluates message against the active policies that apply to
	// userID, restricted to policyIDs when given. It never returns an error:
	// storage failures yield a compliant result carrying a system warning.
	Check(ctx context.Context, message, userID string, policyIDs []string) *Result
}

type checker struct {
	logger  *logrus.Logger
	repo    domainPolicy.Repository
	regexes *regexCache
	now     func() time.Time
}

const DefaultRegexTTL = 10 * time.Minute

// NewChecker builds a Checker. Compiled patterns live in regexes; a nil map
// gets a private one with DefaultRegexTTL.
func NewChecker(logger *logrus.Logger, repo domainPolicy.Repository, regexes *cache.TTLMap) Checker {
	return &checker{
		logger:  logger,
		repo:    repo,
		regexes: newRegexCache(regexes),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (c *checker) Check(ctx context.Context, message, userID string, policyIDs []string) *Result {
	policies, err := c.repo.List(ctx)
	if err != nil {
		c.logger.WithError(err).Error("failed to load policies")
		return failOpen(err, c.now())
	}
	c.regexes.sweep(time.Now())

	wanted := make(map[string]struct{}, len(policyIDs))
	for _, id := range policyIDs {
		wanted[id] = struct{}{}
	}

	result := &Result{
		Compliant:      true,
		Violations:     []Violation{},
		Warnings:       []Warning{},
		CheckTimestamp: c.now(),
	}
	for _, p := range policies {
		if !p.Active || !p.AppliesTo(userID) {
			continue
		}
		if len(wanted) > 0 {
			if _, ok := wanted[p.ID]; !ok {
				continue
			}
		}
		result.TotalPoliciesChecked++

		ev, err := c.evaluate(p, message)
		if err != nil {
			c.logger.WithError(err).WithField("policy_id", p.ID).Warn("policy check failed")
			result.Warnings = append(result.Warnings, Warning{
				PolicyID:        p.ID,
				PolicyName:      p.Name,
				WarningType:     WarningTypeCheckError,
				Description:     "policy check error: " + err.Error(),
				Recommendations: []string{},
			})
			continue
		}
		switch {
		case ev.violation:
			result.Violations = append(result.Violations, Violation{
				PolicyID:        p.ID,
				PolicyName:      p.Name,
				ViolationType:   ev.violationType,
				Severity:        ev.severity,
				Description:     ev.description(),
				MatchedPatterns: nonNil(ev.matched),
			})
		case ev.warning:
			result.Warnings = append(result.Warnings, Warning{
				PolicyID:        p.ID,
				PolicyName:      p.Name,
				WarningType:     ev.warningType,
				Description:     ev.description(),
				Recommendations: nonNil(ev.recommendations),
			})
		}
	}
	result.Compliant = len(result.Violations) == 0

	c.logger.WithFields(logrus.Fields{
		"user_id":    userID,
		"checked":    result.TotalPoliciesChecked,
		"violations": len(result.Violations),
		"warnings":   len(result.Warnings),
	}).Debug("compliance check completed")
	return result
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
