package request

import (
	"github.com/NeuralTrust/TrustChat/pkg/domain"
	"github.com/NeuralTrust/TrustChat/pkg/domain/policy"
)

type UpsertPolicyRequest struct {
	Name            string                 `json:"name"`
	Type            string                 `json:"type"`
	Scope           string                 `json:"scope"`
	ApplicableUsers []string               `json:"applicable_users"`
	Version         string                 `json:"version"`
	EffectiveDate   string                 `json:"effective_date,omitempty"`
	Active          *bool                  `json:"active,omitempty"`
	Rules           map[string]interface{} `json:"rules"`
}

// ToPolicy builds the entity stored under id. Active defaults to true.
func (r *UpsertPolicyRequest) ToPolicy(id string) *policy.Policy {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	scope := r.Scope
	if scope == "" {
		scope = policy.ScopeCompanyWide
	}
	return &policy.Policy{
		ID:              id,
		Name:            r.Name,
		Type:            r.Type,
		Scope:           scope,
		ApplicableUsers: r.ApplicableUsers,
		Version:         r.Version,
		EffectiveDate:   r.EffectiveDate,
		Active:          active,
		Rules:           domain.JSONMap(r.Rules),
	}
}
