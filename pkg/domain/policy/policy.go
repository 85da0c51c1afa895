package policy

import (
	"fmt"
	"time"

	"github.com/NeuralTrust/TrustChat/pkg/domain"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	ScopeCompanyWide  = "company_wide"
	ScopeUserSpecific = "user_specific"
)

const (
	TypeHarassmentPrevention   = "harassment_prevention"
	TypeConfidentiality        = "confidentiality"
	TypeCommunicationStandards = "communication_standards"
	TypeDataProtection         = "data_protection"
)

type Policy struct {
	ID              string         `json:"id" yaml:"id" gorm:"primaryKey"`
	Name            string         `json:"name" yaml:"name"`
	Type            string         `json:"type" yaml:"type"`
	Scope           string         `json:"scope" yaml:"scope"`
	ApplicableUsers pq.StringArray `json:"applicable_users" yaml:"applicable_users" gorm:"type:text[]"`
	Version         string         `json:"version" yaml:"version"`
	EffectiveDate   string         `json:"effective_date,omitempty" yaml:"effective_date"`
	Active          bool           `json:"active" yaml:"active"`
	Rules           domain.JSONMap `json:"rules" yaml:"rules" gorm:"type:jsonb"`
	CreatedAt       time.Time      `json:"created_at" yaml:"-"`
	UpdatedAt       time.Time      `json:"updated_at" yaml:"-"`
}

func (Policy) TableName() string {
	return "policies"
}

func (p *Policy) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	return p.Validate()
}

func (p *Policy) BeforeUpdate(tx *gorm.DB) error {
	p.UpdatedAt = time.Now()
	return p.Validate()
}

func (p *Policy) Validate() error {
	if p.ID == "" {
		return domain.NewValidationError("policy id is required")
	}
	if p.Name == "" {
		return domain.NewValidationError("policy name is required")
	}
	if p.Type == "" {
		return domain.NewValidationError("policy type is required")
	}
	switch p.Scope {
	case "", ScopeCompanyWide, ScopeUserSpecific:
	default:
		return domain.NewValidationError("invalid scope %q", p.Scope)
	}
	if p.Scope == ScopeUserSpecific && len(p.ApplicableUsers) == 0 {
		return domain.NewValidationError("user_specific policy %s needs applicable_users", p.ID)
	}
	if p.Version == "" {
		p.Version = "1.0"
	}
	if p.Rules == nil {
		p.Rules = domain.JSONMap{}
	}
	return nil
}

// AppliesTo reports whether the policy binds userID. An empty scope counts
// as company wide.
func (p *Policy) AppliesTo(userID string) bool {
	switch p.Scope {
	case "", ScopeCompanyWide:
		return true
	case ScopeUserSpecific:
		for _, u := range p.ApplicableUsers {
			if u == userID {
				return true
			}
		}
	}
	return false
}

func (p *Policy) String() string {
	return fmt.Sprintf("%s(%s)", p.ID, p.Type)
}
