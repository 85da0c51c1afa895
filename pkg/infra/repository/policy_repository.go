package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/NeuralTrust/TrustChat/pkg/domain"
	"github.com/NeuralTrust/TrustChat/pkg/domain/policy"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type policyRepository struct {
	db *gorm.DB
}

func NewPolicyRepository(db *gorm.DB) policy.Repository {
	return &policyRepository{
		db: db,
	}
}

func (r *policyRepository) List(ctx context.Context) ([]*policy.Policy, error) {
	var policies []*policy.Policy
	if err := r.db.WithContext(ctx).Order("id").Find(&policies).Error; err != nil {
		return nil, fmt.Errorf("failed to list policies: %w", err)
	}
	return policies, nil
}

func (r *policyRepository) Get(ctx context.Context, id string) (*policy.Policy, error) {
	entity := new(policy.Policy)
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("policy", id)
		}
		return nil, fmt.Errorf("failed to get policy: %w", err)
	}
	return entity, nil
}

func (r *policyRepository) Save(ctx context.Context, p *policy.Policy) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "type", "scope", "applicable_users", "version",
				"effective_date", "active", "rules", "updated_at",
			}),
		}).
		Create(p).Error
}

func (r *policyRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&policy.Policy{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete policy: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("policy", id)
	}
	return nil
}
