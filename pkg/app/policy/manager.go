package policy

import (
	"context"
	"fmt"

	"github.com/NeuralTrust/TrustChat/pkg/domain"
	domainPolicy "github.com/NeuralTrust/TrustChat/pkg/domain/policy"
	"github.com/sirupsen/logrus"
)

//go:generate mockery --name=Manager --dir=. --output=./mocks --filename=policy_manager_mock.go --case=underscore --with-expecter
type Manager interface {
	List(ctx context.Context) ([]*domainPolicy.Policy, error)
	Upsert(ctx context.Context, p *domainPolicy.Policy) error
	Delete(ctx context.Context, id string) error
}

type manager struct {
	logger *logrus.Logger
	repo   domainPolicy.Repository
}

func NewManager(logger *logrus.Logger, repo domainPolicy.Repository) Manager {
	return &manager{
		logger: logger,
		repo:   repo,
	}
}

func (m *manager) List(ctx context.Context) ([]*domainPolicy.Policy, error) {
	return m.repo.List(ctx)
}

// Upsert rejects policies whose rules do not decode or whose patterns do
// not compile.
func (m *manager) Upsert(ctx context.Context, p *domainPolicy.Policy) error {
	if err := p.Validate(); err != nil {
		return err
	}
	dryRun := &checker{regexes: newRegexCache(nil)}
	if _, err := dryRun.evaluate(p, ""); err != nil {
		return domain.NewValidationError("policy %s: %s", p.ID, err.Error())
	}
	if err := m.repo.Save(ctx, p); err != nil {
		m.logger.WithError(err).WithField("policy_id", p.ID).Error("failed to save policy")
		return fmt.Errorf("failed to save policy: %w", err)
	}
	return nil
}

func (m *manager) Delete(ctx context.Context, id string) error {
	if err := m.repo.Delete(ctx, id); err != nil {
		if !domain.IsNotFoundError(err) {
			m.logger.WithError(err).WithField("policy_id", id).Error("failed to delete policy")
		}
		return err
	}
	return nil
}
