package policy

import (
	"context"
)

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=policy_repository_mock.go --case=underscore --with-expecter
type Repository interface {
	List(ctx context.Context) ([]*Policy, error)
	Get(ctx context.Context, id string) (*Policy, error)
	// Save creates the policy or replaces the stored one with the same id.
	Save(ctx context.Context, p *Policy) error
	Delete(ctx context.Context, id string) error
}
