package session

import (
	"context"
)

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=session_repository_mock.go --case=underscore --with-expecter
type Repository interface {
	// GetOrCreate returns the live session for userID, creating one when
	// none exists. Concurrent calls for the same user share one creation.
	GetOrCreate(ctx context.Context, userID string) (*Session, error)
	AppendTurn(ctx context.Context, userID string, turn Turn) error
	SetProviderHandle(ctx context.Context, userID string, handle string) error
	Delete(ctx context.Context, userID string) error
}
