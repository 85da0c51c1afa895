package analysis

import (
	"context"

	"github.com/NeuralTrust/TrustChat/pkg/domain/analysis"
)

// Input is what every source sees for one message. History holds the
// user's recent messages, oldest first.
type Input struct {
	Message string
	UserID  string
	RoomID  string
	History []string
}

//go:generate mockery --name=Source --dir=. --output=./mocks --filename=source_mock.go --case=underscore --with-expecter
type Source interface {
	Name() string
	Analyze(ctx context.Context, in Input) (*analysis.Record, error)
}

// KeywordFallback is implemented by sources that can still produce a
// deterministic record after their model call failed.
type KeywordFallback interface {
	Fallback(in Input) *analysis.Record
}
