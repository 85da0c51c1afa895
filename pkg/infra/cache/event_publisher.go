package cache

import (
	"context"

	"github.com/NeuralTrust/TrustChat/pkg/infra/cache/event"
)

//go:generate mockery --name=EventPublisher --dir=. --output=./mocks --filename=event_publisher_mock.go --case=underscore --with-expecter

type EventPublisher interface {
	Publish(ctx context.Context, ev event.Event) error
}

type noopPublisher struct{}

// NewNoopEventPublisher is used when there is no redis to fan events out to.
func NewNoopEventPublisher() EventPublisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, event.Event) error {
	return nil
}
