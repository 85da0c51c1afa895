package subscriber

import (
	"context"

	"github.com/NeuralTrust/TrustChat/pkg/infra/cache"
	"github.com/NeuralTrust/TrustChat/pkg/infra/cache/event"
	"github.com/sirupsen/logrus"
)

type UpdatePolicyCacheEventSubscriber struct {
	logger *logrus.Logger
	cache  cache.Client
}

func NewUpdatePolicyCacheEventSubscriber(logger *logrus.Logger, c cache.Client) cache.EventSubscriber[event.UpdatePolicyCacheEvent] {
	return &UpdatePolicyCacheEventSubscriber{
		logger: logger,
		cache:  c,
	}
}

func (s UpdatePolicyCacheEventSubscriber) OnEvent(ctx context.Context, evt event.UpdatePolicyCacheEvent) error {
	cache.EvictPolicy(s.cache.GetTTLMap(cache.PolicyTTLName), evt.PolicyID)
	s.logger.WithField("policy_id", evt.PolicyID).Debug("policy cache invalidated after update")
	return nil
}

type DeletePolicyCacheEventSubscriber struct {
	logger *logrus.Logger
	cache  cache.Client
}

func NewDeletePolicyCacheEventSubscriber(logger *logrus.Logger, c cache.Client) cache.EventSubscriber[event.DeletePolicyCacheEvent] {
	return &DeletePolicyCacheEventSubscriber{
		logger: logger,
		cache:  c,
	}
}

func (s DeletePolicyCacheEventSubscriber) OnEvent(ctx context.Context, evt event.DeletePolicyCacheEvent) error {
	cache.EvictPolicy(s.cache.GetTTLMap(cache.PolicyTTLName), evt.PolicyID)
	s.logger.WithField("policy_id", evt.PolicyID).Debug("policy cache invalidated after delete")
	return nil
}
