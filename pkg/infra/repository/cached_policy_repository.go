package repository

import (
	"context"

	"github.com/NeuralTrust/TrustChat/pkg/domain/policy"
	"github.com/NeuralTrust/TrustChat/pkg/infra/cache"
	"github.com/NeuralTrust/TrustChat/pkg/infra/cache/event"
	"github.com/sirupsen/logrus"
)

type cachedPolicyRepository struct {
	next      policy.Repository
	cache     *cache.TTLMap
	publisher cache.EventPublisher
	logger    *logrus.Logger
}

// NewCachedPolicyRepository serves reads from a TTL map in front of next.
// Writes evict locally and publish an invalidation event for other replicas.
func NewCachedPolicyRepository(
	next policy.Repository,
	ttlMap *cache.TTLMap,
	publisher cache.EventPublisher,
	logger *logrus.Logger,
) policy.Repository {
	return &cachedPolicyRepository{
		next:      next,
		cache:     ttlMap,
		publisher: publisher,
		logger:    logger,
	}
}

func (r *cachedPolicyRepository) List(ctx context.Context) ([]*policy.Policy, error) {
	if v, ok := r.cache.Get(cache.PolicyListKey); ok {
		if policies, ok := v.([]*policy.Policy); ok {
			return clonePolicies(policies), nil
		}
	}
	policies, err := r.next.List(ctx)
	if err != nil {
		return nil, err
	}
	r.cache.Set(cache.PolicyListKey, clonePolicies(policies))
	return policies, nil
}

func (r *cachedPolicyRepository) Get(ctx context.Context, id string) (*policy.Policy, error) {
	if v, ok := r.cache.Get(cache.PolicyKey(id)); ok {
		if p, ok := v.(*policy.Policy); ok {
			return clonePolicy(p), nil
		}
	}
	p, err := r.next.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r.cache.Set(cache.PolicyKey(id), clonePolicy(p))
	return p, nil
}

func (r *cachedPolicyRepository) Save(ctx context.Context, p *policy.Policy) error {
	if err := r.next.Save(ctx, p); err != nil {
		return err
	}
	cache.EvictPolicy(r.cache, p.ID)
	r.publish(ctx, event.UpdatePolicyCacheEvent{PolicyID: p.ID})
	return nil
}

func (r *cachedPolicyRepository) Delete(ctx context.Context, id string) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	cache.EvictPolicy(r.cache, id)
	r.publish(ctx, event.DeletePolicyCacheEvent{PolicyID: id})
	return nil
}

func (r *cachedPolicyRepository) publish(ctx context.Context, ev event.Event) {
	if err := r.publisher.Publish(ctx, ev); err != nil {
		r.logger.WithError(err).WithField("event", ev.Type()).Warn("failed to publish policy cache event")
	}
}

func clonePolicies(in []*policy.Policy) []*policy.Policy {
	out := make([]*policy.Policy, len(in))
	for i, p := range in {
		out[i] = clonePolicy(p)
	}
	return out
}
