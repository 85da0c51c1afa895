package repository

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/NeuralTrust/TrustChat/pkg/domain"
	"github.com/NeuralTrust/TrustChat/pkg/domain/policy"
	"gopkg.in/yaml.v3"
)

type policySeed struct {
	Policies []yaml.Node `yaml:"policies"`
}

// LoadPolicySeed reads a YAML document of the form `policies: [...]`.
func LoadPolicySeed(path string) ([]*policy.Policy, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to read policy seed: %w", err)
	}
	return ParsePolicySeed(data)
}

// ParsePolicySeed decodes and validates seed policies. Entries without an
// explicit active flag are active.
func ParsePolicySeed(data []byte) ([]*policy.Policy, error) {
	var seed policySeed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse policy seed: %w", err)
	}
	policies := make([]*policy.Policy, 0, len(seed.Policies))
	for i := range seed.Policies {
		node := &seed.Policies[i]
		p := new(policy.Policy)
		if err := node.Decode(p); err != nil {
			return nil, fmt.Errorf("failed to decode policy at line %d: %w", node.Line, err)
		}
		if !hasKey(node, "active") {
			p.Active = true
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	return policies, nil
}

func hasKey(node *yaml.Node, key string) bool {
	if node.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}
	return false
}

type memoryPolicyRepository struct {
	mu       sync.RWMutex
	policies map[string]*policy.Policy
}

// NewMemoryPolicyRepository serves policies from process memory. It is used
// when no database is configured.
func NewMemoryPolicyRepository(seed []*policy.Policy) policy.Repository {
	r := &memoryPolicyRepository{policies: make(map[string]*policy.Policy, len(seed))}
	now := time.Now()
	for _, p := range seed {
		c := clonePolicy(p)
		c.CreatedAt, c.UpdatedAt = now, now
		r.policies[c.ID] = c
	}
	return r
}

func (r *memoryPolicyRepository) List(_ context.Context) ([]*policy.Policy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*policy.Policy, 0, len(r.policies))
	for _, p := range r.policies {
		out = append(out, clonePolicy(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memoryPolicyRepository) Get(_ context.Context, id string) (*policy.Policy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.policies[id]
	if !ok {
		return nil, domain.NewNotFoundError("policy", id)
	}
	return clonePolicy(p), nil
}

func (r *memoryPolicyRepository) Save(_ context.Context, p *policy.Policy) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	c := clonePolicy(p)
	if existing, ok := r.policies[p.ID]; ok {
		c.CreatedAt = existing.CreatedAt
	} else {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	r.policies[p.ID] = c
	p.CreatedAt, p.UpdatedAt = c.CreatedAt, c.UpdatedAt
	return nil
}

func (r *memoryPolicyRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.policies[id]; !ok {
		return domain.NewNotFoundError("policy", id)
	}
	delete(r.policies, id)
	return nil
}

// clonePolicy copies the slices and the top level of the rules map. Rule
// values are treated as immutable.
func clonePolicy(p *policy.Policy) *policy.Policy {
	c := *p
	c.ApplicableUsers = append([]string(nil), p.ApplicableUsers...)
	if p.Rules != nil {
		c.Rules = make(domain.JSONMap, len(p.Rules))
		for k, v := range p.Rules {
			c.Rules[k] = v
		}
	}
	return &c
}
