package analysis

import (
	"context"
	"fmt"

	"github.com/NeuralTrust/TrustChat/pkg/domain/analysis"
	"github.com/NeuralTrust/TrustChat/pkg/infra/extractor"
	"github.com/NeuralTrust/TrustChat/pkg/infra/httpx"
	"github.com/NeuralTrust/TrustChat/pkg/infra/providers"
)

type llmSource struct {
	name      string
	profile   Profile
	client    providers.Client
	config    *providers.Config
	breaker   httpx.CircuitBreaker
	extractor extractor.Extractor
	keywords  *KeywordTable
}

// NewLLMSource builds a model-backed source. keywords may be nil, in which
// case the source has no deterministic fallback.
func NewLLMSource(
	name string,
	client providers.Client,
	config *providers.Config,
	breaker httpx.CircuitBreaker,
	ext extractor.Extractor,
	keywords *KeywordTable,
) (Source, error) {
	profile, ok := Profiles[name]
	if !ok {
		return nil, fmt.Errorf("unknown analysis source %q", name)
	}
	return &llmSource{
		name:      name,
		profile:   profile,
		client:    client,
		config:    config,
		breaker:   breaker,
		extractor: ext,
		keywords:  keywords,
	}, nil
}

func (s *llmSource) Name() string {
	return s.name
}

func (s *llmSource) Analyze(ctx context.Context, in Input) (*analysis.Record, error) {
	prompt, err := BuildPrompt(s.name, in)
	if err != nil {
		return nil, err
	}

	var resp *providers.CompletionResponse
	call := func() error {
		var callErr error
		resp, callErr = s.client.Ask(ctx, s.config, prompt)
		return callErr
	}
	if s.breaker != nil {
		err = s.breaker.Execute(call)
	} else {
		err = call()
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.name, err)
	}
	if resp == nil {
		return nil, fmt.Errorf("%s: %w", s.name, providers.ErrEmptyResponse)
	}

	parsed, recovered := s.extractor.Extract(resp.Response)
	if parsed == nil {
		return nil, fmt.Errorf("%s: %w", s.name, providers.ErrEmptyResponse)
	}
	record := MapRecord(s.name, s.profile, parsed, recovered)
	if resp.Model != "" {
		record.Detail["model"] = resp.Model
	}
	return record, nil
}

func (s *llmSource) Fallback(in Input) *analysis.Record {
	if s.keywords == nil {
		return nil
	}
	return s.keywords.Scan(in.Message)
}
