package factory

import (
	"fmt"
	"strings"

	"github.com/NeuralTrust/TrustChat/pkg/infra/httpx"
	"github.com/NeuralTrust/TrustChat/pkg/infra/providers"
	"github.com/NeuralTrust/TrustChat/pkg/infra/providers/anthropic"
	"github.com/NeuralTrust/TrustChat/pkg/infra/providers/azure"
	"github.com/NeuralTrust/TrustChat/pkg/infra/providers/bedrock"
	"github.com/NeuralTrust/TrustChat/pkg/infra/providers/gemini"
	"github.com/NeuralTrust/TrustChat/pkg/infra/providers/openai"
)

const (
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderGoogle    = "google"
	ProviderAnthropic = "anthropic"
	ProviderBedrock   = "bedrock"
	ProviderAzure     = "azure"
)

//go:generate mockery --name=ProviderLocator --dir=. --output=./mocks --filename=provider_locator_mock.go --case=underscore --with-expecter

type ProviderLocator interface {
	Get(provider string) (providers.Client, error)
}

type providerLocator struct {
	clients map[string]providers.Client
}

// NewProviderLocator builds one client per provider. Clients pool their SDK
// handles internally, so the same instance is shared by every request.
func NewProviderLocator(httpClient httpx.Client) ProviderLocator {
	gem := gemini.NewGeminiClient()
	return &providerLocator{
		clients: map[string]providers.Client{
			ProviderOpenAI:    openai.NewOpenaiClient(),
			ProviderGemini:    gem,
			ProviderGoogle:    gem,
			ProviderAnthropic: anthropic.NewAnthropicClient(),
			ProviderBedrock:   bedrock.NewBedrockClient(),
			ProviderAzure:     azure.NewAzureClient(httpClient),
		},
	}
}

func (f *providerLocator) Get(provider string) (providers.Client, error) {
	c, ok := f.clients[strings.ToLower(strings.TrimSpace(provider))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", providers.ErrProviderNotSupported, provider)
	}
	return c, nil
}
