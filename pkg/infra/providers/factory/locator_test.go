package factory_test

import (
	"testing"

	"github.com/NeuralTrust/TrustChat/pkg/infra/httpx"
	"github.com/NeuralTrust/TrustChat/pkg/infra/providers"
	"github.com/NeuralTrust/TrustChat/pkg/infra/providers/factory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderLocator_Get(t *testing.T) {
	locator := factory.NewProviderLocator(httpx.NewFastHTTPClient())

	for _, name := range []string{"openai", "gemini", "Google", "anthropic", "bedrock", " azure "} {
		client, err := locator.Get(name)
		require.NoError(t, err, name)
		assert.NotNil(t, client, name)
	}

	gemini, _ := locator.Get("gemini")
	google, _ := locator.Get("google")
	assert.Same(t, gemini, google)
}

func TestProviderLocator_Unsupported(t *testing.T) {
	_, err := factory.NewProviderLocator(httpx.NewFastHTTPClient()).Get("cohere")
	assert.ErrorIs(t, err, providers.ErrProviderNotSupported)
}
