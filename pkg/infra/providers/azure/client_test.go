package azure

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/NeuralTrust/TrustChat/pkg/infra/httpx/mocks"
	"github.com/NeuralTrust/TrustChat/pkg/infra/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type staticCredential struct{ token string }

func (s staticCredential) GetToken(context.Context, policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{Token: s.token, ExpiresOn: time.Now().Add(time.Hour)}, nil
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

const completion = `{"id":"az-1","model":"gpt-4o","choices":[{"message":{"role":"assistant","content":"{\"risk_level\":\"warning\"}"}}],
"usage":{"prompt_tokens":5,"completion_tokens":5,"total_tokens":10}}`

func TestAsk_APIKey(t *testing.T) {
	httpClient := new(mocks.MockHTTPClient)
	httpClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Header.Get("api-key") == "secret" &&
			req.URL.Path == "/openai/deployments/compliance/chat/completions" &&
			req.URL.Query().Get("api-version") == defaultAPIVersion
	})).Return(jsonResponse(http.StatusOK, completion), nil)

	c := NewAzureClient(httpClient)
	config := &providers.Config{
		Model: "compliance",
		Credentials: providers.Credentials{
			ApiKey: "secret",
			Azure:  &providers.AzureCredentials{Endpoint: "https://example.openai.azure.com/"},
		},
	}

	resp, err := c.Ask(context.Background(), config, "analyze")
	require.NoError(t, err)
	assert.Equal(t, `{"risk_level":"warning"}`, resp.Response)
	assert.Equal(t, "azure", resp.Provider)
	assert.Equal(t, 10, resp.Usage.TotalTokens)
	httpClient.AssertExpectations(t)
}

func TestAsk_Identity(t *testing.T) {
	httpClient := new(mocks.MockHTTPClient)
	httpClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Header.Get("Authorization") == "Bearer ad-token" && req.Header.Get("api-key") == ""
	})).Return(jsonResponse(http.StatusOK, completion), nil)

	c := &client{
		httpClient: httpClient,
		credential: func() (azcore.TokenCredential, error) { return staticCredential{token: "ad-token"}, nil },
	}
	config := &providers.Config{
		Model: "compliance",
		Credentials: providers.Credentials{
			Azure: &providers.AzureCredentials{Endpoint: "https://example.openai.azure.com", UseIdentity: true},
		},
	}

	_, err := c.Ask(context.Background(), config, "analyze")
	require.NoError(t, err)
	httpClient.AssertExpectations(t)
}

func TestAsk_Errors(t *testing.T) {
	azureCreds := &providers.AzureCredentials{Endpoint: "https://example.openai.azure.com"}

	t.Run("missing endpoint", func(t *testing.T) {
		_, err := NewAzureClient(new(mocks.MockHTTPClient)).Ask(context.Background(), &providers.Config{Model: "m"}, "x")
		assert.Error(t, err)
	})

	t.Run("missing key", func(t *testing.T) {
		config := &providers.Config{Model: "m", Credentials: providers.Credentials{Azure: azureCreds}}
		_, err := NewAzureClient(new(mocks.MockHTTPClient)).Ask(context.Background(), config, "x")
		assert.ErrorIs(t, err, providers.ErrMissingAPIKey)
	})

	t.Run("non 200", func(t *testing.T) {
		httpClient := new(mocks.MockHTTPClient)
		httpClient.On("Do", mock.Anything).Return(jsonResponse(http.StatusTooManyRequests, `{"error":"rate limited"}`), nil)
		config := &providers.Config{Model: "m", Credentials: providers.Credentials{ApiKey: "k", Azure: azureCreds}}

		_, err := NewAzureClient(httpClient).Ask(context.Background(), config, "x")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("transport error", func(t *testing.T) {
		httpClient := new(mocks.MockHTTPClient)
		httpClient.On("Do", mock.Anything).Return(nil, errors.New("dial tcp: refused"))
		config := &providers.Config{Model: "m", Credentials: providers.Credentials{ApiKey: "k", Azure: azureCreds}}

		_, err := NewAzureClient(httpClient).Ask(context.Background(), config, "x")
		assert.Error(t, err)
	})
}
