package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/NeuralTrust/TrustChat/pkg/infra/httpx"
	"github.com/NeuralTrust/TrustChat/pkg/infra/providers"
)

const (
	providerName      = "azure"
	defaultAPIVersion = "2024-02-15-preview"
	cognitiveScope    = "https://cognitiveservices.azure.com/.default"
)

type chatRequest struct {
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

type client struct {
	httpClient httpx.Client
	credential func() (azcore.TokenCredential, error)
}

func NewAzureClient(httpClient httpx.Client) providers.Client {
	return &client{
		httpClient: httpClient,
		credential: func() (azcore.TokenCredential, error) {
			return azidentity.NewDefaultAzureCredential(nil)
		},
	}
}

// Ask calls an Azure OpenAI deployment. config.Model is the deployment name.
// With UseIdentity the request carries an Azure AD bearer token, otherwise the api-key header.
func (c *client) Ask(
	ctx context.Context,
	config *providers.Config,
	prompt string,
) (*providers.CompletionResponse, error) {
	azureCfg := config.Credentials.Azure
	if azureCfg == nil || azureCfg.Endpoint == "" {
		return nil, fmt.Errorf("azure endpoint is required")
	}
	if config.Model == "" {
		return nil, providers.ErrMissingModel
	}
	if !azureCfg.UseIdentity && config.Credentials.ApiKey == "" {
		return nil, providers.ErrMissingAPIKey
	}

	body := chatRequest{
		Temperature:    config.Temperature,
		MaxTokens:      config.MaxTokens,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}
	if config.SystemPrompt != "" {
		body.Messages = append(body.Messages, chatMessage{Role: "system", Content: config.SystemPrompt})
	}
	if len(config.Instructions) > 0 {
		body.Messages = append(body.Messages, chatMessage{Role: "user", Content: providers.FormatInstructions(config.Instructions)})
	}
	body.Messages = append(body.Messages, chatMessage{Role: "user", Content: prompt})

	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	apiVersion := azureCfg.ApiVersion
	if apiVersion == "" {
		apiVersion = defaultAPIVersion
	}
	url := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		strings.TrimRight(azureCfg.Endpoint, "/"), config.Model, apiVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Encoding", "br, gzip")

	if azureCfg.UseIdentity {
		token, err := c.adToken(ctx)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	} else {
		req.Header.Set("api-key", config.Credentials.ApiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("azure request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("azure request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return nil, providers.ErrEmptyResponse
	}

	return &providers.CompletionResponse{
		ID:       parsed.ID,
		Provider: providerName,
		Model:    config.Model,
		Response: parsed.Choices[0].Message.Content,
		Usage: providers.Usage{
			PromptTokens:     parsed.Usage.PromptTokens,
			CompletionTokens: parsed.Usage.CompletionTokens,
			TotalTokens:      parsed.Usage.TotalTokens,
		},
	}, nil
}

func (c *client) adToken(ctx context.Context) (string, error) {
	cred, err := c.credential()
	if err != nil {
		return "", fmt.Errorf("failed to create credential: %w", err)
	}
	token, err := cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{cognitiveScope}})
	if err != nil {
		return "", fmt.Errorf("failed to get Azure AD token: %w", err)
	}
	return token.Token, nil
}
