package gemini

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/NeuralTrust/TrustChat/pkg/infra/providers"
	"golang.org/x/sync/singleflight"
	"google.golang.org/genai"
)

const (
	providerName = "gemini"
	defaultModel = "gemini-2.0-flash"
	jsonMIMEType = "application/json"
)

type client struct {
	clientPool *sync.Map
	sf         singleflight.Group
}

func NewGeminiClient() providers.Client {
	return &client{
		clientPool: &sync.Map{},
	}
}

func (c *client) Ask(
	ctx context.Context,
	config *providers.Config,
	prompt string,
) (*providers.CompletionResponse, error) {
	if config.Credentials.ApiKey == "" {
		return nil, providers.ErrMissingAPIKey
	}

	genaiClient, err := c.getOrCreateClient(ctx, config.Credentials)
	if err != nil {
		return nil, err
	}

	model := config.Model
	if model == "" {
		model = defaultModel
	}

	generateConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: jsonMIMEType,
	}
	var parts []*genai.Part
	if config.SystemPrompt != "" {
		parts = append(parts, &genai.Part{Text: config.SystemPrompt})
	}
	if len(config.Instructions) > 0 {
		parts = append(parts, &genai.Part{Text: providers.FormatInstructions(config.Instructions)})
	}
	if len(parts) > 0 {
		generateConfig.SystemInstruction = &genai.Content{Parts: parts}
	}
	if config.Temperature > 0 {
		generateConfig.Temperature = genai.Ptr(float32(config.Temperature))
	}

	result, err := genaiClient.Models.GenerateContent(ctx, model, genai.Text(prompt), generateConfig)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	text := providers.StripCodeFence(result.Text())
	if text == "" {
		return nil, providers.ErrEmptyResponse
	}

	resp := &providers.CompletionResponse{
		ID:       fmt.Sprintf("gemini-%d", time.Now().UnixNano()),
		Provider: providerName,
		Model:    model,
		Response: text,
	}
	if result.UsageMetadata != nil {
		resp.Usage = providers.Usage{
			PromptTokens:     int(result.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(result.UsageMetadata.TotalTokenCount),
		}
	}
	return resp, nil
}

func (c *client) getOrCreateClient(ctx context.Context, credentials providers.Credentials) (*genai.Client, error) {
	key := credentials.ApiKey + "|" + credentials.BaseURL
	if v, ok := c.clientPool.Load(key); ok {
		if cli, ok := v.(*genai.Client); ok {
			return cli, nil
		}
	}
	v, err, _ := c.sf.Do(key, func() (any, error) {
		if v2, ok := c.clientPool.Load(key); ok {
			return v2, nil
		}
		cfg := &genai.ClientConfig{
			APIKey:  credentials.ApiKey,
			Backend: genai.BackendGeminiAPI,
		}
		if credentials.BaseURL != "" {
			cfg.HTTPOptions = genai.HTTPOptions{BaseURL: credentials.BaseURL}
		}
		cli, err := genai.NewClient(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		c.clientPool.Store(key, cli)
		return cli, nil
	})
	if err != nil {
		return nil, err
	}
	cli, ok := v.(*genai.Client)
	if !ok {
		return nil, fmt.Errorf("invalid gemini client type %T", v)
	}
	return cli, nil
}
