package anthropic

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/NeuralTrust/TrustChat/pkg/infra/providers"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	providerName     = "anthropic"
	defaultModel     = "claude-3-5-haiku-latest"
	defaultMaxTokens = 1024
)

type client struct {
	clientPool *sync.Map
}

func NewAnthropicClient() providers.Client {
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

	anthropicClient := c.getOrCreateClient(config.Credentials)

	var messages []anthropic.MessageParam
	if len(config.Instructions) > 0 {
		messages = append(messages, anthropic.NewUserMessage(
			anthropic.NewTextBlock(providers.FormatInstructions(config.Instructions)),
		))
	}
	if prompt != "" {
		messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)))
	}

	model := anthropic.Model(defaultModel)
	if config.Model != "" {
		model = anthropic.Model(config.Model)
	}
	maxTokens := int64(defaultMaxTokens)
	if config.MaxTokens > 0 {
		maxTokens = int64(config.MaxTokens)
	}

	params := anthropic.MessageNewParams{
		Model:     model,
		Messages:  messages,
		MaxTokens: maxTokens,
	}
	if config.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: config.SystemPrompt, Type: "text"}}
	}
	if config.Temperature > 0 {
		params.Temperature = anthropic.Float(config.Temperature)
	}

	message, err := anthropicClient.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic request failed: %w", err)
	}

	var text strings.Builder
	for _, content := range message.Content {
		if content.Type == "text" {
			text.WriteString(content.Text)
		}
	}
	if text.Len() == 0 {
		return nil, providers.ErrEmptyResponse
	}

	return &providers.CompletionResponse{
		ID:       message.ID,
		Provider: providerName,
		Model:    string(model),
		Response: text.String(),
		Usage: providers.Usage{
			PromptTokens:     int(message.Usage.InputTokens),
			CompletionTokens: int(message.Usage.OutputTokens),
			TotalTokens:      int(message.Usage.InputTokens + message.Usage.OutputTokens),
		},
	}, nil
}

func (c *client) getOrCreateClient(credentials providers.Credentials) anthropic.Client {
	key := credentials.ApiKey + "|" + credentials.BaseURL
	if v, ok := c.clientPool.Load(key); ok {
		if cli, ok := v.(anthropic.Client); ok {
			return cli
		}
	}
	opts := []option.RequestOption{option.WithAPIKey(credentials.ApiKey), option.WithMaxRetries(0)}
	if credentials.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(credentials.BaseURL))
	}
	cli := anthropic.NewClient(opts...)
	c.clientPool.Store(key, cli)
	return cli
}
