package providers

import (
	"context"
	"errors"
)

var (
	ErrProviderNotSupported = errors.New("provider not supported")
	ErrEmptyResponse        = errors.New("no completions returned")
	ErrMissingAPIKey        = errors.New("API key is required")
	ErrMissingModel         = errors.New("model is required")
)

type Config struct {
	Credentials  Credentials `json:"credentials"`
	Model        string      `json:"model"`
	MaxTokens    int         `json:"max_tokens,omitempty"`
	Temperature  float64     `json:"temperature,omitempty"`
	SystemPrompt string      `json:"system_prompt,omitempty"`
	Instructions []string    `json:"instructions,omitempty"`
}

type Credentials struct {
	ApiKey string `json:"api_key,omitempty"`
	// BaseURL overrides the vendor endpoint, mainly for proxies and tests.
	BaseURL    string                 `json:"base_url,omitempty"`
	Azure      *AzureCredentials      `json:"azure,omitempty"`
	AwsBedrock *AwsBedrockCredentials `json:"aws_bedrock,omitempty"`
}

type AzureCredentials struct {
	Endpoint    string `json:"endpoint"`
	ApiVersion  string `json:"api_version,omitempty"`
	UseIdentity bool   `json:"use_identity"`
}

type AwsBedrockCredentials struct {
	Region       string `json:"region"`
	AccessKey    string `json:"access_key"`
	SecretKey    string `json:"secret_key"`
	SessionToken string `json:"session_token,omitempty"`
	UseRole      bool   `json:"use_role"`
	RoleARN      string `json:"role_arn,omitempty"`
}

//go:generate mockery --name=Client --dir=. --output=./mocks --filename=client_mock.go --case=underscore --with-expecter

// Client generates a single completion for a prompt.
type Client interface {
	Ask(ctx context.Context, config *Config, prompt string) (*CompletionResponse, error)
}
