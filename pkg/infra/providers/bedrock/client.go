package bedrock

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/NeuralTrust/TrustChat/pkg/infra/providers"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	stsTypes "github.com/aws/aws-sdk-go-v2/service/sts/types"
	"golang.org/x/sync/singleflight"
)

const (
	providerName       = "bedrock"
	defaultRegion      = "us-east-1"
	defaultSessionName = "TrustChatAnalysis"
)

type client struct {
	clientPool *sync.Map
	sf         singleflight.Group
}

func NewBedrockClient() providers.Client {
	return &client{
		clientPool: &sync.Map{},
	}
}

// Ask uses the Converse API so one request shape serves every model family.
func (c *client) Ask(
	ctx context.Context,
	cfg *providers.Config,
	prompt string,
) (*providers.CompletionResponse, error) {
	if cfg.Model == "" {
		return nil, providers.ErrMissingModel
	}
	if cfg.Credentials.AwsBedrock == nil {
		return nil, fmt.Errorf("aws credentials are required")
	}

	runtime, err := c.getOrCreateClient(ctx, cfg.Credentials)
	if err != nil {
		return nil, err
	}

	text := prompt
	if len(cfg.Instructions) > 0 {
		text = providers.FormatInstructions(cfg.Instructions) + "\n" + prompt
	}
	input := &bedrockruntime.ConverseInput{
		ModelId: aws.String(cfg.Model),
		Messages: []types.Message{{
			Role:    types.ConversationRoleUser,
			Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: text}},
		}},
	}
	if cfg.SystemPrompt != "" {
		input.System = []types.SystemContentBlock{&types.SystemContentBlockMemberText{Value: cfg.SystemPrompt}}
	}
	inference := &types.InferenceConfiguration{}
	if cfg.MaxTokens > 0 {
		inference.MaxTokens = aws.Int32(int32(cfg.MaxTokens))
	}
	if cfg.Temperature > 0 {
		inference.Temperature = aws.Float32(float32(cfg.Temperature))
	}
	input.InferenceConfig = inference

	out, err := runtime.Converse(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("bedrock request failed: %w", err)
	}

	msg, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return nil, providers.ErrEmptyResponse
	}
	var b strings.Builder
	for _, block := range msg.Value.Content {
		if tb, ok := block.(*types.ContentBlockMemberText); ok {
			b.WriteString(tb.Value)
		}
	}
	if b.Len() == 0 {
		return nil, providers.ErrEmptyResponse
	}

	resp := &providers.CompletionResponse{
		ID:       providerName + "-" + cfg.Model,
		Provider: providerName,
		Model:    cfg.Model,
		Response: b.String(),
	}
	if out.Usage != nil {
		resp.Usage = providers.Usage{
			PromptTokens:     int(aws.ToInt32(out.Usage.InputTokens)),
			CompletionTokens: int(aws.ToInt32(out.Usage.OutputTokens)),
			TotalTokens:      int(aws.ToInt32(out.Usage.TotalTokens)),
		}
	}
	return resp, nil
}

func (c *client) getOrCreateClient(ctx context.Context, credentials providers.Credentials) (*bedrockruntime.Client, error) {
	key := buildClientKey(credentials)
	if v, ok := c.clientPool.Load(key); ok {
		cli, ok := v.(*bedrockruntime.Client)
		if !ok {
			return nil, fmt.Errorf("invalid client type in pool")
		}
		return cli, nil
	}

	v, err, _ := c.sf.Do(key, func() (any, error) {
		if v2, ok := c.clientPool.Load(key); ok {
			return v2, nil
		}
		awsCfg, err := buildAwsConfig(ctx, credentials)
		if err != nil {
			return nil, err
		}
		cli := bedrockruntime.NewFromConfig(awsCfg, func(o *bedrockruntime.Options) {
			if credentials.BaseURL != "" {
				o.BaseEndpoint = aws.String(credentials.BaseURL)
			}
			o.RetryMaxAttempts = 1
		})
		c.clientPool.Store(key, cli)
		return cli, nil
	})
	if err != nil {
		return nil, err
	}
	cli, ok := v.(*bedrockruntime.Client)
	if !ok {
		return nil, fmt.Errorf("invalid client type in pool")
	}
	return cli, nil
}

func buildClientKey(credentials providers.Credentials) string {
	b := credentials.AwsBedrock
	return fmt.Sprintf("%s:%s:%v:%s:%s", b.AccessKey, b.Region, b.UseRole, b.RoleARN, credentials.BaseURL)
}

func buildAwsConfig(ctx context.Context, credentials providers.Credentials) (aws.Config, error) {
	b := credentials.AwsBedrock
	region := b.Region
	if region == "" {
		region = defaultRegion
	}

	if b.UseRole && b.RoleARN != "" {
		creds, err := assumeRole(ctx, b.AccessKey, b.SecretKey, b.RoleARN, region)
		if err != nil {
			return aws.Config{}, err
		}
		return loadAWSConfig(ctx, aws.ToString(creds.AccessKeyId), aws.ToString(creds.SecretAccessKey),
			aws.ToString(creds.SessionToken), region)
	}
	return loadAWSConfig(ctx, b.AccessKey, b.SecretKey, b.SessionToken, region)
}

func loadAWSConfig(ctx context.Context, accessKey, secretKey, sessionToken, region string) (aws.Config, error) {
	return config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(aws.CredentialsProviderFunc(
			func(ctx context.Context) (aws.Credentials, error) {
				return aws.Credentials{
					AccessKeyID:     accessKey,
					SecretAccessKey: secretKey,
					SessionToken:    sessionToken,
				}, nil
			},
		)),
		config.WithRegion(region),
	)
}

func assumeRole(ctx context.Context, accessKey, secretKey, roleARN, region string) (*stsTypes.Credentials, error) {
	baseCfg, err := loadAWSConfig(ctx, accessKey, secretKey, "", region)
	if err != nil {
		return nil, fmt.Errorf("unable to load base AWS config: %w", err)
	}
	output, err := sts.NewFromConfig(baseCfg).AssumeRole(ctx, &sts.AssumeRoleInput{
		RoleArn:         aws.String(roleARN),
		RoleSessionName: aws.String(defaultSessionName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to assume role: %w", err)
	}
	return output.Credentials, nil
}
