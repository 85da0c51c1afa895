package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/NeuralTrust/TrustChat/pkg/domain/telemetry"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Session   SessionConfig   `mapstructure:"session"`
	Analysis  AnalysisConfig  `mapstructure:"analysis"`
	Providers ProvidersConfig `mapstructure:"providers"`
	Auth      AuthConfig      `mapstructure:"auth"`
	WebSocket WebSocketConfig `mapstructure:"websocket"`
	Realtime  RealtimeConfig  `mapstructure:"realtime"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Policies  PoliciesConfig  `mapstructure:"policies"`
}

type ServerConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	MetricsPort    int    `mapstructure:"metrics_port"`
	AllowedOrigins string `mapstructure:"allowed_origins"`
	BodyLimit      int    `mapstructure:"body_limit"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

type MetricsConfig struct {
	Enabled             bool `mapstructure:"enabled"`
	EnableLatency       bool `mapstructure:"enable_latency"`
	EnableSourceMetrics bool `mapstructure:"enable_source_metrics"`
	EnableConnections   bool `mapstructure:"enable_connections"`
}

type DatabaseConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	DBName       string `mapstructure:"name"`
	SSLMode      string `mapstructure:"sslmode"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TLS      bool   `mapstructure:"tls"`
}

type SessionConfig struct {
	TTL      time.Duration `mapstructure:"ttl"`
	MaxTurns int           `mapstructure:"max_turns"`
	// ContextTurns is how many recent turns are quoted in prompts.
	ContextTurns int `mapstructure:"context_turns"`
}

type BreakerConfig struct {
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxFailures uint32        `mapstructure:"max_failures"`
}

type AnalysisConfig struct {
	Provider          string        `mapstructure:"provider"`
	Model             string        `mapstructure:"model"`
	Temperature       float64       `mapstructure:"temperature"`
	MaxTokens         int           `mapstructure:"max_tokens"`
	Sources           []string      `mapstructure:"sources"`
	SourceTimeout     time.Duration `mapstructure:"source_timeout"`
	KeywordFallback   bool          `mapstructure:"keyword_fallback"`
	FallbackKeywords  []string      `mapstructure:"fallback_keywords"`
	ReportConcurrency int           `mapstructure:"report_concurrency"`
	Breaker           BreakerConfig `mapstructure:"breaker"`
}

type ProviderCredentials struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

type AzureConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Endpoint    string `mapstructure:"endpoint"`
	APIVersion  string `mapstructure:"api_version"`
	UseIdentity bool   `mapstructure:"use_identity"`
}

type BedrockConfig struct {
	Region       string `mapstructure:"region"`
	AccessKey    string `mapstructure:"access_key"`
	SecretKey    string `mapstructure:"secret_key"`
	SessionToken string `mapstructure:"session_token"`
	UseRole      bool   `mapstructure:"use_role"`
	RoleARN      string `mapstructure:"role_arn"`
}

type ProvidersConfig struct {
	OpenAI    ProviderCredentials `mapstructure:"openai"`
	Anthropic ProviderCredentials `mapstructure:"anthropic"`
	Gemini    ProviderCredentials `mapstructure:"gemini"`
	Azure     AzureConfig         `mapstructure:"azure"`
	Bedrock   BedrockConfig       `mapstructure:"bedrock"`
}

type AuthConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	SecretKey string        `mapstructure:"secret_key"`
	Issuer    string        `mapstructure:"issuer"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
	DemoUser  string        `mapstructure:"demo_user"`
}

type WebSocketConfig struct {
	MaxConnections int           `mapstructure:"max_connections"`
	PingPeriod     time.Duration `mapstructure:"ping_period"`
	PongWait       time.Duration `mapstructure:"pong_wait"`
	MaxMessageSize int64         `mapstructure:"max_message_size"`
}

type RealtimeConfig struct {
	URL              string        `mapstructure:"url"`
	APIKey           string        `mapstructure:"api_key"`
	Model            string        `mapstructure:"model"`
	Voice            string        `mapstructure:"voice"`
	Instructions     string        `mapstructure:"instructions"`
	HandshakeTimeout time.Duration `mapstructure:"handshake_timeout"`
	ResponseTimeout  time.Duration `mapstructure:"response_timeout"`
}

type TelemetryConfig struct {
	Workers     int                        `mapstructure:"workers"`
	QueueSize   int                        `mapstructure:"queue_size"`
	ExtraParams map[string]string          `mapstructure:"extra_params"`
	Exporters   []telemetry.ExporterConfig `mapstructure:"exporters"`
}

type PoliciesConfig struct {
	SeedFile string        `mapstructure:"seed_file"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
	RegexTTL time.Duration `mapstructure:"regex_ttl"`
}

var globalConfig Config

// Load reads <configPath>/config.yaml, falling back to ./config and the
// working directory. A missing file is not an error: defaults and
// environment variables still apply.
func Load(configPath string) error {
	v := viper.New()
	setDefaultValues(v)
	bindEnvAliases(v)
	if err := loadConfigFile(v, configPath, "config", &globalConfig); err != nil {
		return err
	}
	return nil
}

func loadConfigFile(v *viper.Viper, configPath, fileName string, out interface{}) error {
	v.SetConfigName(fileName)
	v.SetConfigType("yaml")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
		}
	}

	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}
	return nil
}

func setDefaultValues(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.metrics_port", 9090)
	v.SetDefault("server.allowed_origins", "http://localhost:3000")
	v.SetDefault("server.body_limit", 4*1024*1024)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.enable_latency", true)
	v.SetDefault("metrics.enable_source_metrics", true)
	v.SetDefault("metrics.enable_connections", true)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "trustchat")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.tls", false)

	v.SetDefault("session.ttl", time.Hour)
	v.SetDefault("session.max_turns", 10)
	v.SetDefault("session.context_turns", 5)

	v.SetDefault("analysis.provider", "gemini")
	v.SetDefault("analysis.model", "gemini-2.0-flash")
	v.SetDefault("analysis.temperature", 0.1)
	v.SetDefault("analysis.max_tokens", 1024)
	v.SetDefault("analysis.sources", []string{"harassment", "confidentiality", "sentiment", "toxicity", "policy"})
	v.SetDefault("analysis.source_timeout", 30*time.Second)
	v.SetDefault("analysis.keyword_fallback", true)
	v.SetDefault("analysis.fallback_keywords", []string{"violation", "違反", "inappropriate", "不適切"})
	v.SetDefault("analysis.report_concurrency", 4)
	v.SetDefault("analysis.breaker.timeout", 30*time.Second)
	v.SetDefault("analysis.breaker.max_failures", 5)

	v.SetDefault("providers.openai.api_key", "")
	v.SetDefault("providers.anthropic.api_key", "")
	v.SetDefault("providers.gemini.api_key", "")
	v.SetDefault("providers.azure.api_key", "")
	v.SetDefault("providers.azure.endpoint", "")
	v.SetDefault("providers.azure.api_version", "2024-06-01")
	v.SetDefault("providers.bedrock.region", "us-east-1")

	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.secret_key", "")
	v.SetDefault("auth.issuer", "trustchat")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.demo_user", "demo_user")

	v.SetDefault("websocket.max_connections", 1000)
	v.SetDefault("websocket.ping_period", 30*time.Second)
	v.SetDefault("websocket.pong_wait", 60*time.Second)
	v.SetDefault("websocket.max_message_size", 1024*1024)

	v.SetDefault("realtime.url", "wss://api.openai.com/v1/realtime")
	v.SetDefault("realtime.api_key", "")
	v.SetDefault("realtime.model", "gpt-4o-realtime-preview")
	v.SetDefault("realtime.voice", "alloy")
	v.SetDefault("realtime.handshake_timeout", 10*time.Second)
	v.SetDefault("realtime.response_timeout", 30*time.Second)

	v.SetDefault("telemetry.workers", 4)
	v.SetDefault("telemetry.queue_size", 1000)

	v.SetDefault("policies.seed_file", "config/policies.yaml")
	v.SetDefault("policies.cache_ttl", 5*time.Minute)
	v.SetDefault("policies.regex_ttl", 10*time.Minute)
}

// bindEnvAliases lets the conventional vendor variables fill provider keys.
func bindEnvAliases(v *viper.Viper) {
	aliases := map[string][]string{
		"providers.openai.api_key":    {"PROVIDERS_OPENAI_API_KEY", "OPENAI_API_KEY"},
		"providers.anthropic.api_key": {"PROVIDERS_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY"},
		"providers.gemini.api_key":    {"PROVIDERS_GEMINI_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY"},
		"providers.azure.api_key":     {"PROVIDERS_AZURE_API_KEY", "AZURE_OPENAI_API_KEY"},
		"realtime.api_key":            {"REALTIME_API_KEY", "OPENAI_API_KEY"},
		"auth.secret_key":             {"AUTH_SECRET_KEY", "JWT_SECRET"},
		"websocket.max_connections":   {"WEBSOCKET_MAX_CONNECTIONS"},
	}
	for key, envs := range aliases {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}
}

func GetConfig() *Config {
	return &globalConfig
}

// Validate reports settings that would only fail later at request time.
func (c *Config) Validate() error {
	if c.Auth.Enabled && c.Auth.SecretKey == "" {
		return errors.New("auth.secret_key is required when auth is enabled")
	}
	if len(c.Analysis.Sources) == 0 {
		return errors.New("analysis.sources must name at least one source")
	}
	if c.Session.MaxTurns <= 0 {
		return errors.New("session.max_turns must be positive")
	}
	return nil
}
