package dependency_container

import (
	"context"
	"fmt"

	appAnalysis "github.com/NeuralTrust/TrustChat/pkg/app/analysis"
	appPolicy "github.com/NeuralTrust/TrustChat/pkg/app/policy"
	"github.com/NeuralTrust/TrustChat/pkg/app/report"
	"github.com/NeuralTrust/TrustChat/pkg/app/telemetry"
	"github.com/NeuralTrust/TrustChat/pkg/config"
	domainAnalysis "github.com/NeuralTrust/TrustChat/pkg/domain/analysis"
	domainPolicy "github.com/NeuralTrust/TrustChat/pkg/domain/policy"
	domainSession "github.com/NeuralTrust/TrustChat/pkg/domain/session"
	domainTelemetry "github.com/NeuralTrust/TrustChat/pkg/domain/telemetry"
	handlers "github.com/NeuralTrust/TrustChat/pkg/handlers/http"
	wsHandlers "github.com/NeuralTrust/TrustChat/pkg/handlers/websocket"
	"github.com/NeuralTrust/TrustChat/pkg/infra/auth/jwt"
	"github.com/NeuralTrust/TrustChat/pkg/infra/cache"
	"github.com/NeuralTrust/TrustChat/pkg/infra/cache/event"
	"github.com/NeuralTrust/TrustChat/pkg/infra/cache/subscriber"
	"github.com/NeuralTrust/TrustChat/pkg/infra/database"
	"github.com/NeuralTrust/TrustChat/pkg/infra/extractor"
	"github.com/NeuralTrust/TrustChat/pkg/infra/httpx"
	"github.com/NeuralTrust/TrustChat/pkg/infra/metrics"
	"github.com/NeuralTrust/TrustChat/pkg/infra/providers"
	providersFactory "github.com/NeuralTrust/TrustChat/pkg/infra/providers/factory"
	"github.com/NeuralTrust/TrustChat/pkg/infra/realtime"
	"github.com/NeuralTrust/TrustChat/pkg/infra/repository"
	infraTelemetry "github.com/NeuralTrust/TrustChat/pkg/infra/telemetry"
	"github.com/NeuralTrust/TrustChat/pkg/infra/telemetry/kafka"
	"github.com/NeuralTrust/TrustChat/pkg/infra/telemetry/logexporter"
	infraWS "github.com/NeuralTrust/TrustChat/pkg/infra/websocket"
	"github.com/NeuralTrust/TrustChat/pkg/server/middleware"
	"github.com/sirupsen/logrus"
)

type Container struct {
	Config              *config.Config
	Logger              *logrus.Logger
	DB                  *database.DB
	Cache               cache.Client
	RedisListener       cache.EventListener
	RedisPublisher      cache.EventPublisher
	SessionRepository   domainSession.Repository
	PolicyRepository    domainPolicy.Repository
	PolicyChecker       appPolicy.Checker
	PolicyManager       appPolicy.Manager
	Analyzer            appAnalysis.Analyzer
	ReportService       report.Service
	MetricsWorker       metrics.Worker
	JWTManager          jwt.Manager
	RealtimeDialer      realtime.Dialer
	Semaphore           *infraWS.Semaphore
	HandlerTransport    *handlers.HandlerTransport
	WSHandlerTransport  wsHandlers.HandlerTransport
	MiddlewareTransport *middleware.Transport
}

type ContainerDI struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	// DB is nil when database.enabled is false; policies then come from the seed file.
	DB *database.DB
}

func NewContainer(di ContainerDI) (*Container, error) {
	cfg := di.Cfg
	logger := di.Logger

	// cache
	cacheInstance := cache.NewClientWithRedis(nil)
	var publisher cache.EventPublisher = cache.NewNoopEventPublisher()
	var listener cache.EventListener
	if cfg.Redis.Enabled {
		var err error
		cacheInstance, err = cache.NewClient(cache.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TLS:      cfg.Redis.TLS,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize cache: %w", err)
		}
		publisher = cache.NewRedisEventPublisher(cacheInstance, cache.PolicyEventsChannel)
		listener = cache.NewRedisEventListener(logger, cacheInstance, event.Registry)
	}
	policyTTLMap := cacheInstance.CreateTTLMap(cache.PolicyTTLName, cfg.Policies.CacheTTL)

	// repository
	var sessionRepository domainSession.Repository
	if cfg.Redis.Enabled {
		sessionRepository = repository.NewSessionRepository(cacheInstance, cfg.Session.TTL, cfg.Session.MaxTurns)
	} else {
		sessionRepository = repository.NewLocalSessionRepository(
			cacheInstance.CreateTTLMap(cache.SessionTTLName, cfg.Session.TTL),
			cfg.Session.MaxTurns,
		)
	}

	var policyStore domainPolicy.Repository
	if di.DB != nil {
		policyStore = repository.NewPolicyRepository(di.DB.DB)
	} else {
		seed, err := repository.LoadPolicySeed(cfg.Policies.SeedFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load policy seed: %w", err)
		}
		logger.WithFields(logrus.Fields{
			"file":     cfg.Policies.SeedFile,
			"policies": len(seed),
		}).Info("using in-memory policy repository")
		policyStore = repository.NewMemoryPolicyRepository(seed)
	}
	policyRepository := repository.NewCachedPolicyRepository(policyStore, policyTTLMap, publisher, logger)

	// subscribers
	if listener != nil {
		cache.RegisterEventSubscriber[event.UpdatePolicyCacheEvent](
			listener, subscriber.NewUpdatePolicyCacheEventSubscriber(logger, cacheInstance))
		cache.RegisterEventSubscriber[event.DeletePolicyCacheEvent](
			listener, subscriber.NewDeletePolicyCacheEventSubscriber(logger, cacheInstance))
	}

	// telemetry
	exporterLocator := infraTelemetry.NewExporterLocator(
		infraTelemetry.WithExporter(kafka.NewKafkaExporter(logger)),
		infraTelemetry.WithExporter(logexporter.NewLogExporter(logger)),
	)
	exporterConfigs := cfg.Telemetry.Exporters
	if len(exporterConfigs) == 0 {
		exporterConfigs = []domainTelemetry.ExporterConfig{{Name: logexporter.ExporterName}}
	}
	exporters, err := telemetry.NewExportersBuilder(exporterLocator).Build(exporterConfigs)
	if err != nil {
		return nil, fmt.Errorf("failed to build telemetry exporters: %w", err)
	}
	metricsWorker := metrics.NewWorker(logger, exporters, metrics.Config{
		QueueSize:   cfg.Telemetry.QueueSize,
		ExtraParams: cfg.Telemetry.ExtraParams,
	})
	metricsWorker.StartWorkers(cfg.Telemetry.Workers)

	// analysis
	regexTTL := cfg.Policies.RegexTTL
	if regexTTL <= 0 {
		regexTTL = appPolicy.DefaultRegexTTL
	}
	regexTTLMap := cacheInstance.CreateTTLMap(cache.RegexTTLName, regexTTL)
	policyChecker := appPolicy.NewChecker(logger, policyRepository, regexTTLMap)
	policyManager := appPolicy.NewManager(logger, policyRepository)

	httpClient := httpx.NewFastHTTPClient(httpx.WithTimeout(cfg.Analysis.SourceTimeout))
	sources, err := buildSources(cfg, policyChecker, providersFactory.NewProviderLocator(httpClient))
	if err != nil {
		metricsWorker.Shutdown()
		return nil, err
	}
	analyzer := appAnalysis.NewAnalyzer(logger, sources, sessionRepository, metricsWorker, appAnalysis.Config{
		SourceTimeout:   cfg.Analysis.SourceTimeout,
		KeywordFallback: cfg.Analysis.KeywordFallback,
		ContextTurns:    cfg.Session.ContextTurns,
	})
	reportService := report.NewService(logger, analyzer, metricsWorker, cfg.Analysis.ReportConcurrency)

	// auth & realtime
	jwtManager := jwt.NewJwtManager(&cfg.Auth)
	realtimeDialer := realtime.NewDialer(logger, &cfg.Realtime)
	semaphore := infraWS.NewSemaphore(cfg.WebSocket.MaxConnections)

	handlerTransport := &handlers.HandlerTransport{
		AnalyzeMessageHandler: handlers.NewAnalyzeMessageHandler(logger, analyzer),
		AnalyzeChatHandler:    handlers.NewAnalyzeChatHandler(logger, reportService),
		PolicyCheckHandler:    handlers.NewPolicyCheckHandler(logger, policyChecker, metricsWorker),
		ListPoliciesHandler:   handlers.NewListPoliciesHandler(logger, policyManager),
		UpsertPolicyHandler:   handlers.NewUpsertPolicyHandler(logger, policyManager),
		DeletePolicyHandler:   handlers.NewDeletePolicyHandler(logger, policyManager),
		HealthHandler:         handlers.NewHealthHandler(analyzer),
		GetVersionHandler:     handlers.NewGetVersionHandler(),
	}

	wsHandlerTransport := &wsHandlers.HandlerTransportDTO{
		AudioHandler: wsHandlers.NewAudioHandler(logger, cfg, realtimeDialer, metricsWorker),
	}

	middlewareTransport := &middleware.Transport{
		RequestLogMiddleware: middleware.NewRequestLogMiddleware(logger),
		AuthMiddleware:       middleware.NewAuthMiddleware(logger, cfg.Auth, jwtManager),
		WebsocketMiddleware:  middleware.NewWebsocketMiddleware(logger, semaphore),
	}
	if cfg.Metrics.Enabled {
		middlewareTransport.MetricsMiddleware = middleware.NewMetricsMiddleware()
	}

	return &Container{
		Config:              cfg,
		Logger:              logger,
		DB:                  di.DB,
		Cache:               cacheInstance,
		RedisListener:       listener,
		RedisPublisher:      publisher,
		SessionRepository:   sessionRepository,
		PolicyRepository:    policyRepository,
		PolicyChecker:       policyChecker,
		PolicyManager:       policyManager,
		Analyzer:            analyzer,
		ReportService:       reportService,
		MetricsWorker:       metricsWorker,
		JWTManager:          jwtManager,
		RealtimeDialer:      realtimeDialer,
		Semaphore:           semaphore,
		HandlerTransport:    handlerTransport,
		WSHandlerTransport:  wsHandlerTransport,
		MiddlewareTransport: middlewareTransport,
	}, nil
}

// buildSources instantiates analysis.sources in configured order. Every
// model-backed source gets its own breaker.
func buildSources(
	cfg *config.Config,
	checker appPolicy.Checker,
	locator providersFactory.ProviderLocator,
) ([]appAnalysis.Source, error) {
	providerConfig := &providers.Config{
		Credentials:  credentialsFor(cfg),
		Model:        cfg.Analysis.Model,
		MaxTokens:    cfg.Analysis.MaxTokens,
		Temperature:  cfg.Analysis.Temperature,
		SystemPrompt: appAnalysis.SystemPrompt,
	}
	ext := extractor.New(cfg.Analysis.FallbackKeywords...)

	sources := make([]appAnalysis.Source, 0, len(cfg.Analysis.Sources))
	for _, name := range cfg.Analysis.Sources {
		if name == domainAnalysis.SourcePolicy {
			sources = append(sources, appAnalysis.NewPolicySource(checker))
			continue
		}
		client, err := locator.Get(cfg.Analysis.Provider)
		if err != nil {
			return nil, err
		}
		var keywords *appAnalysis.KeywordTable
		if cfg.Analysis.KeywordFallback {
			keywords = appAnalysis.KeywordTableFor(name)
		}
		breaker := httpx.NewCircuitBreaker(name, cfg.Analysis.Breaker.Timeout, cfg.Analysis.Breaker.MaxFailures)
		src, err := appAnalysis.NewLLMSource(name, client, providerConfig, breaker, ext, keywords)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

func credentialsFor(cfg *config.Config) providers.Credentials {
	p := cfg.Providers
	switch cfg.Analysis.Provider {
	case providersFactory.ProviderOpenAI:
		return providers.Credentials{ApiKey: p.OpenAI.APIKey, BaseURL: p.OpenAI.BaseURL}
	case providersFactory.ProviderAnthropic:
		return providers.Credentials{ApiKey: p.Anthropic.APIKey, BaseURL: p.Anthropic.BaseURL}
	case providersFactory.ProviderAzure:
		return providers.Credentials{
			ApiKey: p.Azure.APIKey,
			Azure: &providers.AzureCredentials{
				Endpoint:    p.Azure.Endpoint,
				ApiVersion:  p.Azure.APIVersion,
				UseIdentity: p.Azure.UseIdentity,
			},
		}
	case providersFactory.ProviderBedrock:
		return providers.Credentials{
			AwsBedrock: &providers.AwsBedrockCredentials{
				Region:       p.Bedrock.Region,
				AccessKey:    p.Bedrock.AccessKey,
				SecretKey:    p.Bedrock.SecretKey,
				SessionToken: p.Bedrock.SessionToken,
				UseRole:      p.Bedrock.UseRole,
				RoleARN:      p.Bedrock.RoleARN,
			},
		}
	default:
		return providers.Credentials{ApiKey: p.Gemini.APIKey, BaseURL: p.Gemini.BaseURL}
	}
}

// StartListeners runs background consumers until ctx is done.
func (c *Container) StartListeners(ctx context.Context) {
	if c.RedisListener != nil {
		go c.RedisListener.Listen(ctx, cache.PolicyEventsChannel)
	}
}

// Close releases resources in reverse construction order.
func (c *Container) Close() {
	c.MetricsWorker.Shutdown()
	if err := c.Cache.Close(); err != nil {
		c.Logger.WithError(err).Warn("failed to close cache")
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			c.Logger.WithError(err).Warn("failed to close database")
		}
	}
}
