package router

import (
	"time"

	"github.com/NeuralTrust/TrustChat/pkg/config"
	handlers "github.com/NeuralTrust/TrustChat/pkg/handlers/http"
	wsHandlers "github.com/NeuralTrust/TrustChat/pkg/handlers/websocket"
	"github.com/NeuralTrust/TrustChat/pkg/server/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
)

const (
	HealthPath    = "/health"
	VersionPath   = "/version"
	DocsPath      = "/docs/*"
	APIPrefix     = "/api"
	AudioPath     = "/ws/audio"
	PolicyIDParam = "/:policy_id"
)

type apiRouter struct {
	middlewareTransport *middleware.Transport
	handlerTransport    *handlers.HandlerTransport
	wsHandlerTransport  wsHandlers.HandlerTransport
	config              *config.Config
}

func NewAPIRouter(
	middlewareTransport *middleware.Transport,
	handlerTransport *handlers.HandlerTransport,
	wsHandlerTransport wsHandlers.HandlerTransport,
	cfg *config.Config,
) ServerRouter {
	return &apiRouter{
		middlewareTransport: middlewareTransport,
		handlerTransport:    handlerTransport,
		wsHandlerTransport:  wsHandlerTransport,
		config:              cfg,
	}
}

func (r *apiRouter) BuildRoutes(router *fiber.App) error {
	if r.handlerTransport == nil || r.middlewareTransport == nil {
		return ErrInvalidHandlerTransport
	}
	wsHandlerTransport, ok := r.wsHandlerTransport.GetTransport().(*wsHandlers.HandlerTransportDTO)
	if !ok {
		return ErrInvalidHandlerTransport
	}
	h := r.handlerTransport

	origins := r.config.Server.AllowedOrigins
	if origins == "" {
		origins = "*"
	}
	router.Use(
		recover.New(),
		requestid.New(),
		cors.New(cors.Config{
			AllowOrigins: origins,
			AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
			AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		}),
	)

	router.Get(HealthPath, h.HealthHandler.Handle)
	router.Get(VersionPath, h.GetVersionHandler.Handle)
	router.Get(DocsPath, swagger.HandlerDefault)

	api := router.Group(APIPrefix, r.middlewareTransport.API()...)
	{
		api.Post("/analyze-message", h.AnalyzeMessageHandler.Handle)
		api.Post("/analyze-chat", h.AnalyzeChatHandler.Handle)
		api.Post("/policy-check", h.PolicyCheckHandler.Handle)

		policies := api.Group("/policies")
		{
			policies.Get("", h.ListPoliciesHandler.Handle)
			policies.Put(PolicyIDParam, h.UpsertPolicyHandler.Handle)
			policies.Delete(PolicyIDParam, h.DeletePolicyHandler.Handle)
		}
	}

	wsChain := append(r.middlewareTransport.Websocket(), websocket.New(
		wsHandlerTransport.AudioHandler.Handle,
		websocket.Config{
			HandshakeTimeout: 15 * time.Second,
			ReadBufferSize:   1024,
			WriteBufferSize:  1024,
		},
	))
	router.Get(AudioPath, wsChain...)

	return nil
}
