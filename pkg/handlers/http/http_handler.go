package http

import "github.com/gofiber/fiber/v2"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Analysis
	AnalyzeMessageHandler Handler
	AnalyzeChatHandler    Handler

	// Policies
	PolicyCheckHandler  Handler
	ListPoliciesHandler Handler
	UpsertPolicyHandler Handler
	DeletePolicyHandler Handler

	// System
	HealthHandler     Handler
	GetVersionHandler Handler
}
