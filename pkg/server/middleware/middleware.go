package middleware

import "github.com/gofiber/fiber/v2"

type Middleware interface {
	Middleware() fiber.Handler
}

type Transport struct {
	RequestLogMiddleware Middleware
	MetricsMiddleware    Middleware
	AuthMiddleware       Middleware
	WebsocketMiddleware  Middleware
}

// API returns the chain applied to /api routes, in order.
func (t *Transport) API() []fiber.Handler {
	return handlers(t.RequestLogMiddleware, t.MetricsMiddleware, t.AuthMiddleware)
}

// Websocket returns the chain applied to /ws routes, in order.
func (t *Transport) Websocket() []fiber.Handler {
	return handlers(t.RequestLogMiddleware, t.AuthMiddleware, t.WebsocketMiddleware)
}

func handlers(mws ...Middleware) []fiber.Handler {
	out := make([]fiber.Handler, 0, len(mws))
	for _, mw := range mws {
		if mw != nil {
			out = append(out, mw.Middleware())
		}
	}
	return out
}
