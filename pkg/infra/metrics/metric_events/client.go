package metric_events

import "context"

type clientKey struct{}

// Client describes the caller of a request, as seen by the HTTP layer.
type Client struct {
	IP      string
	Locale  string
	Device  string
	Os      string
	Browser string
}

func WithClient(ctx context.Context, c *Client) context.Context {
	return context.WithValue(ctx, clientKey{}, c)
}

func ClientFromContext(ctx context.Context) (*Client, bool) {
	c, ok := ctx.Value(clientKey{}).(*Client)
	return c, ok && c != nil
}

// Attach copies the caller stored in ctx, if any, onto the event.
func (e *Event) Attach(ctx context.Context) *Event {
	c, ok := ClientFromContext(ctx)
	if !ok {
		return e
	}
	e.IP = c.IP
	e.Locale = c.Locale
	e.Device = c.Device
	e.Os = c.Os
	e.Browser = c.Browser
	return e
}
