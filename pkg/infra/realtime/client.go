package realtime

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/NeuralTrust/TrustChat/pkg/config"
	gorilla "github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var ErrSessionClosed = errors.New("realtime session closed")

//go:generate mockery --name=Dialer --dir=. --output=./mocks --filename=dialer_mock.go --case=underscore --with-expecter
type Dialer interface {
	Dial(ctx context.Context) (Session, error)
}

//go:generate mockery --name=Session --dir=. --output=./mocks --filename=session_mock.go --case=underscore --with-expecter
type Session interface {
	Send(msg interface{}) error
	Receive() (Event, error)
	Close() error
}

type dialer struct {
	cfg    *config.RealtimeConfig
	logger *logrus.Logger
	dialer *gorilla.Dialer
}

func NewDialer(logger *logrus.Logger, cfg *config.RealtimeConfig) Dialer {
	return &dialer{
		cfg:    cfg,
		logger: logger,
		dialer: &gorilla.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: cfg.HandshakeTimeout,
		},
	}
}

func (d *dialer) Dial(ctx context.Context) (Session, error) {
	target, err := d.targetURL()
	if err != nil {
		return nil, err
	}
	headers := http.Header{}
	if d.cfg.APIKey != "" {
		headers.Set("Authorization", "Bearer "+d.cfg.APIKey)
	}
	headers.Set("OpenAI-Beta", "realtime=v1")

	conn, resp, err := d.dialer.DialContext(ctx, target, headers)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("realtime dial failed: %v (HTTP %d)", err, resp.StatusCode)
		}
		return nil, fmt.Errorf("realtime dial failed: %w", err)
	}
	d.logger.WithField("url", target).Debug("realtime session opened")
	return newSession(conn), nil
}

func (d *dialer) targetURL() (string, error) {
	u, err := url.Parse(d.cfg.URL)
	if err != nil {
		return "", fmt.Errorf("invalid realtime url: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	}
	if d.cfg.Model != "" {
		q := u.Query()
		q.Set("model", d.cfg.Model)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

type session struct {
	conn      *gorilla.Conn
	writeMu   sync.Mutex
	closeOnce sync.Once
	closed    chan struct{}
}

func newSession(conn *gorilla.Conn) *session {
	return &session{conn: conn, closed: make(chan struct{})}
}

func (s *session) Send(msg interface{}) error {
	select {
	case <-s.closed:
		return ErrSessionClosed
	default:
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(msg)
}

// Receive blocks for the next upstream frame. Frames that fail to parse are
// skipped.
func (s *session) Receive() (Event, error) {
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			select {
			case <-s.closed:
				return Event{}, ErrSessionClosed
			default:
				return Event{}, err
			}
		}
		evt, err := Normalize(data)
		if err != nil {
			continue
		}
		return evt, nil
	}
}

func (s *session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.closed)
		s.writeMu.Lock()
		_ = s.conn.WriteControl(
			gorilla.CloseMessage,
			gorilla.FormatCloseMessage(gorilla.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		s.writeMu.Unlock()
		err = s.conn.Close()
	})
	return err
}
