package websocket

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/NeuralTrust/TrustChat/pkg/app/analysis"
	"github.com/NeuralTrust/TrustChat/pkg/common"
	"github.com/NeuralTrust/TrustChat/pkg/config"
	"github.com/NeuralTrust/TrustChat/pkg/infra/auth/jwt"
	"github.com/NeuralTrust/TrustChat/pkg/infra/metrics/metric_events"
	"github.com/NeuralTrust/TrustChat/pkg/infra/prometheus"
	"github.com/NeuralTrust/TrustChat/pkg/infra/realtime"
	infraWebsocket "github.com/NeuralTrust/TrustChat/pkg/infra/websocket"
	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const audioRoute = "/ws/audio"

const (
	StartSession = "start_session"
	AudioChunk   = "audio_chunk"
	StopSession  = "stop_session"

	SessionStarted  = "session_started"
	AudioChunkAck   = "audio_chunk_ack"
	AIAudioStream   = "ai_audio_stream"
	AIAudioResponse = "ai_audio_response"
	SessionStopped  = "session_stopped"
	ErrorMessage    = "error"
)

type InboundMessage struct {
	Type      string `json:"type"`
	AudioData string `json:"audio_data,omitempty"`
}

type OutboundMessage struct {
	Type       string `json:"type"`
	SessionID  string `json:"session_id,omitempty"`
	Audio      string `json:"audio,omitempty"`
	Text       string `json:"text,omitempty"`
	Transcript string `json:"transcript,omitempty"`
	Bytes      int    `json:"bytes,omitempty"`
	Message    string `json:"message,omitempty"`
}

// clientConn is the part of the client socket the relay drives.
type clientConn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
	SetReadDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
	SetReadLimit(limit int64)
}

type audioHandler struct {
	logger   *logrus.Logger
	ws       config.WebSocketConfig
	realtime config.RealtimeConfig
	dialer   realtime.Dialer
	auditor  analysis.Auditor
}

func NewAudioHandler(
	logger *logrus.Logger,
	cfg *config.Config,
	dialer realtime.Dialer,
	auditor analysis.Auditor,
) Handler {
	return &audioHandler{
		logger:   logger,
		ws:       cfg.WebSocket,
		realtime: cfg.Realtime,
		dialer:   dialer,
		auditor:  auditor,
	}
}

// Handle godoc
// @Summary      Realtime audio relay
// @Description  Upgrades to a WebSocket and relays audio chunks to the realtime model
// @Tags         Audio
// @Success      101
// @Failure      426 {object} map[string]interface{} "Upgrade required"
// @Failure      429 {object} map[string]interface{} "Too many connections"
// @Router       /ws/audio [get]
func (h *audioHandler) Handle(c *websocket.Conn) {
	if sem, ok := c.Locals(string(common.SemaphoreKey)).(*infraWebsocket.Semaphore); ok {
		defer func() {
			sem.Release()
			if prometheus.Config.EnableConnections {
				prometheus.Connections.WithLabelValues(audioRoute, "active").Set(float64(sem.InUse()))
			}
		}()
	}
	userID := common.DefaultUserID
	if identity, ok := c.Locals(string(common.IdentityContextKey)).(*jwt.Identity); ok && identity != nil {
		userID = identity.UID
	}
	h.serve(context.Background(), c, userID)
}

func (h *audioHandler) serve(ctx context.Context, conn clientConn, userID string) {
	r := &relay{
		handler: h,
		conn:    conn,
		userID:  userID,
		logger:  h.logger.WithField("user_id", userID),
	}
	defer r.release()

	if h.ws.MaxMessageSize > 0 {
		conn.SetReadLimit(h.ws.MaxMessageSize)
	}
	if err := r.extendDeadline(); err != nil {
		r.logger.WithError(err).Error("failed to set read deadline")
		return
	}
	conn.SetPongHandler(func(string) error {
		return r.extendDeadline()
	})

	stopPing := make(chan struct{})
	defer close(stopPing)
	go r.ping(stopPing)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			r.logger.WithError(err).Debug("audio client disconnected")
			return
		}
		if err := r.extendDeadline(); err != nil {
			r.logger.WithError(err).Error("failed to set read deadline")
			return
		}

		var msg InboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			r.sendError("invalid message")
			continue
		}
		switch msg.Type {
		case StartSession:
			r.start(ctx)
		case AudioChunk:
			r.forward(msg.AudioData)
		case StopSession:
			r.stop()
		default:
			r.sendError("unknown message type: " + msg.Type)
		}
	}
}

// relay is the state of one client socket. Only the read loop touches the
// upstream fields; the pump goroutine works on its own session reference.
type relay struct {
	handler *audioHandler
	conn    clientConn
	userID  string
	logger  *logrus.Entry
	writeMu sync.Mutex

	upstream  realtime.Session
	sessionID string
	startedAt time.Time
	chunks    int
	turn      *turn
	pumpDone  chan struct{}
}

// turn tracks the response requested on stop_session. Only the response.done
// carrying the id of the first response.created seen after arm finishes it,
// so answers to earlier turns never end the session early.
type turn struct {
	mu       sync.Mutex
	armed    bool
	seen     bool
	target   string
	finished chan struct{}
}

func newTurn() *turn {
	return &turn{finished: make(chan struct{}, 1)}
}

func (t *turn) arm() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.armed = true
	t.seen = false
	t.target = ""
	select {
	case <-t.finished:
	default:
	}
}

func (t *turn) created(responseID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.armed && !t.seen {
		t.seen = true
		t.target = responseID
	}
}

func (t *turn) done(responseID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.armed || !t.seen || responseID != t.target {
		return
	}
	t.armed = false
	select {
	case t.finished <- struct{}{}:
	default:
	}
}

func (r *relay) extendDeadline() error {
	if r.handler.ws.PongWait <= 0 {
		return nil
	}
	return r.conn.SetReadDeadline(time.Now().Add(r.handler.ws.PongWait))
}

func (r *relay) ping(stop <-chan struct{}) {
	period := r.handler.ws.PingPeriod
	if period <= 0 {
		period = 30 * time.Second
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			r.writeMu.Lock()
			err := r.conn.WriteMessage(websocket.PingMessage, nil)
			r.writeMu.Unlock()
			if err != nil {
				r.logger.WithError(err).Debug("failed to send ping")
				return
			}
		}
	}
}

func (r *relay) start(ctx context.Context) {
	if r.upstream != nil {
		r.sendError("session already started")
		return
	}
	up, err := r.handler.dialer.Dial(ctx)
	if err != nil {
		r.logger.WithError(err).Error("failed to open realtime session")
		r.sendError("failed to start realtime session")
		return
	}
	if err := up.Send(realtime.SessionUpdate(r.handler.realtime.Voice, r.handler.realtime.Instructions)); err != nil {
		r.logger.WithError(err).Error("failed to configure realtime session")
		_ = up.Close()
		r.sendError("failed to start realtime session")
		return
	}

	r.upstream = up
	r.sessionID = uuid.NewString()
	r.startedAt = time.Now()
	r.chunks = 0
	r.turn = newTurn()
	r.pumpDone = make(chan struct{})
	go r.pump(up, r.turn, r.pumpDone)

	r.logger.WithField("session_id", r.sessionID).Info("audio session started")
	r.send(OutboundMessage{Type: SessionStarted, SessionID: r.sessionID})
}

func (r *relay) forward(audio string) {
	if r.upstream == nil {
		r.sendError("no active session")
		return
	}
	if audio == "" {
		r.sendError("missing audio_data")
		return
	}
	raw, err := base64.StdEncoding.DecodeString(audio)
	if err != nil {
		r.sendError("invalid audio_data: not base64")
		return
	}
	if err := r.upstream.Send(realtime.AppendAudio(audio)); err != nil {
		r.logger.WithError(err).Warn("failed to forward audio chunk")
		r.sendError("failed to forward audio chunk")
		return
	}
	r.chunks++
	r.send(OutboundMessage{Type: AudioChunkAck, SessionID: r.sessionID, Bytes: len(raw)})
}

func (r *relay) stop() {
	if r.upstream == nil {
		r.sendError("no active session")
		return
	}
	sessionID := r.sessionID

	r.turn.arm()
	err := r.upstream.Send(realtime.CommitAudio())
	if err == nil {
		err = r.upstream.Send(realtime.CreateResponse())
	}
	if err != nil {
		r.logger.WithError(err).Warn("failed to request realtime response")
		r.sendError("failed to finish audio turn")
	} else {
		timeout := r.handler.realtime.ResponseTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		select {
		case <-r.turn.finished:
		case <-r.pumpDone:
		case <-time.After(timeout):
			r.logger.WithField("session_id", sessionID).Warn("realtime response timed out")
		}
	}

	r.release()
	r.send(OutboundMessage{Type: SessionStopped, SessionID: sessionID})
}

// release closes the upstream session, if any, and waits for its pump.
func (r *relay) release() {
	if r.upstream == nil {
		return
	}
	if err := r.upstream.Close(); err != nil {
		r.logger.WithError(err).Debug("failed to close realtime session")
	}
	<-r.pumpDone

	evt := metric_events.NewAudioSessionEvent()
	evt.UserID = r.userID
	evt.SessionID = r.sessionID
	evt.MessageCount = r.chunks
	evt.EndTimestamp = time.Now().Unix()
	evt.Latency = time.Since(r.startedAt).Milliseconds()
	if r.handler.auditor != nil {
		r.handler.auditor.Process(evt)
	}

	r.logger.WithFields(logrus.Fields{
		"session_id": r.sessionID,
		"chunks":     r.chunks,
	}).Info("audio session released")
	r.upstream = nil
	r.sessionID = ""
}

func (r *relay) pump(up realtime.Session, current *turn, done chan<- struct{}) {
	defer close(done)
	var transcript strings.Builder
	for {
		evt, err := up.Receive()
		if err != nil {
			if !errors.Is(err, realtime.ErrSessionClosed) {
				r.logger.WithError(err).Warn("realtime connection lost")
				r.sendError("realtime connection lost")
			}
			return
		}
		switch evt.Kind {
		case realtime.KindAudio:
			r.send(OutboundMessage{Type: AIAudioStream, Audio: evt.Payload})
		case realtime.KindText:
			transcript.WriteString(evt.Payload)
			r.send(OutboundMessage{Type: AIAudioStream, Text: evt.Payload})
		case realtime.KindToolCall:
			r.logger.WithFields(logrus.Fields{
				"tool":      evt.Name,
				"arguments": evt.Payload,
			}).Info("realtime tool call ignored")
		case realtime.KindCreated:
			current.created(evt.ResponseID)
		case realtime.KindDone:
			r.send(OutboundMessage{Type: AIAudioResponse, Transcript: transcript.String()})
			transcript.Reset()
			current.done(evt.ResponseID)
		case realtime.KindError:
			r.sendError(evt.Payload)
		}
	}
}

func (r *relay) sendError(message string) {
	r.send(OutboundMessage{Type: ErrorMessage, Message: message})
}

func (r *relay) send(msg OutboundMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		r.logger.WithError(err).Error("failed to encode audio message")
		return
	}
	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	if err := r.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		r.logger.WithError(err).Debug("failed to write to audio client")
	}
}
