package metric_events

import (
	"time"

	"github.com/google/uuid"
)

const (
	AnalysisType     = "analysis"
	ChatReportType   = "chat_report"
	PolicyCheckType  = "policy_check"
	AudioSessionType = "audio_session"
)

type Event struct {
	TraceID        string `json:"trace_id"`
	Type           string `json:"type"`
	Task           string `json:"task"`
	UserID         string `json:"user_id,omitempty"`
	RoomID         string `json:"room_id,omitempty"`
	SessionID      string `json:"session_id,omitempty"`
	Input          string `json:"input,omitempty"`
	StartTimestamp int64  `json:"start_timestamp"`
	EndTimestamp   int64  `json:"end_timestamp"`
	Latency        int64  `json:"latency"`
	Error          string `json:"error,omitempty"`

	// Analysis params
	RiskLevel      string          `json:"risk_level,omitempty"`
	Confidence     float64         `json:"confidence,omitempty"`
	DetectedIssues []string        `json:"detected_issues,omitempty"`
	Sources        []SourceOutcome `json:"sources,omitempty"`

	// Report params
	MessageCount int `json:"message_count,omitempty"`

	// Client params
	IP      string `json:"user_ip,omitempty"`
	Locale  string `json:"locale,omitempty"`
	Device  string `json:"device,omitempty"`
	Os      string `json:"os,omitempty"`
	Browser string `json:"browser,omitempty"`

	Params map[string]string `json:"params,omitempty"`
}

// SourceOutcome is how one analysis source fared for a message.
type SourceOutcome struct {
	Name      string `json:"name"`
	Risk      string `json:"risk,omitempty"`
	Failed    bool   `json:"failed"`
	Error     string `json:"error,omitempty"`
	LatencyMs int64  `json:"latency_ms"`
}

func newEvent(eventType, task string) *Event {
	return &Event{
		TraceID:        uuid.New().String(),
		Type:           eventType,
		Task:           task,
		StartTimestamp: time.Now().Unix(),
	}
}

func NewAnalysisEvent() *Event {
	return newEvent(AnalysisType, "message")
}

func NewChatReportEvent() *Event {
	return newEvent(ChatReportType, "chat")
}

func NewPolicyCheckEvent() *Event {
	return newEvent(PolicyCheckType, "message")
}

func NewAudioSessionEvent() *Event {
	return newEvent(AudioSessionType, "audio")
}
