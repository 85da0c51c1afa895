package realtime

import (
	"errors"
	"fmt"

	"github.com/valyala/fastjson"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindText
	KindAudio
	KindToolCall
	KindCreated
	KindDone
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindAudio:
		return "audio"
	case KindToolCall:
		return "tool_call"
	case KindCreated:
		return "created"
	case KindDone:
		return "done"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

var ErrMissingType = errors.New("realtime event has no type")

// Event is an upstream realtime message reduced to what the relay acts on.
// Payload holds the base64 audio delta, the text delta, the tool call
// arguments or the error message depending on Kind.
type Event struct {
	Kind       Kind
	Type       string
	Payload    string
	Name       string
	ResponseID string
}

var parserPool fastjson.ParserPool

// Normalize maps one upstream frame onto an Event. Frames with a type the
// relay does not handle come back as KindUnknown.
func Normalize(data []byte) (Event, error) {
	p := parserPool.Get()
	defer parserPool.Put(p)

	v, err := p.ParseBytes(data)
	if err != nil {
		return Event{}, fmt.Errorf("invalid realtime event: %w", err)
	}
	eventType := string(v.GetStringBytes("type"))
	if eventType == "" {
		return Event{}, ErrMissingType
	}

	evt := Event{Type: eventType}
	switch eventType {
	case "response.audio.delta":
		evt.Kind = KindAudio
		evt.Payload = string(v.GetStringBytes("delta"))
		evt.ResponseID = string(v.GetStringBytes("response_id"))
	case "response.audio_transcript.delta", "response.text.delta":
		evt.Kind = KindText
		evt.Payload = string(v.GetStringBytes("delta"))
		evt.ResponseID = string(v.GetStringBytes("response_id"))
	case "response.function_call_arguments.done":
		evt.Kind = KindToolCall
		evt.Name = string(v.GetStringBytes("name"))
		evt.Payload = string(v.GetStringBytes("arguments"))
		evt.ResponseID = string(v.GetStringBytes("response_id"))
	case "response.created":
		evt.Kind = KindCreated
		evt.ResponseID = string(v.GetStringBytes("response", "id"))
	case "response.done":
		evt.Kind = KindDone
		evt.ResponseID = string(v.GetStringBytes("response", "id"))
	case "error":
		evt.Kind = KindError
		evt.Payload = string(v.GetStringBytes("error", "message"))
		if evt.Payload == "" {
			evt.Payload = "upstream error"
		}
	default:
		evt.Kind = KindUnknown
	}
	return evt, nil
}
