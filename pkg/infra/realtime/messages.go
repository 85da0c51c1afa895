package realtime

type sessionUpdate struct {
	Type    string         `json:"type"`
	Session sessionOptions `json:"session"`
}

// sessionOptions always sends turn_detection as null: the relay commits the
// buffer and requests each response itself.
type sessionOptions struct {
	Modalities    []string       `json:"modalities"`
	Instructions  string         `json:"instructions,omitempty"`
	Voice         string         `json:"voice,omitempty"`
	InputFormat   string         `json:"input_audio_format"`
	OutputFormat  string         `json:"output_audio_format"`
	TurnDetection *turnDetection `json:"turn_detection"`
}

type turnDetection struct {
	Type string `json:"type"`
}

type audioAppend struct {
	Type  string `json:"type"`
	Audio string `json:"audio"`
}

type typed struct {
	Type string `json:"type"`
}

func SessionUpdate(voice, instructions string) interface{} {
	return sessionUpdate{
		Type: "session.update",
		Session: sessionOptions{
			Modalities:   []string{"text", "audio"},
			Instructions: instructions,
			Voice:        voice,
			InputFormat:  "pcm16",
			OutputFormat: "pcm16",
		},
	}
}

func AppendAudio(b64 string) interface{} {
	return audioAppend{Type: "input_audio_buffer.append", Audio: b64}
}

func CommitAudio() interface{} {
	return typed{Type: "input_audio_buffer.commit"}
}

func CreateResponse() interface{} {
	return typed{Type: "response.create"}
}
