package ports

import "context"

type TurnRequest struct {
	Audio       []byte
	Filename    string
	MimeType    string
	SpeakerRole string // "A" or "B", already trimmed and upper-cased
	SessionID   string
	RequestID   string
}

type LanguagePair struct {
	Source string
	Target string
}

// Latency holds per-stage wall-clock milliseconds for one turn.
type Latency struct {
	STT       int64 `json:"stt"`
	Translate int64 `json:"translate"`
	TTS       int64 `json:"tts"`
	Total     int64 `json:"total"`
}

// AudioOut distinguishes "no audio data" (nil) from empty strings.
type AudioOut struct {
	MimeType string  `json:"mime_type"`
	Base64   *string `json:"base64"`
	URL      *string `json:"url"`
}

type ProviderPayloads struct {
	STT       Payload
	Translate Payload
	TTS       Payload
}

type TurnResult struct {
	SpeakerRole    string
	SourceLanguage string
	TargetLanguage string
	Transcript     string
	Translation    string
	Audio          AudioOut
	Latency        Latency
	Provider       ProviderPayloads
}

type TurnService interface {
	ProcessTurn(ctx context.Context, req TurnRequest) (*TurnResult, error)
}
