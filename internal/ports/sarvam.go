package ports

import "context"

// Payload is a raw provider response body. Sarvam does not keep one schema
// across operation modes, so gateways hand the body over undecoded and the
// turn pipeline extracts what it needs.
type Payload = map[string]any

type SpeechToText interface {
	Transcribe(ctx context.Context, audio []byte, filename, mimeType, model, mode string) (Payload, error)
}

type Translator interface {
	Translate(ctx context.Context, input, sourceLang, targetLang, speakerGender string) (Payload, error)
}

type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text, targetLang, speaker string) (Payload, error)
}
