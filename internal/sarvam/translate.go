package sarvam

import (
	"context"

	"github.com/whitehorse-dev/sarvam-auto-talker/internal/ports"
)

func (c *Client) Translate(ctx context.Context, input, sourceLang, targetLang, speakerGender string) (ports.Payload, error) {
	if speakerGender == "" {
		speakerGender = "Male"
	}

	return c.postJSON(ctx, "/translate", map[string]any{
		"input":                input,
		"source_language_code": sourceLang,
		"target_language_code": targetLang,
		"speaker_gender":       speakerGender,
	})
}
