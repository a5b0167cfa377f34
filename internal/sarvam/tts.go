package sarvam

import (
	"context"

	"github.com/whitehorse-dev/sarvam-auto-talker/internal/ports"
)

func (c *Client) Synthesize(ctx context.Context, text, targetLang, speaker string) (ports.Payload, error) {
	body := map[string]any{
		"text":                 text,
		"target_language_code": targetLang,
	}
	if speaker != "" {
		body["speaker"] = speaker
	}

	return c.postJSON(ctx, "/text-to-speech", body)
}
