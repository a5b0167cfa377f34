package sarvam

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/whitehorse-dev/sarvam-auto-talker/internal/ports"
)

// Transcribe sends the recorded utterance to /speech-to-text as multipart
// form data: model, mode, then the audio file with its original mime type.
func (c *Client) Transcribe(ctx context.Context, audio []byte, filename, mimeType, model, mode string) (ports.Payload, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	if err := form.WriteField("model", model); err != nil {
		return nil, fmt.Errorf("build stt form: %w", err)
	}
	if err := form.WriteField("mode", mode); err != nil {
		return nil, fmt.Errorf("build stt form: %w", err)
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, escapeQuotes(filename)))
	header.Set("Content-Type", mimeType)

	part, err := form.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("build stt form: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return nil, fmt.Errorf("build stt form: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("build stt form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/speech-to-text", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	return c.do(req, "/speech-to-text")
}

func escapeQuotes(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
