package ports

import "context"

// AudioStore uploads synthesized audio and returns a public URL.
type AudioStore interface {
	SaveAudio(ctx context.Context, key string, data []byte, contentType string) (publicURL string, err error)
}
