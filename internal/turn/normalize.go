package turn

import (
	"strconv"
	"strings"

	"github.com/whitehorse-dev/sarvam-auto-talker/internal/ports"
)

// Provider payloads change shape between operation modes, so every scalar we
// need is looked up through an ordered list of candidate paths, most likely
// first. A numeric path element indexes into an array.
type fieldPath []string

var transcriptPaths = []fieldPath{
	{"transcript"},
	{"text"},
	{"result", "transcript"},
	{"result", "text"},
	{"results", "0", "transcript"},
	{"results", "0", "text"},
}

var translationPaths = []fieldPath{
	{"translated_text"},
	{"translation"},
	{"output"},
	{"result", "translated_text"},
	{"result", "translation"},
}

var audioBase64Paths = []fieldPath{
	{"audio", "base64"},
	{"audio_base64"},
	{"audios", "0", "audio_base64"},
	{"result", "audio_base64"},
}

var audioURLPaths = []fieldPath{
	{"audio", "url"},
	{"audio_url"},
	{"audios", "0", "url"},
	{"result", "audio_url"},
}

var audioMimePaths = []fieldPath{
	{"audio", "mime_type"},
	{"mime_type"},
	{"audios", "0", "mime_type"},
}

const fallbackAudioMime = "audio/wav"

func lookupString(payload ports.Payload, path fieldPath) (string, bool) {
	var cur any = payload
	for _, key := range path {
		switch node := cur.(type) {
		case map[string]any:
			cur = node[key]
		case []any:
			idx, err := strconv.Atoi(key)
			if err != nil || idx < 0 || idx >= len(node) {
				return "", false
			}
			cur = node[idx]
		default:
			return "", false
		}
	}

	s, ok := cur.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, true
}

// firstString returns the first candidate path that resolves to a non-empty
// trimmed string, or "" when none does.
func firstString(payload ports.Payload, paths []fieldPath) string {
	for _, path := range paths {
		if s, ok := lookupString(payload, path); ok {
			return s
		}
	}
	return ""
}

func ExtractTranscript(payload ports.Payload) string {
	return firstString(payload, transcriptPaths)
}

func ExtractTranslation(payload ports.Payload) string {
	return firstString(payload, translationPaths)
}

// NormalizeAudio pulls the synthesized audio out of a TTS payload. Base64 and
// URL stay nil when absent so callers can tell "no audio" from empty data;
// the mime type falls back to audio/wav.
func NormalizeAudio(payload ports.Payload) ports.AudioOut {
	out := ports.AudioOut{MimeType: fallbackAudioMime}

	if mime := firstString(payload, audioMimePaths); mime != "" {
		out.MimeType = mime
	}
	if b64 := firstString(payload, audioBase64Paths); b64 != "" {
		out.Base64 = &b64
	}
	if url := firstString(payload, audioURLPaths); url != "" {
		out.URL = &url
	}
	return out
}
