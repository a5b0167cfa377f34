package delivery

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/whitehorse-dev/sarvam-auto-talker/internal/ports"
)

const maxAudioBytes = 8 << 20

// readAudio reads one more byte than the limit allows so an oversized upload
// is rejected outright rather than clipped mid-utterance.
func readAudio(file io.Reader) ([]byte, error) {
	audio, err := io.ReadAll(io.LimitReader(file, maxAudioBytes+1))
	if err != nil {
		return nil, invalidInputError("failed to read audio: " + err.Error())
	}
	if len(audio) > maxAudioBytes {
		return nil, invalidInputError("audio file exceeds the 8MB limit")
	}
	return audio, nil
}

type TurnHandler struct {
	turns    ports.TurnService
	notifier ports.Notifier // optional
	log      *logger.ZapLogger
}

func NewTurnHandler(turns ports.TurnService, notifier ports.Notifier, log *logger.ZapLogger) *TurnHandler {
	return &TurnHandler{
		turns:    turns,
		notifier: notifier,
		log:      log,
	}
}

type turnResponse struct {
	OK             bool           `json:"ok"`
	SessionID      string         `json:"session_id"`
	SpeakerRole    string         `json:"speaker_role"`
	SourceLanguage string         `json:"source_language"`
	TargetLanguage string         `json:"target_language"`
	Transcript     string         `json:"transcript"`
	Translation    string         `json:"translation"`
	Audio          ports.AudioOut `json:"audio"`
	LatencyMs      ports.Latency  `json:"latency_ms"`
}

func (h *TurnHandler) ProcessTurn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxAudioBytes); err != nil {
		writeError(w, invalidInputError("invalid multipart body: "+err.Error()))
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		writeError(w, invalidInputError("missing file field 'audio'"))
		return
	}
	defer file.Close()

	sessionID := strings.TrimSpace(r.FormValue("session_id"))
	if sessionID == "" {
		writeError(w, invalidInputError("missing body field 'session_id'"))
		return
	}

	speakerRole := strings.ToUpper(strings.TrimSpace(r.FormValue("speaker_role")))

	audio, err := readAudio(file)
	if err != nil {
		writeError(w, err)
		return
	}

	filename := header.Filename
	if filename == "" {
		filename = "audio.wav"
	}
	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "audio/wav"
	}

	req := ports.TurnRequest{
		Audio:       audio,
		Filename:    filename,
		MimeType:    mimeType,
		SpeakerRole: speakerRole,
		SessionID:   sessionID,
		RequestID:   RequestIDFrom(r.Context()),
	}

	result, err := h.turns.ProcessTurn(r.Context(), req)
	if err != nil {
		status := writeError(w, err)
		h.log.Log(logger.LogEntry{
			Level:   "error",
			Message: fmt.Sprintf("turn failed request_id=%s status=%d: %v", req.RequestID, status, err),
			Service: "sarvam-auto-talker",
		})
		h.alert(req.RequestID, status, err)
		return
	}

	writeJSON(w, http.StatusOK, turnResponse{
		OK:             true,
		SessionID:      sessionID,
		SpeakerRole:    result.SpeakerRole,
		SourceLanguage: result.SourceLanguage,
		TargetLanguage: result.TargetLanguage,
		Transcript:     result.Transcript,
		Translation:    result.Translation,
		Audio:          result.Audio,
		LatencyMs:      result.Latency,
	})
}

// alert reports upstream failures to the admin channel. The request may be
// gone by the time Telegram answers, so it runs detached with its own budget.
func (h *TurnHandler) alert(requestID string, status int, err error) {
	if h.notifier == nil || status < 500 {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = h.notifier.Notify(ctx, err, fmt.Sprintf("request_id=%s status=%d", requestID, status))
	}()
}
