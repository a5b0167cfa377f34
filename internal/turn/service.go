package turn

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"time"

	"github.com/whitehorse-dev/sarvam-auto-talker/internal/config"
	"github.com/whitehorse-dev/sarvam-auto-talker/internal/ports"
)

const (
	sttModel = "saaras:v3"
	sttMode  = "transcribe"
)

var defaultRetry = RetryPolicy{
	MaxAttempts: 2,
	BaseDelay:   350 * time.Millisecond,
}

// Service runs one turn: resolve the speaker's language pair, then
// transcribe → translate → synthesize, strictly in that order because each
// stage consumes the previous stage's output. All collaborators are
// stateless, so independent turns may run concurrently.
type Service struct {
	roles      RoleResolver
	stt        ports.SpeechToText
	translator ports.Translator
	tts        ports.SpeechSynthesizer
	recorder   ports.TurnRecorder
	store      ports.AudioStore // optional, nil disables upload
	retry      RetryPolicy
}

func NewService(
	cfg config.Config,
	stt ports.SpeechToText,
	translator ports.Translator,
	tts ports.SpeechSynthesizer,
	recorder ports.TurnRecorder,
	store ports.AudioStore,
) *Service {
	return &Service{
		roles:      NewRoleResolver(cfg),
		stt:        stt,
		translator: translator,
		tts:        tts,
		recorder:   recorder,
		store:      store,
		retry:      defaultRetry,
	}
}

func (s *Service) ProcessTurn(ctx context.Context, req ports.TurnRequest) (*ports.TurnResult, error) {
	pair, err := s.roles.Resolve(req.SpeakerRole)
	if err != nil {
		return nil, err
	}

	var latency ports.Latency
	startTotal := time.Now()

	startSTT := time.Now()
	sttPayload, err := Do(ctx, s.retry, func(ctx context.Context) (ports.Payload, error) {
		return s.stt.Transcribe(ctx, req.Audio, req.Filename, req.MimeType, sttModel, sttMode)
	})
	latency.STT = msSince(startSTT)
	if err != nil {
		return nil, stageFailed("speech-to-text", err)
	}

	transcript := ExtractTranscript(sttPayload)
	if transcript == "" {
		// The call itself succeeded; retrying would return the same shape.
		return nil, extractionFailed("could not extract transcript from STT response", "stt_payload", sttPayload)
	}

	startTranslate := time.Now()
	translatePayload, err := Do(ctx, s.retry, func(ctx context.Context) (ports.Payload, error) {
		return s.translator.Translate(ctx, transcript, pair.Source, pair.Target, "")
	})
	latency.Translate = msSince(startTranslate)
	if err != nil {
		return nil, stageFailed("translate", err)
	}

	translation := ExtractTranslation(translatePayload)
	if translation == "" {
		return nil, extractionFailed("could not extract translation from translate response", "translate_payload", translatePayload)
	}

	startTTS := time.Now()
	ttsPayload, err := Do(ctx, s.retry, func(ctx context.Context) (ports.Payload, error) {
		return s.tts.Synthesize(ctx, translation, pair.Target, "")
	})
	latency.TTS = msSince(startTTS)
	if err != nil {
		return nil, stageFailed("text-to-speech", err)
	}

	// No usable audio in the payload is not a failure: the transcript and
	// translation still make a complete turn and the client falls back to
	// its own synthesis.
	audio := NormalizeAudio(ttsPayload)
	s.uploadAudio(ctx, req, &audio)

	latency.Total = msSince(startTotal)

	if s.recorder != nil {
		s.recorder.RecordTurn(ports.TurnAudit{
			RequestID:      req.RequestID,
			SessionID:      req.SessionID,
			SpeakerRole:    req.SpeakerRole,
			SourceLanguage: pair.Source,
			TargetLanguage: pair.Target,
			Latency:        latency,
		})
	}

	return &ports.TurnResult{
		SpeakerRole:    req.SpeakerRole,
		SourceLanguage: pair.Source,
		TargetLanguage: pair.Target,
		Transcript:     transcript,
		Translation:    translation,
		Audio:          audio,
		Latency:        latency,
		Provider: ports.ProviderPayloads{
			STT:       sttPayload,
			Translate: translatePayload,
			TTS:       ttsPayload,
		},
	}, nil
}

// uploadAudio pushes inline base64 audio to the artifact store so the client
// can stream it by URL. Upload problems only cost us the URL, never the turn.
func (s *Service) uploadAudio(ctx context.Context, req ports.TurnRequest, audio *ports.AudioOut) {
	if s.store == nil || audio.URL != nil || audio.Base64 == nil {
		return
	}

	data, err := base64.StdEncoding.DecodeString(*audio.Base64)
	if err != nil {
		log.Printf("[turn] audio payload is not valid base64: %v", err)
		return
	}

	key := fmt.Sprintf("turns/%s/%s.wav", time.Now().Format("2006-01-02"), req.RequestID)
	url, err := s.store.SaveAudio(ctx, key, data, audio.MimeType)
	if err != nil {
		log.Printf("[turn] audio upload failed: %v", err)
		return
	}
	audio.URL = &url
}

func msSince(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}
