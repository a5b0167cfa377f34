package turn

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/whitehorse-dev/sarvam-auto-talker/internal/ports"
)

type fakeSTT struct {
	calls   int
	payload ports.Payload
	err     error
}

func (f *fakeSTT) Transcribe(_ context.Context, _ []byte, _, _, _, _ string) (ports.Payload, error) {
	f.calls++
	return f.payload, f.err
}

type fakeTranslator struct {
	calls   int
	input   string
	source  string
	target  string
	payload ports.Payload
	err     error
}

func (f *fakeTranslator) Translate(_ context.Context, input, sourceLang, targetLang, _ string) (ports.Payload, error) {
	f.calls++
	f.input, f.source, f.target = input, sourceLang, targetLang
	return f.payload, f.err
}

type fakeTTS struct {
	calls   int
	text    string
	target  string
	payload ports.Payload
	err     error
}

func (f *fakeTTS) Synthesize(_ context.Context, text, targetLang, _ string) (ports.Payload, error) {
	f.calls++
	f.text, f.target = text, targetLang
	return f.payload, f.err
}

type fakeRecorder struct {
	audits []ports.TurnAudit
}

func (f *fakeRecorder) RecordTurn(a ports.TurnAudit) {
	f.audits = append(f.audits, a)
}

type fakeStore struct {
	key  string
	data []byte
	url  string
	err  error
}

func (f *fakeStore) SaveAudio(_ context.Context, key string, data []byte, _ string) (string, error) {
	f.key, f.data = key, data
	return f.url, f.err
}

func turnRequest() ports.TurnRequest {
	return ports.TurnRequest{
		Audio:       []byte("riff"),
		Filename:    "utterance.wav",
		MimeType:    "audio/wav",
		SpeakerRole: "A",
		SessionID:   "s-1",
		RequestID:   "r-1",
	}
}

func newTestService(stt *fakeSTT, tr *fakeTranslator, tts *fakeTTS, rec ports.TurnRecorder, store ports.AudioStore) *Service {
	svc := NewService(testConfig(), stt, tr, tts, rec, store)
	svc.retry = RetryPolicy{MaxAttempts: 2, BaseDelay: time.Millisecond}
	return svc
}

func TestProcessTurnHappyPath(t *testing.T) {
	stt := &fakeSTT{payload: ports.Payload{"transcript": "नमस्ते"}}
	tr := &fakeTranslator{payload: ports.Payload{"translated_text": "Hello"}}
	tts := &fakeTTS{payload: ports.Payload{"audio_base64": "AAAA", "mime_type": "audio/wav"}}
	rec := &fakeRecorder{}

	svc := newTestService(stt, tr, tts, rec, nil)

	res, err := svc.ProcessTurn(context.Background(), turnRequest())
	if err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}

	if res.Transcript != "नमस्ते" || res.Translation != "Hello" {
		t.Fatalf("got transcript=%q translation=%q", res.Transcript, res.Translation)
	}
	if res.SourceLanguage != "hi-IN" || res.TargetLanguage != "en-IN" {
		t.Fatalf("got languages %s → %s, want hi-IN → en-IN", res.SourceLanguage, res.TargetLanguage)
	}
	if res.Audio.MimeType != "audio/wav" || res.Audio.Base64 == nil || *res.Audio.Base64 != "AAAA" || res.Audio.URL != nil {
		t.Fatalf("got audio %+v", res.Audio)
	}

	if tr.input != "नमस्ते" || tr.source != "hi-IN" || tr.target != "en-IN" {
		t.Fatalf("translate called with %q %s→%s", tr.input, tr.source, tr.target)
	}
	if tts.text != "Hello" || tts.target != "en-IN" {
		t.Fatalf("synthesize called with %q in %s", tts.text, tts.target)
	}

	if res.Latency.STT < 0 || res.Latency.Translate < 0 || res.Latency.TTS < 0 || res.Latency.Total < 0 {
		t.Fatalf("negative latency: %+v", res.Latency)
	}

	if len(rec.audits) != 1 {
		t.Fatalf("recorded %d audits, want 1", len(rec.audits))
	}
	audit := rec.audits[0]
	if audit.RequestID != "r-1" || audit.SessionID != "s-1" || audit.SpeakerRole != "A" {
		t.Fatalf("audit = %+v", audit)
	}
}

func TestProcessTurnInvalidRoleSkipsProviders(t *testing.T) {
	stt := &fakeSTT{payload: ports.Payload{"transcript": "x"}}
	tr := &fakeTranslator{}
	tts := &fakeTTS{}

	svc := newTestService(stt, tr, tts, nil, nil)

	req := turnRequest()
	req.SpeakerRole = "C"

	_, err := svc.ProcessTurn(context.Background(), req)

	var te *Error
	if !errors.As(err, &te) || te.Status != 400 {
		t.Fatalf("ProcessTurn = %v, want 400 turn error", err)
	}
	if stt.calls+tr.calls+tts.calls != 0 {
		t.Fatalf("providers were called (%d/%d/%d), want none", stt.calls, tr.calls, tts.calls)
	}
}

func TestProcessTurnTranscriptExtractionFails(t *testing.T) {
	stt := &fakeSTT{payload: ports.Payload{}}
	tr := &fakeTranslator{payload: ports.Payload{"translated_text": "x"}}
	tts := &fakeTTS{payload: ports.Payload{}}

	svc := newTestService(stt, tr, tts, nil, nil)

	_, err := svc.ProcessTurn(context.Background(), turnRequest())

	var te *Error
	if !errors.As(err, &te) || te.Status != 502 {
		t.Fatalf("ProcessTurn = %v, want 502 turn error", err)
	}
	if _, ok := te.Details["stt_payload"]; !ok {
		t.Fatalf("details = %v, want raw stt payload", te.Details)
	}
	if tr.calls != 0 || tts.calls != 0 {
		t.Fatalf("later stages called (%d/%d), want none", tr.calls, tts.calls)
	}
}

func TestProcessTurnTranslationExtractionFails(t *testing.T) {
	stt := &fakeSTT{payload: ports.Payload{"transcript": "hi"}}
	tr := &fakeTranslator{payload: ports.Payload{"detail": "nothing here"}}
	tts := &fakeTTS{}

	svc := newTestService(stt, tr, tts, nil, nil)

	_, err := svc.ProcessTurn(context.Background(), turnRequest())

	var te *Error
	if !errors.As(err, &te) || te.Status != 502 {
		t.Fatalf("ProcessTurn = %v, want 502 turn error", err)
	}
	if _, ok := te.Details["translate_payload"]; !ok {
		t.Fatalf("details = %v, want raw translate payload", te.Details)
	}
	if tts.calls != 0 {
		t.Fatalf("synthesize called %d times, want 0", tts.calls)
	}
}

func TestProcessTurnProviderStatusPassesThrough(t *testing.T) {
	stt := &fakeSTT{payload: ports.Payload{"transcript": "hi"}}
	tr := &fakeTranslator{err: &statusErr{status: 429}}
	tts := &fakeTTS{}

	svc := newTestService(stt, tr, tts, nil, nil)

	_, err := svc.ProcessTurn(context.Background(), turnRequest())

	var te *Error
	if !errors.As(err, &te) || te.Status != 429 {
		t.Fatalf("ProcessTurn = %v, want 429 turn error", err)
	}
	// 429 is retryable, so translate burned its whole budget.
	if tr.calls != 2 {
		t.Fatalf("translate called %d times, want 2", tr.calls)
	}
}

type providerErr struct {
	status  int
	payload ports.Payload
}

func (e *providerErr) Error() string                  { return "provider failed" }
func (e *providerErr) HTTPStatus() int                { return e.status }
func (e *providerErr) ProviderPayload() ports.Payload { return e.payload }

func TestProcessTurnProviderDiagnosticsStaySingleLevel(t *testing.T) {
	stt := &fakeSTT{err: &providerErr{
		status:  400,
		payload: ports.Payload{"error": map[string]any{"message": "unsupported audio codec"}},
	}}

	svc := newTestService(stt, &fakeTranslator{}, &fakeTTS{}, nil, nil)

	_, err := svc.ProcessTurn(context.Background(), turnRequest())

	var te *Error
	if !errors.As(err, &te) || te.Status != 400 {
		t.Fatalf("ProcessTurn = %v, want 400 turn error", err)
	}
	// The provider body is the diagnostic itself, not wrapped in another map.
	if _, nested := te.Details["provider"]; nested {
		t.Fatalf("details = %v, provider body was wrapped", te.Details)
	}
	if te.Details["error"] == nil {
		t.Fatalf("details = %v, want provider body keys at top level", te.Details)
	}
}

func TestProcessTurnNoAudioStillSucceeds(t *testing.T) {
	stt := &fakeSTT{payload: ports.Payload{"transcript": "hi"}}
	tr := &fakeTranslator{payload: ports.Payload{"translated_text": "héllo"}}
	tts := &fakeTTS{payload: ports.Payload{"status": "queued"}}

	svc := newTestService(stt, tr, tts, nil, nil)

	res, err := svc.ProcessTurn(context.Background(), turnRequest())
	if err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}
	if res.Audio.Base64 != nil || res.Audio.URL != nil {
		t.Fatalf("audio = %+v, want empty descriptor", res.Audio)
	}
	if res.Audio.MimeType != "audio/wav" {
		t.Fatalf("mime = %q, want audio/wav fallback", res.Audio.MimeType)
	}
}

func TestProcessTurnUploadsAudioToStore(t *testing.T) {
	stt := &fakeSTT{payload: ports.Payload{"transcript": "hi"}}
	tr := &fakeTranslator{payload: ports.Payload{"translated_text": "hello"}}
	tts := &fakeTTS{payload: ports.Payload{"audio_base64": "QUJD"}} // "ABC"
	store := &fakeStore{url: "https://cdn.example/turns/r-1.wav"}

	svc := newTestService(stt, tr, tts, nil, store)

	res, err := svc.ProcessTurn(context.Background(), turnRequest())
	if err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}
	if res.Audio.URL == nil || *res.Audio.URL != store.url {
		t.Fatalf("audio url = %v, want %s", res.Audio.URL, store.url)
	}
	if string(store.data) != "ABC" {
		t.Fatalf("store got %q, want decoded ABC", store.data)
	}
}

func TestProcessTurnStoreFailureKeepsBase64(t *testing.T) {
	stt := &fakeSTT{payload: ports.Payload{"transcript": "hi"}}
	tr := &fakeTranslator{payload: ports.Payload{"translated_text": "hello"}}
	tts := &fakeTTS{payload: ports.Payload{"audio_base64": "QUJD"}}
	store := &fakeStore{err: errors.New("bucket gone")}

	svc := newTestService(stt, tr, tts, nil, store)

	res, err := svc.ProcessTurn(context.Background(), turnRequest())
	if err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}
	if res.Audio.URL != nil {
		t.Fatalf("audio url = %v, want nil after failed upload", *res.Audio.URL)
	}
	if res.Audio.Base64 == nil || *res.Audio.Base64 != "QUJD" {
		t.Fatalf("audio base64 = %v, want QUJD kept", res.Audio.Base64)
	}
}

func TestProcessTurnRetriesTransientSTTFailure(t *testing.T) {
	attempts := 0
	stt := &fakeSTT{}
	svc := newTestService(stt, &fakeTranslator{payload: ports.Payload{"translated_text": "ok"}}, &fakeTTS{payload: ports.Payload{}}, nil, nil)

	// First attempt 503, second succeeds.
	svc.stt = sttFunc(func() (ports.Payload, error) {
		attempts++
		if attempts == 1 {
			return nil, &statusErr{status: 503}
		}
		return ports.Payload{"transcript": "hi"}, nil
	})

	res, err := svc.ProcessTurn(context.Background(), turnRequest())
	if err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}
	if attempts != 2 {
		t.Fatalf("stt attempted %d times, want 2", attempts)
	}
	if res.Transcript != "hi" {
		t.Fatalf("transcript = %q", res.Transcript)
	}
}

type sttFunc func() (ports.Payload, error)

func (f sttFunc) Transcribe(_ context.Context, _ []byte, _, _, _, _ string) (ports.Payload, error) {
	return f()
}
