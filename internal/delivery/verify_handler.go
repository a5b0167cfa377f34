package delivery

import (
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/whitehorse-dev/sarvam-auto-talker/internal/config"
	"github.com/whitehorse-dev/sarvam-auto-talker/internal/ports"
)

// VerifyHandler exposes each provider operation as a single direct call, for
// checking credentials and language codes without running a whole turn.
type VerifyHandler struct {
	stt        ports.SpeechToText
	translator ports.Translator
	tts        ports.SpeechSynthesizer

	defaultHindi   string
	defaultEnglish string
}

func NewVerifyHandler(cfg config.Config, stt ports.SpeechToText, translator ports.Translator, tts ports.SpeechSynthesizer) *VerifyHandler {
	return &VerifyHandler{
		stt:            stt,
		translator:     translator,
		tts:            tts,
		defaultHindi:   cfg.DefaultHindiLang,
		defaultEnglish: cfg.DefaultEnglishLang,
	}
}

type verifyResponse struct {
	OK   bool          `json:"ok"`
	Data ports.Payload `json:"data"`
}

func (h *VerifyHandler) VerifySTT(w http.ResponseWriter, r *http.Request) {
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

	audio, err := readAudio(file)
	if err != nil {
		writeError(w, err)
		return
	}

	model := formOr(r, "model", "saaras:v3")
	mode := formOr(r, "mode", "transcribe")

	filename := header.Filename
	if filename == "" {
		filename = "audio.wav"
	}
	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "audio/wav"
	}

	data, err := h.stt.Transcribe(r.Context(), audio, filename, mimeType, model, mode)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, verifyResponse{OK: true, Data: data})
}

func (h *VerifyHandler) VerifyTranslate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Input              string `json:"input"`
		SourceLanguageCode string `json:"source_language_code"`
		TargetLanguageCode string `json:"target_language_code"`
		SpeakerGender      string `json:"speaker_gender"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, invalidInputError("invalid json: "+err.Error()))
		return
	}

	input := strings.TrimSpace(req.Input)
	if input == "" {
		writeError(w, invalidInputError("missing body field 'input'"))
		return
	}

	source := req.SourceLanguageCode
	if source == "" {
		source = "auto"
	}
	target := req.TargetLanguageCode
	if target == "" {
		target = h.defaultEnglish
	}

	data, err := h.translator.Translate(r.Context(), input, source, target, req.SpeakerGender)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, verifyResponse{OK: true, Data: data})
}

func (h *VerifyHandler) VerifyTTS(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text               string `json:"text"`
		TargetLanguageCode string `json:"target_language_code"`
		Speaker            string `json:"speaker"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, invalidInputError("invalid json: "+err.Error()))
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		writeError(w, invalidInputError("missing body field 'text'"))
		return
	}

	target := req.TargetLanguageCode
	if target == "" {
		target = h.defaultHindi
	}

	data, err := h.tts.Synthesize(r.Context(), text, target, req.Speaker)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, verifyResponse{OK: true, Data: data})
}

func formOr(r *http.Request, field, fallback string) string {
	if v := strings.TrimSpace(r.FormValue(field)); v != "" {
		return v
	}
	return fallback
}
