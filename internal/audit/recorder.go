package audit

import (
	"go.uber.org/zap"

	"github.com/whitehorse-dev/sarvam-auto-talker/internal/ports"
)

// ZapRecorder writes one structured line per processed turn. zap never blocks
// on its sampler path, so recording cannot stall the pipeline.
type ZapRecorder struct {
	log *zap.Logger
}

func NewZapRecorder(log *zap.Logger) *ZapRecorder {
	return &ZapRecorder{log: log}
}

func (r *ZapRecorder) RecordTurn(a ports.TurnAudit) {
	r.log.Info("turn_processed",
		zap.String("request_id", a.RequestID),
		zap.String("session_id", a.SessionID),
		zap.String("speaker_role", a.SpeakerRole),
		zap.String("source_language", a.SourceLanguage),
		zap.String("target_language", a.TargetLanguage),
		zap.Int64("latency_stt_ms", a.Latency.STT),
		zap.Int64("latency_translate_ms", a.Latency.Translate),
		zap.Int64("latency_tts_ms", a.Latency.TTS),
		zap.Int64("latency_total_ms", a.Latency.Total),
	)
}
