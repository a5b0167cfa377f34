package ports

type TurnAudit struct {
	RequestID      string
	SessionID      string
	SpeakerRole    string
	SourceLanguage string
	TargetLanguage string
	Latency        Latency
}

// TurnRecorder is the observability sink for processed turns. Implementations
// must return quickly and never fail the caller.
type TurnRecorder interface {
	RecordTurn(audit TurnAudit)
}
