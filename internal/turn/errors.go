package turn

import (
	"errors"
	"fmt"

	"github.com/whitehorse-dev/sarvam-auto-talker/internal/ports"
)

// Error is a classified turn failure. Status is the HTTP status the delivery
// layer should answer with; Details carries raw provider payloads so a failed
// turn can be diagnosed without re-running it.
type Error struct {
	Status  int
	Message string
	Details map[string]any
}

func (e *Error) Error() string { return e.Message }

func invalidInput(msg string) *Error {
	return &Error{Status: 400, Message: msg}
}

func extractionFailed(msg, payloadKey string, payload ports.Payload) *Error {
	return &Error{
		Status:  502,
		Message: msg,
		Details: map[string]any{payloadKey: payload},
	}
}

// statusCarrier is satisfied by provider errors that saw an HTTP response.
type statusCarrier interface {
	HTTPStatus() int
}

type payloadCarrier interface {
	ProviderPayload() ports.Payload
}

// httpStatus returns the provider status carried by err, or 0 when the call
// failed before any response (network error, timeout, decode failure).
func httpStatus(err error) int {
	var sc statusCarrier
	if errors.As(err, &sc) {
		return sc.HTTPStatus()
	}
	return 0
}

// stageFailed wraps a provider error that survived the retry budget. The
// provider status passes through when present; calls that never got a
// response answer as a plain 500 upstream failure.
func stageFailed(stage string, err error) *Error {
	status := httpStatus(err)
	if status == 0 {
		status = 500
	}

	out := &Error{
		Status:  status,
		Message: fmt.Sprintf("%s request failed: %v", stage, err),
	}

	// The provider body goes out as-is so the error response carries it at
	// one level, same as a direct upstream response would.
	var pc payloadCarrier
	if errors.As(err, &pc) {
		if payload := pc.ProviderPayload(); payload != nil {
			out.Details = payload
		}
	}
	return out
}
