package delivery

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/whitehorse-dev/sarvam-auto-talker/internal/sarvam"
	"github.com/whitehorse-dev/sarvam-auto-talker/internal/turn"
)

type errorResponse struct {
	OK       bool   `json:"ok"`
	Error    string `json:"error"`
	Provider any    `json:"provider"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// classify maps a pipeline or provider error to the HTTP status to answer
// with, plus any provider diagnostics worth returning to the caller.
func classify(err error) (int, any) {
	var te *turn.Error
	if errors.As(err, &te) {
		var provider any
		if te.Details != nil {
			provider = te.Details
		}
		return te.Status, provider
	}

	var ae *sarvam.APIError
	if errors.As(err, &ae) {
		var provider any
		if ae.Payload != nil {
			provider = ae.Payload
		}
		return ae.Status, provider
	}

	return http.StatusInternalServerError, nil
}

func invalidInputError(msg string) error {
	return &turn.Error{Status: http.StatusBadRequest, Message: msg}
}

func writeError(w http.ResponseWriter, err error) int {
	status, provider := classify(err)
	writeJSON(w, status, errorResponse{OK: false, Error: err.Error(), Provider: provider})
	return status
}
