package delivery

import (
	"net/http"
	"time"
)

type healthResponse struct {
	OK        bool   `json:"ok"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		OK:        true,
		Service:   "sarvam-auto-talker",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
