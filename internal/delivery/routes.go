package delivery

import (
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

func RegisterRoutes(
	r chi.Router,
	hTurn *TurnHandler,
	hVerify *VerifyHandler,
) {
	r.With(httputil.RecoverMiddleware).
		Get("/health", Health)

	r.Route("/api", func(api chi.Router) {
		api.Use(
			httputil.RecoverMiddleware,
			RequestIDMiddleware,
			httprate.LimitByIP(30, time.Minute),
		)

		// --- turn pipeline ---
		api.Post("/turn", hTurn.ProcessTurn)

		// --- provider probes ---
		api.Post("/verify/stt", hVerify.VerifySTT)
		api.Post("/verify/translate", hVerify.VerifyTranslate)
		api.Post("/verify/tts", hVerify.VerifyTTS)
	})
}
