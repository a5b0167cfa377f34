package main

import (
	"log"
	"net/http"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/Vovarama1992/go-utils/logger"

	"github.com/whitehorse-dev/sarvam-auto-talker/internal/alerts"
	"github.com/whitehorse-dev/sarvam-auto-talker/internal/audit"
	"github.com/whitehorse-dev/sarvam-auto-talker/internal/config"
	"github.com/whitehorse-dev/sarvam-auto-talker/internal/delivery"
	"github.com/whitehorse-dev/sarvam-auto-talker/internal/infra"
	"github.com/whitehorse-dev/sarvam-auto-talker/internal/ports"
	"github.com/whitehorse-dev/sarvam-auto-talker/internal/sarvam"
	"github.com/whitehorse-dev/sarvam-auto-talker/internal/turn"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {

	// =========================================================================
	// ENV / CONFIG
	// =========================================================================

	_ = godotenv.Load()

	cfg := config.Load()

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	// =========================================================================
	// INFRASTRUCTURE
	// =========================================================================

	sarvamClient := sarvam.NewClient(cfg)
	recorder := audit.NewZapRecorder(baseLogger)

	var store ports.AudioStore
	if cfg.S3.Enabled() {
		s3Store, err := infra.NewS3Store(cfg)
		if err != nil {
			log.Fatalf("failed to init s3: %v", err)
		}
		store = s3Store
	}

	var notifier ports.Notifier
	if cfg.Alerts.Enabled() {
		tg, err := alerts.NewTelegramNotifier(cfg)
		if err != nil {
			log.Printf("[alerts] disabled: %v", err)
		} else {
			notifier = tg
		}
	}

	// =========================================================================
	// DOMAIN SERVICES
	// =========================================================================

	turnService := turn.NewService(
		cfg,
		sarvamClient, // STT
		sarvamClient, // translate
		sarvamClient, // TTS
		recorder,
		store,
	)

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
	}))

	// HANDLERS
	turnHandler := delivery.NewTurnHandler(turnService, notifier, zl)
	verifyHandler := delivery.NewVerifyHandler(cfg, sarvamClient, sarvamClient, sarvamClient)

	// ROUTES
	delivery.RegisterRoutes(r, turnHandler, verifyHandler)

	r.With(httputil.RecoverMiddleware).Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(200)
		w.Write([]byte("pong"))
	})

	// =========================================================================
	// START SERVER
	// =========================================================================

	addr := ":" + cfg.Port
	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + addr,
		Service: "sarvam-auto-talker",
	})

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
