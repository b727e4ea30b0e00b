package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tu-usuario/backroom/internal/application/auth"
	"github.com/tu-usuario/backroom/internal/application/chat"
	"github.com/tu-usuario/backroom/internal/application/inventory"
	"github.com/tu-usuario/backroom/internal/application/ports"
	"github.com/tu-usuario/backroom/internal/application/support"
	"github.com/tu-usuario/backroom/internal/domain/repository"
	infraai "github.com/tu-usuario/backroom/internal/infrastructure/ai"
	infrapdf "github.com/tu-usuario/backroom/internal/infrastructure/pdf"
	"github.com/tu-usuario/backroom/internal/infrastructure/postgres"
	"github.com/tu-usuario/backroom/internal/infrastructure/redisstore"
	infrasheets "github.com/tu-usuario/backroom/internal/infrastructure/sheets"
	"github.com/tu-usuario/backroom/internal/infrastructure/whatsapp"
	httpRouter "github.com/tu-usuario/backroom/internal/interfaces/http"
	"github.com/tu-usuario/backroom/pkg/config"
	"github.com/tu-usuario/backroom/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Backend).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Ledger + auditoría + usuarios según backend configurado.
	var (
		ledgerRepo repository.LedgerRepository
		txRepo     repository.TransactionRepository
		userRepo   repository.UserRepository
	)
	switch cfg.Storage.Backend {
	case "sheets":
		svc, err := infrasheets.NewService(ctx, cfg.Sheets.CredentialsFile)
		if err != nil {
			log.Fatal().Err(err).Msg("cliente de Google Sheets")
		}
		if err := infrasheets.EnsureLayout(ctx, svc, cfg.Sheets.SpreadsheetID); err != nil {
			log.Fatal().Err(err).Msg("inicializar spreadsheet")
		}
		ledgerRepo = infrasheets.NewLedgerRepo(svc, cfg.Sheets.SpreadsheetID)
		txRepo = infrasheets.NewTransactionRepo(svc, cfg.Sheets.SpreadsheetID)
		// Sheets no guarda usuarios: el dashboard sigue usando PostgreSQL.
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL (usuarios)")
		}
		defer pool.Close()
		userRepo = postgres.NewUserRepo(pool)
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		ledgerRepo = postgres.NewLedgerRepo(pool)
		txRepo = postgres.NewTransactionRepo(pool)
		userRepo = postgres.NewUserRepo(pool)
	}

	// OTP + dedup de webhooks: Redis en producción, memoria en desarrollo.
	var (
		otpStore ports.OTPStore
		deduper  ports.Deduper
	)
	if cfg.Redis.URL != "" {
		store, err := redisstore.NewStore(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer store.Close()
		otpStore, deduper = store, store
	} else {
		log.Warn().Msg("REDIS_URL vacío: OTP y dedup en memoria (solo desarrollo)")
		mem := redisstore.NewMemoryStore()
		otpStore, deduper = mem, mem
	}

	// IA: NLU y soporte (mismo adaptador Gemini), transcripción Whisper.
	gemini := infraai.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)
	var nlu ports.IntentParser
	if cfg.Gemini.APIKey != "" {
		nlu = gemini
	} else {
		log.Warn().Msg("GEMINI_API_KEY vacío: NLU deshabilitado, solo parser de respaldo")
	}
	var transcriber ports.Transcriber
	if cfg.Whisper.URL != "" {
		transcriber = infraai.NewWhisperService(cfg.Whisper.URL, cfg.Whisper.Model)
	}

	messenger := whatsapp.NewClient(cfg.WhatsApp, log)

	// Núcleo del chat de inventario.
	auditLog := chat.NewAuditLog(txRepo, log)
	executor := chat.NewExecutor(ledgerRepo, auditLog)
	intentSvc := chat.NewIntentService(nlu, log)
	pipeline := chat.NewPipeline(intentSvc, executor, transcriber, messenger, log)

	// Dashboard, auth y soporte.
	reportGen := infrapdf.NewInventoryReportGenerator()
	inventoryUC := inventory.NewUseCase(ledgerRepo, txRepo, userRepo, auditLog, reportGen)
	authUC := auth.NewUseCase(userRepo, otpStore, messenger, auth.JWTConfig{
		Secret:  cfg.JWT.Secret,
		ExpDays: cfg.JWT.ExpDays,
		Issuer:  cfg.JWT.Issuer,
	}, log)
	supportUC := support.NewUseCase(gemini, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Pipeline:    pipeline,
		Messenger:   messenger,
		Deduper:     deduper,
		InventoryUC: inventoryUC,
		AuthUC:      authUC,
		SupportUC:   supportUC,
		VerifyToken: cfg.WhatsApp.VerifyToken,
		JWTSecret:   cfg.JWT.Secret,
		Log:         log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
