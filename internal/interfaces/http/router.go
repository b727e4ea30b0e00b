package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/backroom/internal/application/auth"
	"github.com/tu-usuario/backroom/internal/application/chat"
	"github.com/tu-usuario/backroom/internal/application/inventory"
	"github.com/tu-usuario/backroom/internal/application/ports"
	"github.com/tu-usuario/backroom/internal/application/support"
	"github.com/tu-usuario/backroom/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Pipeline    *chat.Pipeline
	Messenger   ports.Messenger
	Deduper     ports.Deduper
	InventoryUC *inventory.UseCase
	AuthUC      *auth.UseCase
	SupportUC   *support.UseCase
	VerifyToken string
	JWTSecret   string
	Log         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Webhook de WhatsApp (público; Meta verifica con el token compartido).
	webhookHandler := NewWebhookHandler(deps.Pipeline, deps.Messenger, deps.Deduper, deps.VerifyToken, deps.Log)
	app.Get("/webhook", webhookHandler.Verify)
	app.Post("/webhook", webhookHandler.Receive)

	api := app.Group("/api")

	// Auth por OTP (público, con rate limit: cada petición manda un WhatsApp).
	authGroup := api.Group("/auth", RateLimitMiddleware(5, 3))
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/request-otp", authHandler.RequestOTP)
	authGroup.Post("/verify-otp", authHandler.VerifyOTP)

	// Chat de soporte (público, con rate limit: cada pregunta llama al modelo).
	supportHandler := NewSupportHandler(deps.SupportUC)
	api.Post("/support/chat", RateLimitMiddleware(10, 5), supportHandler.Chat)

	// Dashboard (protegido con Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup := protected.Group("/inventory")
	invGroup.Get("/", inventoryHandler.List)
	invGroup.Put("/", inventoryHandler.SetQuantity)
	invGroup.Delete("/:name", inventoryHandler.Delete)
	invGroup.Get("/transactions", inventoryHandler.Transactions)
	invGroup.Get("/export/csv", inventoryHandler.ExportCSV)
	invGroup.Get("/export/pdf", inventoryHandler.ExportPDF)
}
