package routes

import (
	"os"
	"strings"
	"time"

	pa "seven_gym_back_end/internal/handlers/payement"
	pl "seven_gym_back_end/internal/handlers/planning"
	tr "seven_gym_back_end/internal/handlers/trainer"
	"seven_gym_back_end/internal/handlers/user"
	"seven_gym_back_end/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// CORS : origines du front depuis l'env, localhost par défaut
	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Stripe-Signature"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.APIRateLimit())

	api := r.Group("/api")

	// --- Authentification ---
	api.POST("/auth/register", user.CreateMember)
	api.POST("/auth/login", middleware.LoginRateLimit(), user.Login)
	api.GET("/auth/:provider", user.BeginAuth)
	api.GET("/auth/:provider/callback", user.CallbackAuth)

	// --- Catalogue public des abonnements ---
	api.GET("/tiers", pa.GetTierCatalog)

	// --- Webhook Stripe (signé, pas de JWT) ---
	api.POST("/billing/webhook", pa.StripeWebhook)

	// --- Routes membre (JWT requis) ---
	member := api.Group("/")
	member.Use(middleware.AuthRequired())
	{
		member.GET("/me", user.Me)

		// Facturation
		member.POST("/billing/checkout", pa.CreateTierCheckout)
		member.GET("/billing/promo", pa.ValidatePromo)
		member.GET("/billing/payments", pa.GetMyPayments)
		member.GET("/billing/payments/:paymentId/receipt-url", pa.GetReceiptDownloadURL)
		member.GET("/billing/refunds", pa.GetMyRefunds)
		member.GET("/billing/refunds/preview/:paymentId", pa.PreviewRefund)
		member.POST("/billing/refunds/:paymentId", middleware.RefundRateLimit(), pa.RequestRefund)
		member.POST("/billing/refunds/receipt/:refundId/resend", pa.ResendRefundReceipt)

		// Planning hebdomadaire
		member.GET("/schedule", pl.GetMySchedule)
		member.POST("/schedule", pl.CreateMySchedule)
		member.POST("/schedule/:dayName/regenerate", pl.RegenerateDay)
		member.PUT("/schedule/:dayName/:hour", pl.UpdateSlot)
		member.DELETE("/schedule/:dayName/:hour", pl.ClearSlot)
		member.GET("/schedule/ws", pl.ScheduleWebSocket)

		// Coachs et réservations
		member.GET("/trainers", tr.GetTrainers)
		member.GET("/trainers/search", tr.SearchTrainersHandler)
		member.POST("/trainers/bookings", tr.BookSession)
		member.GET("/trainers/bookings", tr.GetMyBookings)
		member.DELETE("/trainers/bookings/:bookingId", tr.CancelBooking)
	}

	// --- Routes admin ---
	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.RequireAdmin)
	{
		admin.GET("/billing/dashboard", pa.GetBillingDashboard)
		admin.GET("/billing/payments", pa.GetRecentPayments)
		admin.GET("/billing/refunds", pa.GetAllRefunds)
		admin.PUT("/tiers", pa.UpdateTierPricing)

		admin.POST("/trainers", tr.CreateTrainer)
		admin.PUT("/trainers/:trainerId", tr.UpdateTrainer)
		admin.POST("/trainers/:trainerId/photo", tr.UploadTrainerPhoto)
		admin.DELETE("/trainers/:trainerId", tr.DeleteTrainer)
	}
}
