package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ApollonSMK/MEXperience-sub000/internal/audit"
	"github.com/ApollonSMK/MEXperience-sub000/internal/config"
	"github.com/ApollonSMK/MEXperience-sub000/internal/domain/payment"
	"github.com/ApollonSMK/MEXperience-sub000/internal/handlers"
	infraRepo "github.com/ApollonSMK/MEXperience-sub000/internal/infra/repository"
	"github.com/ApollonSMK/MEXperience-sub000/internal/middleware"
	"github.com/ApollonSMK/MEXperience-sub000/internal/notify"
	"github.com/ApollonSMK/MEXperience-sub000/internal/stream"
	ucAppointment "github.com/ApollonSMK/MEXperience-sub000/internal/usecase/appointment"
	ucCheckout "github.com/ApollonSMK/MEXperience-sub000/internal/usecase/checkout"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	publisher *stream.Publisher,
	feed *stream.Feed,
) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	giftRepo := infraRepo.NewGiftGormRepository(db)
	clientRepo := infraRepo.NewClientGormRepository(db)
	invoiceRepo := infraRepo.NewInvoiceGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)
	notifyDispatcher := notify.NewDispatcher(notify.LogSender{})

	giftHandler := payment.NewGiftHandler(giftRepo)
	minutesHandler := payment.NewMinutesHandler(clientRepo)

	checkoutSessions := ucCheckout.NewRegistry()

	// ======================================================
	// USE CASES — AGENDA
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		auditDispatcher,
		publisher,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
		publisher,
	)

	rescheduleUC := ucAppointment.NewRescheduleAppointment(
		appointmentRepo,
		auditDispatcher,
		publisher,
	)

	deleteBlockUC := ucAppointment.NewDeleteAppointment(
		appointmentRepo,
		auditDispatcher,
		publisher,
	)

	listDayAgendaUC := ucAppointment.NewListDayAgenda(appointmentRepo)
	listMonthUC := ucAppointment.NewListMonth(appointmentRepo)
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo)

	// ======================================================
	// USE CASES — CAISSE
	// ======================================================
	openCheckoutUC := ucCheckout.NewOpenCheckout(appointmentRepo, checkoutSessions)

	settleCheckoutUC := ucCheckout.NewSettleCheckout(
		checkoutSessions,
		appointmentRepo,
		invoiceRepo,
		giftHandler,
		minutesHandler,
		auditDispatcher,
		notifyDispatcher,
		publisher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	studioHandler := handlers.NewStudioHandler(db)

	serviceHandler := handlers.NewServiceHandler(db)
	clientHandler := handlers.NewClientHandler(db, auditDispatcher)
	giftCodeHandler := handlers.NewGiftHandler(giftRepo, giftHandler, auditDispatcher)

	appointmentHandler := handlers.NewAppointmentHandler(
		appointmentRepo,
		createAppointmentUC,
		cancelAppointmentUC,
		deleteBlockUC,
		rescheduleUC,
		listDayAgendaUC,
		listMonthUC,
		availabilityUC,
	)

	checkoutHandler := handlers.NewCheckoutHandler(
		checkoutSessions,
		openCheckoutUC,
		settleCheckoutUC,
		giftHandler,
		minutesHandler,
	)

	invoiceHandler := handlers.NewInvoiceHandler(invoiceRepo)
	feedHandler := handlers.NewFeedHandler(feed)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVÉE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/studio", studioHandler.GetStudio)
			secured.PATCH("/me/studio", studioHandler.UpdateStudio)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/clients", clientHandler.List)
			secured.GET("/me/clients/:id", clientHandler.Get)
			secured.POST("/me/clients/:id/minutes", clientHandler.TopUpMinutes)

			secured.GET("/me/gift-codes", giftCodeHandler.List)
			secured.POST("/me/gift-codes", giftCodeHandler.Create)
			secured.GET("/me/gift-codes/:code/verify", giftCodeHandler.Verify)

			// ------------------------------
			// AGENDA
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.GET("/me/appointments/availability", appointmentHandler.Availability)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.DELETE("/me/appointments/:id", appointmentHandler.Delete)
			secured.POST("/me/appointments/:id/move/preview", appointmentHandler.MovePreview)
			secured.POST("/me/appointments/:id/move", appointmentHandler.MoveCommit)

			secured.GET("/me/agenda/feed", feedHandler.Snapshot)

			// ------------------------------
			// CAISSE
			// ------------------------------
			secured.POST("/me/checkout", checkoutHandler.Open)
			secured.GET("/me/checkout/:id", checkoutHandler.Get)
			secured.DELETE("/me/checkout/:id", checkoutHandler.Abandon)
			secured.PUT("/me/checkout/:id/stage", checkoutHandler.SetStage)
			secured.POST("/me/checkout/:id/lines", checkoutHandler.AddLine)
			secured.PUT("/me/checkout/:id/discount", checkoutHandler.SetDiscount)
			secured.DELETE("/me/checkout/:id/discount", checkoutHandler.ClearDiscount)
			secured.PUT("/me/checkout/:id/tip", checkoutHandler.SetTip)
			secured.POST("/me/checkout/:id/payments", checkoutHandler.AddPayment)
			secured.DELETE("/me/checkout/:id/payments/:pid", checkoutHandler.RemovePayment)
			secured.POST("/me/checkout/:id/settle", checkoutHandler.Settle)

			secured.GET("/me/invoices", invoiceHandler.List)
			secured.GET("/me/invoices/:number", invoiceHandler.GetByNumber)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
