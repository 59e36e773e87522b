package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/auth"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/inbox"
	"github.com/BruksfildServices01/clinic-scheduler/internal/handlers"
	"github.com/BruksfildServices01/clinic-scheduler/internal/metrics"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/consultation"
	ucIdentity "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/statistics"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/treatment"
)

// Deps are the singletons built in main.
type Deps struct {
	Config  *config.Config
	Log     *zap.Logger
	Metrics *metrics.Collector
	Tokens  *auth.JWTManager

	Registry   *ucIdentity.Registry
	Catalog    *treatment.Catalog
	Engine     *consultation.Engine
	Statistics *statistics.GetStatistics
	Inbox      inbox.Repository
	AuditLogs  audit.Reader

	// DB is nil for the in-memory store.
	DB handlers.Pinger
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(d.Log))
	if d.Metrics != nil {
		r.Use(middleware.Metrics(d.Metrics))
	}

	rl := d.Config.RateLimit
	r.Use(middleware.RateLimit(middleware.NewIPRateLimiter(rate.Limit(rl.RequestsPerSecond), rl.BurstSize)))

	authLimiter := middleware.RateLimit(middleware.NewIPRateLimiter(
		rate.Limit(float64(rl.AuthRequestsPerMinute)/60),
		rl.AuthRequestsPerMinute,
	))

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.Registry, d.Tokens)
	meHandler := handlers.NewMeHandler(d.Registry, d.Inbox)
	userHandler := handlers.NewUserHandler(d.Registry)
	treatmentHandler := handlers.NewTreatmentHandler(d.Catalog)
	consultationHandler := handlers.NewConsultationHandler(d.Engine)
	statisticsHandler := handlers.NewStatisticsHandler(d.Statistics)
	healthHandler := handlers.NewHealthHandler(d.DB, d.Config.App.Version)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogs)

	// ======================================================
	// 🔧 INFRA
	// ======================================================
	r.GET("/health", healthHandler.Check)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// ------------------------------
	// 🔐 AUTH (PÚBLICO)
	// ------------------------------
	r.POST("/sessions", authLimiter, authHandler.Login)
	r.PATCH("/token/refresh", authLimiter, authHandler.Refresh)
	r.POST("/register/client", authLimiter, authHandler.RegisterClient)

	// ------------------------------
	// 🔐 API PRIVADA
	// ------------------------------
	secured := r.Group("/")
	secured.Use(middleware.AuthMiddleware(d.Tokens))
	{
		secured.POST("/register", middleware.RequireAction(identity.ActionRegisterUser), authHandler.Register)

		secured.GET("/me", meHandler.GetMe)
		secured.POST("/me", meHandler.GetMe)
		secured.GET("/me/notifications", meHandler.ListNotifications)
		secured.PATCH("/me/notifications/:id/viewed", meHandler.MarkNotificationViewed)

		// ------------------------------
		// USERS
		// ------------------------------
		secured.GET("/users", userHandler.List)
		secured.GET("/users/:id", userHandler.Get)
		secured.PUT("/users/:id", userHandler.Update)
		secured.DELETE("/users/:id", userHandler.Delete)

		secured.GET("/professionals", userHandler.ListProfessionals)
		secured.GET("/clients", userHandler.ListClients)

		// ------------------------------
		// TREATMENTS
		// ------------------------------
		manage := middleware.RequireAction(identity.ActionManageTreatments)

		secured.GET("/treatments", treatmentHandler.List)
		secured.GET("/treatments/:id", treatmentHandler.Get)
		secured.POST("/treatments", manage, treatmentHandler.Create)
		secured.PUT("/treatments/:id", manage, treatmentHandler.Update)
		secured.DELETE("/treatments/:id", manage, treatmentHandler.Delete)

		secured.GET("/professionals/:professionalId/treatments", treatmentHandler.ListByProfessional)
		secured.POST("/treatments/:id/professionals/:professionalId", manage, treatmentHandler.AddProfessional)
		secured.DELETE("/treatments/:id/professionals/:professionalId", manage, treatmentHandler.RemoveProfessional)

		// ------------------------------
		// CONSULTATIONS
		// ------------------------------
		secured.POST("/consultations", consultationHandler.Create)
		secured.GET("/consultations",
			middleware.RequireAction(identity.ActionListConsultations),
			consultationHandler.ListAll,
		)
		secured.GET("/consultations/:id", consultationHandler.Get)
		secured.PATCH("/consultations/:id", consultationHandler.Update)
		secured.DELETE("/consultations/:id", consultationHandler.Delete)

		secured.GET("/clients/:clientId/consultations", consultationHandler.ListByClient)
		secured.GET("/professionals/:professionalId/consultations", consultationHandler.ListByProfessional)

		secured.GET("/statistics",
			middleware.RequireAction(identity.ActionViewStatistics),
			statisticsHandler.Get,
		)

		secured.GET("/audit-logs",
			middleware.RequireAction(identity.ActionViewAuditLogs),
			auditLogsHandler.List,
		)
	}
}
