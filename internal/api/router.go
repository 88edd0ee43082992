package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/smd-system/console/internal/api/handler"
	appmw "github.com/smd-system/console/internal/api/middleware"
	"github.com/smd-system/console/internal/backend"
	"github.com/smd-system/console/internal/core/domain"
	"github.com/smd-system/console/internal/core/ports"
)

// Deps carries everything the router needs to assemble the handler graph.
type Deps struct {
	Sessions ports.SessionService
	Backend  *backend.Client
	Auditor  ports.AuditRecorder
	AuditLog ports.AuditRepository
	Mongo    *mongo.Database
	Redis    *redis.Client
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("smd_console"))
	e.Use(appmw.Session())

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Sessions, d.Auditor)
	dashboardHandler := handler.NewDashboardHandler(d.Sessions, d.Backend.Users, d.Backend.Syllabi)
	syllabusHandler := handler.NewSyllabusHandler(d.Sessions, d.Backend.Syllabi, d.Auditor)
	userHandler := handler.NewUserHandler(d.Sessions, d.Backend.Users, d.Auditor)
	notificationHandler := handler.NewNotificationHandler(d.Sessions, d.Backend.Notifications)
	publishHandler := handler.NewPublishHandler(d.Sessions, d.Backend.Syllabi, d.Auditor, d.Log)
	auditHandler := handler.NewAuditLogHandler(d.AuditLog)

	// --- Operational endpoints (no session required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Mongo, d.Redis, d.Backend)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Session lifecycle (reachable while logged out) ---
	auth := e.Group("/api/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/register", authHandler.Register)
	auth.POST("/logout", authHandler.Logout)

	// --- Guarded pages ---
	page := e.Group("/api", appmw.Guard(d.Sessions))

	page.GET("/session", authHandler.Session)
	page.POST("/session/refresh", authHandler.Refresh)
	page.PUT("/profile", authHandler.UpdateProfile)

	page.GET("/dashboard/stats", dashboardHandler.Stats)

	page.GET("/syllabi", syllabusHandler.List)
	page.POST("/syllabi", syllabusHandler.Create)
	page.GET("/syllabi/my", syllabusHandler.Mine)
	page.GET("/syllabi/pending-review", syllabusHandler.PendingReview)
	page.GET("/syllabi/search", syllabusHandler.Search)
	page.GET("/syllabi/:id", syllabusHandler.Get)
	page.PUT("/syllabi/:id", syllabusHandler.Update)
	page.POST("/syllabi/:id/submit", syllabusHandler.Submit)
	page.POST("/syllabi/:id/approve", syllabusHandler.Approve)
	page.POST("/syllabi/:id/reject", syllabusHandler.Reject)
	page.POST("/syllabi/:id/publish", syllabusHandler.Publish)

	page.GET("/notifications", notificationHandler.List)
	page.GET("/notifications/unread", notificationHandler.Unread)
	page.GET("/notifications/unread-count", notificationHandler.UnreadCount)
	page.PUT("/notifications/:id/read", notificationHandler.MarkRead)

	// --- Admin-only screens ---
	admin := page.Group("/admin", appmw.RequireRole(domain.RoleSystemAdmin))

	admin.GET("/users", userHandler.List)
	admin.POST("/users", userHandler.Create)
	admin.POST("/users/import", userHandler.Import)
	admin.GET("/users/:id", userHandler.Get)
	admin.PUT("/users/:id", userHandler.Update)
	admin.DELETE("/users/:id", userHandler.Delete)
	admin.POST("/users/:id/toggle-active", userHandler.ToggleActive)

	admin.GET("/publish", publishHandler.Screen)
	admin.POST("/publish/batches", publishHandler.CreateBatch)

	admin.GET("/audit-log", auditHandler.List)

	return e
}
