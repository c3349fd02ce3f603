package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/handler"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/middleware"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/models"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/repository"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/service"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/config"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/logger"
	corsmiddleware "github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/middleware/cors"
	reqidmiddleware "github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/middleware/requestid"
)

type routerHandlers struct {
	auth      *handler.AuthHandler
	reports   *handler.ReportHandler
	summary   *handler.SummaryHandler
	students  *handler.StudentHandler
	groups    *handler.GroupHandler
	campuses  *handler.CampusHandler
	guardians *handler.GuardianHandler
	users     *handler.UserHandler
	feedback  *handler.FeedbackHandler
	exports   *handler.ExportHandler
	health    *handler.HealthHandler
}

func newRouter(cfg *config.Config, logr *zap.Logger, h routerHandlers, auth *service.AuthService, audits *repository.UserRepository, metrics *service.MetricsService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", h.health.Health)
	r.GET("/ready", h.health.Ready)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	// staff roles with campus-wide or wider visibility
	management := []models.UserRole{models.RoleDirector, models.RoleViceRector, models.RoleRector, models.RoleAdmin}
	adminOnly := []models.UserRole{models.RoleAdmin}

	api.POST("/auth/login", h.auth.Login)
	api.POST("/auth/refresh", h.auth.Refresh)

	authed := api.Group("")
	authed.Use(middleware.Authenticate(auth))

	authed.POST("/auth/logout", h.auth.Logout)
	authed.GET("/auth/me", h.auth.Me)
	authed.PUT("/auth/password", h.auth.ChangePassword)

	authed.POST("/reports", middleware.Audit(audits, models.AuditActionReportUpsert, "daily_report", logr), h.reports.Upsert)
	authed.GET("/reports", h.reports.List)
	authed.GET("/reports/summary", h.summary.Summary)
	authed.GET("/reports/:id", h.reports.Get)
	authed.POST("/reports/:id/send", middleware.Audit(audits, models.AuditActionReportSend, "daily_report", logr), h.reports.Send)
	authed.DELETE("/reports/:id", middleware.RequireRoles(models.RoleRector, models.RoleAdmin), middleware.Audit(audits, models.AuditActionReportDelete, "daily_report", logr), h.reports.Delete)

	authed.GET("/students", h.students.List)
	authed.GET("/students/:id", h.students.Get)
	authed.GET("/students/:id/reports", h.reports.History)
	authed.GET("/students/:id/guardians", h.students.ListGuardians)
	authed.POST("/students", middleware.RequireRoles(management...), middleware.Audit(audits, models.AuditActionCreate, "student", logr), h.students.Create)
	authed.PUT("/students/:id", middleware.RequireRoles(management...), middleware.Audit(audits, models.AuditActionUpdate, "student", logr), h.students.Update)
	authed.DELETE("/students/:id", middleware.RequireRoles(management...), middleware.Audit(audits, models.AuditActionDeactivate, "student", logr), h.students.Deactivate)

	authed.GET("/groups", h.groups.List)
	authed.GET("/groups/:id", h.groups.Get)
	authed.POST("/groups", middleware.RequireRoles(management...), middleware.Audit(audits, models.AuditActionCreate, "group", logr), h.groups.Create)
	authed.PUT("/groups/:id", middleware.RequireRoles(management...), middleware.Audit(audits, models.AuditActionUpdate, "group", logr), h.groups.Update)
	authed.DELETE("/groups/:id", middleware.RequireRoles(management...), middleware.Audit(audits, models.AuditActionDeactivate, "group", logr), h.groups.Deactivate)

	authed.GET("/campuses", h.campuses.List)
	authed.GET("/campuses/:id", h.campuses.Get)
	authed.POST("/campuses", middleware.RequireRoles(adminOnly...), middleware.Audit(audits, models.AuditActionCreate, "campus", logr), h.campuses.Create)
	authed.PUT("/campuses/:id", middleware.RequireRoles(adminOnly...), middleware.Audit(audits, models.AuditActionUpdate, "campus", logr), h.campuses.Update)
	authed.DELETE("/campuses/:id", middleware.RequireRoles(adminOnly...), middleware.Audit(audits, models.AuditActionDeactivate, "campus", logr), h.campuses.Deactivate)

	authed.POST("/guardians", middleware.RequireRoles(management...), middleware.Audit(audits, models.AuditActionCreate, "guardian", logr), h.guardians.Create)
	authed.PUT("/guardians/:id", middleware.RequireRoles(management...), middleware.Audit(audits, models.AuditActionUpdate, "guardian", logr), h.guardians.Update)
	authed.DELETE("/guardians/:id", middleware.RequireRoles(management...), middleware.Audit(audits, models.AuditActionDeactivate, "guardian", logr), h.guardians.Delete)

	authed.GET("/users", middleware.RequireRoles(management...), h.users.List)
	authed.GET("/users/:id", middleware.RequireRoles(management...), h.users.Get)
	authed.POST("/users", middleware.RequireRoles(adminOnly...), middleware.Audit(audits, models.AuditActionCreate, "user", logr), h.users.Create)
	authed.PUT("/users/:id", middleware.RequireRoles(adminOnly...), middleware.Audit(audits, models.AuditActionUpdate, "user", logr), h.users.Update)

	authed.POST("/feedback", h.feedback.Create)
	authed.GET("/feedback", middleware.RequireRoles(management...), h.feedback.List)

	authed.GET("/metrics/snapshot", middleware.RequireRoles(adminOnly...), h.health.Snapshot)

	if h.exports != nil {
		authed.GET("/exports/reports", h.exports.Export)
		api.GET("/exports/download/:token", h.exports.Download)
	}

	return r
}
