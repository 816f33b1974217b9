package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/oakfield-primary/portal-api/api/swagger"
	"github.com/oakfield-primary/portal-api/internal/gateway"
	"github.com/oakfield-primary/portal-api/internal/handler"
	"github.com/oakfield-primary/portal-api/internal/idp"
	"github.com/oakfield-primary/portal-api/internal/middleware"
	"github.com/oakfield-primary/portal-api/internal/service"
	"github.com/oakfield-primary/portal-api/internal/session"
	"github.com/oakfield-primary/portal-api/pkg/cache"
	"github.com/oakfield-primary/portal-api/pkg/config"
	"github.com/oakfield-primary/portal-api/pkg/logger"
	"github.com/oakfield-primary/portal-api/pkg/mail"
	corsmiddleware "github.com/oakfield-primary/portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/oakfield-primary/portal-api/pkg/middleware/requestid"
)

// @title Oakfield Primary Portal API
// @version 0.1.0
// @description Browser-facing portal for admissions, documents, trips and meetings
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("redis unavailable", "error", err)
	}

	sessions := session.NewStore(redisClient, cfg.Session, logr)

	metrics := service.NewMetricsService()

	upstream := gateway.New(cfg.Upstream, logr)
	upstream.SetObserver(metrics)

	var identity idp.Provider
	if cfg.Identity.CredentialsFile != "" {
		identity, err = idp.NewFirebaseProvider(context.Background(), cfg.Identity)
		if err != nil {
			logr.Sugar().Fatalw("identity provider init failed", "error", err)
		}
	} else {
		logr.Warn("no identity credentials configured, password reset links are logged only")
		identity = idp.NewLogProvider(logr)
	}

	var mailer mail.Mailer
	if cfg.Mail.SendGridKey != "" {
		mailer = mail.NewSendGrid(cfg.Mail.SendGridKey, cfg.Mail.FromName, cfg.Mail.FromEmail)
	} else {
		mailer = mail.NewLogMailer(logr)
	}

	validate := validator.New()
	notices := service.NewNoticeFactory(cfg.Notice.DismissAfter)

	authSvc := service.NewAuthService(upstream, sessions, identity, mailer, validate, logr)
	parentSvc := service.NewParentService(upstream, upstream, logr)
	childrenSvc := service.NewChildrenService(upstream, upstream, notices, validate, logr)
	documentSvc := service.NewDocumentService(upstream, upstream, notices, validate, logr)
	tripSvc := service.NewTripService(upstream, upstream, upstream, notices, cfg.Payment.ProcessingDelay, validate, logr)
	meetingSvc := service.NewMeetingService(upstream, upstream, notices, validate, logr)
	adminDashboardSvc := service.NewAdminDashboardService(upstream, logr)
	studentAdminSvc := service.NewStudentAdminService(upstream, upstream, validate, logr)
	tripAdminSvc := service.NewTripAdminService(upstream, validate, logr)
	meetingAdminSvc := service.NewMeetingAdminService(upstream, validate, logr)
	announcementSvc := service.NewAnnouncementService(upstream, validate, logr)

	co := handler.NewCoordinator(sessions, cfg.Session, logr)
	co.SetMetrics(metrics)
	handlers := &handler.Set{
		Auth:           handler.NewAuthHandler(authSvc, co),
		Parent:         handler.NewParentHandler(parentSvc, co),
		Children:       handler.NewChildrenHandler(childrenSvc, documentSvc, co),
		Documents:      handler.NewDocumentHandler(documentSvc, co),
		Trips:          handler.NewTripHandler(tripSvc, co),
		Meetings:       handler.NewMeetingHandler(meetingSvc, co),
		AdminDashboard: handler.NewAdminDashboardHandler(adminDashboardSvc, co),
		Students:       handler.NewStudentAdminHandler(studentAdminSvc, documentSvc, co),
		AdminTrips:     handler.NewTripAdminHandler(tripAdminSvc, co),
		AdminMeetings:  handler.NewMeetingAdminHandler(meetingAdminSvc, co),
		Announcements:  handler.NewAnnouncementHandler(announcementSvc, co),
		AdminDocuments: handler.NewDocumentAdminHandler(documentSvc, co),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.Session(sessions, cfg.Session.CookieName, logr))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "redis": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handlers.Register(r)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("portal starting", "addr", addr, "env", cfg.Env, "upstream", cfg.Upstream.BaseURL)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("portal failed", "error", err)
	}
}
