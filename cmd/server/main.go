package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	appcontent "github.com/portfolio/backend/internal/application/content"
	"github.com/portfolio/backend/internal/application/identity"
	"github.com/portfolio/backend/internal/domain/content"
	"github.com/portfolio/backend/internal/infrastructure/auth"
	"github.com/portfolio/backend/internal/infrastructure/cache"
	"github.com/portfolio/backend/internal/infrastructure/config"
	"github.com/portfolio/backend/internal/infrastructure/logger"
	"github.com/portfolio/backend/internal/infrastructure/notify"
	"github.com/portfolio/backend/internal/infrastructure/persistence"
	"github.com/portfolio/backend/internal/infrastructure/printing"
	"github.com/portfolio/backend/internal/infrastructure/storage"
	"github.com/portfolio/backend/internal/infrastructure/telemetry"
	"github.com/portfolio/backend/internal/interfaces/http/handler"
	"github.com/portfolio/backend/internal/interfaces/http/middleware"
	"github.com/portfolio/backend/internal/interfaces/http/router"
	"github.com/portfolio/backend/internal/interfaces/web"
	"go.uber.org/zap"

	_ "github.com/portfolio/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Portfolio API
//	@version		1.0
//	@description	Public content and admin dashboard API of the portfolio site

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	ctx := context.Background()

	providers, err := telemetry.Setup(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to start telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			log.Error("Telemetry shutdown failed", zap.Error(err))
		}
	}()
	log = providers.Logger(log, logger.ParseLevel(cfg.Log.Level))

	log.Info("Starting portfolio backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("store", cfg.Database.Driver),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	backend, err := persistence.OpenBackend(ctx, &cfg.Database, persistence.WithGormLogger(gormLog))
	if err != nil {
		log.Fatal("Failed to open document store", zap.Error(err))
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.Error("Error closing document store", zap.Error(err))
		}
	}()
	if backend.DB != nil {
		if err := telemetry.RegisterDBTracing(backend.DB.DB, telemetry.DBTracing(cfg.Telemetry, cfg.Database.Driver), log); err != nil {
			log.Warn("Failed to enable database tracing", zap.Error(err))
		}
		if sqlDB, err := backend.DB.DB.DB(); err == nil {
			if err := telemetry.RegisterPoolMetrics(providers.AppMeter(), sqlDB); err != nil {
				log.Warn("Failed to register pool metrics", zap.Error(err))
			}
		}
	}
	store := backend.Store

	objects, err := storage.NewObjectStorage(ctx, &cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	contentCache, err := cache.NewContentCacheFactory(cfg.Redis, cfg.Cache, cache.WithLogger(log)).CreateCache()
	if err != nil {
		log.Fatal("Failed to initialize content cache", zap.Error(err))
	}

	// Services
	opts := []appcontent.ManagerOption{
		appcontent.WithMetrics(providers.Metrics),
		appcontent.WithLogger(log),
	}
	if contentCache != nil {
		opts = append(opts, appcontent.WithCache(contentCache))
	}

	about := appcontent.NewAboutService(store, opts...)
	biography := appcontent.NewBiographyService(store, opts...)
	workExperiences := appcontent.NewManager[content.WorkExperience](store, content.WorkExperienceSchema, opts...)
	projects := appcontent.NewManager[content.Project](store, content.ProjectSchema, opts...)
	certificates := appcontent.NewManager[content.Certificate](store, content.CertificateSchema, opts...)
	skills := appcontent.NewManager[content.Skill](store, content.SkillSchema, opts...)
	blogPosts := appcontent.NewManager[content.BlogPost](store, content.BlogPostSchema, opts...)
	contactMessages := appcontent.NewManager[content.ContactMessage](store, content.ContactMessageSchema, opts...)
	hireRequests := appcontent.NewManager[content.HireRequest](store, content.HireRequestSchema, opts...)

	publicService := appcontent.NewPublicService(store, about, biography, contentCache, log)
	inboxService := appcontent.NewInboxService(store, notify.New(cfg.Mail, log), opts...)
	blogService := appcontent.NewBlogService(blogPosts, objects, storage.ObjectKey, opts...)
	overviewService := appcontent.NewOverviewService(store)

	authService := identity.NewAuthService(
		cfg.Admin,
		auth.NewPasswordHasher(0),
		auth.NewJWTService(cfg.JWT),
		auth.NewTokenBlacklist(cfg.Redis, log),
		identity.WithLoginRecorder(providers.Metrics),
		identity.WithAuthLogger(log),
	)

	pages, err := web.NewPages(publicService, authService, map[string]web.SectionLoader{
		"overview":     func(ctx context.Context) (any, error) { return overviewService.Counts(ctx) },
		"hero":         func(ctx context.Context) (any, error) { return biography.Read(ctx) },
		"about":        func(ctx context.Context) (any, error) { return about.Read(ctx) },
		"work":         web.ListOf(workExperiences),
		"skills":       web.ListOf(skills),
		"certificates": web.ListOf(certificates),
		"blog":         web.ListOf(blogPosts),
		"contact":      web.ListOf(contactMessages),
		"hireme":       web.ListOf(hireRequests),
	}, cfg.Cookie, log, web.WithSiteURL(cfg.App.BaseURL))
	if err != nil {
		log.Fatal("Failed to parse page templates", zap.Error(err))
	}

	var renderer appcontent.PDFRenderer = printing.DisabledRenderer{}
	if cfg.Printing.Enabled {
		chrome := printing.NewChromedpRenderer(cfg.Printing, log)
		defer func() {
			if err := chrome.Close(); err != nil {
				log.Warn("Failed to stop headless browser", zap.Error(err))
			}
		}()
		renderer = chrome
	}
	cvService := appcontent.NewCVService(pages, renderer, objects, storage.ObjectKey, about, opts...)

	// Handlers
	handlers := router.Handlers{
		Public:          handler.NewPublicHandler(publicService, inboxService),
		Auth:            handler.NewAuthHandler(authService, cfg.Cookie),
		Dashboard:       handler.NewDashboardHandler(overviewService, cvService),
		System:          handler.NewSystemHandler(cfg.App.Name, version, map[string]handler.Pinger{"store": backend, "storage": objects}),
		About:           handler.NewSingletonHandler(about),
		Biography:       handler.NewSingletonHandler(biography),
		WorkExperiences: handler.NewCollectionHandler(workExperiences),
		Projects:        handler.NewCollectionHandler(projects),
		Certificates:    handler.NewCollectionHandler(certificates),
		Skills:          handler.NewCollectionHandler(skills),
		BlogPosts:       handler.NewBlogHandler(blogService),
		ContactMessages: handler.NewCollectionHandler(contactMessages),
		HireRequests:    handler.NewCollectionHandler(hireRequests),
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware order:
	// 1. Recovery - Catch panics
	// 2. RequestID - Generate/propagate request ID
	// 3. Logger - Log requests
	// 4. Tracing and metrics
	// 5. CORS and security headers
	// 6. BodyLimit - Limit request body size
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName, cfg.Telemetry.Enabled))
	engine.Use(middleware.SpanAttributes())
	engine.Use(middleware.HTTPMetrics(providers.AppMeter()))
	engine.Use(middleware.Profiling(cfg.Telemetry.ProfilingEnabled))
	engine.Use(middleware.CORS(middleware.CORSConfigFrom(cfg.HTTP)))
	engine.Use(middleware.Secure(cfg.Cookie.Secure))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.GET("/health", handlers.System.Health)
	engine.GET("/swagger/*any", middleware.SwaggerProtection(cfg.Swagger), ginSwagger.WrapHandler(swaggerFiles.Handler))
	if cfg.App.StaticDir != "" {
		engine.Static("/static", cfg.App.StaticDir)
	}

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	router.Register(r, handlers, router.Guards{
		Session: middleware.RequireSession(middleware.AuthConfig{
			Authenticator: authService,
			CookieName:    cfg.Cookie.Name,
			Logger:        log,
		}),
		LoginLimit: middleware.RateLimit(middleware.NewRateLimiter(cfg.Admin.LoginAttempts, cfg.Admin.LoginWindow)),
	})
	r.Setup()
	pages.Register(engine)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
