package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"mismon/internal/client/mis"
	"mismon/internal/config"
	cronrunner "mismon/internal/cron"
	"mismon/internal/db"
	"mismon/internal/handler"
	"mismon/internal/logger"
	"mismon/internal/notify"
	gormrepository "mismon/internal/repository/gorm"
	"mismon/internal/service"
	signaldetect "mismon/internal/signal"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("MIS_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}
	envOnly := false
	if raw := os.Getenv("MIS_ENV_ONLY"); raw != "" {
		envOnly = strings.EqualFold(raw, "true") || raw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	loc, err := time.LoadLocation(cfg.Market.Timezone)
	if err != nil {
		logger.Fatal("invalid market timezone", zap.String("tz", cfg.Market.Timezone), zap.Error(err))
	}

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	store := gormrepository.New(dbConn.Gorm)
	runtime := config.NewRuntime(cfg.Poller)
	detector := signaldetect.NewDetector(loc)
	summarySvc := &service.SummaryService{Repo: store, Loc: loc}
	webhook := &notify.Webhook{
		URL:  cfg.Webhook.URL,
		HTTP: &http.Client{Timeout: cfg.Webhook.Timeout},
	}
	poller := &service.PollerService{
		Repo:     store,
		MIS:      mis.NewClient(&http.Client{Timeout: cfg.MIS.Timeout}, cfg.MIS.BaseURL, cfg.MIS.UserAgent),
		Runtime:  runtime,
		Summary:  summarySvc,
		Detector: detector,
		Webhook:  webhook,
		Logger:   logger,
		Loc:      loc,
	}
	retention := &service.RetentionService{
		Repo:   store,
		Logger: logger,
		Days:   cfg.Retention.Days,
		Loc:    loc,
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	summaryHandler := &handler.SummaryHandler{Service: summarySvc}
	summaryHandler.Register(engine)
	adminHandler := &handler.AdminHandler{Runtime: runtime, Detector: detector, Token: cfg.Admin.Token}
	adminHandler.Register(engine)
	detectionHandler := &handler.DetectionHandler{Repo: store}
	detectionHandler.Register(engine)

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cronRunner := cronrunner.New(logger, ctx)
	if _, err := cronRunner.Add(cfg.Retention.Sweep, func(ctx context.Context) {
		if err := retention.RunOnce(ctx); err != nil {
			logger.Warn("retention sweep failed", zap.Error(err))
		}
	}); err != nil {
		logger.Warn("cron register retention sweep failed", zap.Error(err))
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	go func() {
		if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("poller stopped", zap.Error(err))
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,X-Admin-Token")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
