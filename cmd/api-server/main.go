package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"phoneflip/internal/adminauth"
	"phoneflip/internal/catalog"
	"phoneflip/internal/ingest"
	"phoneflip/internal/progress"
	"phoneflip/internal/specsource"
	"phoneflip/pkg/database"
	"phoneflip/pkg/logger"
	"phoneflip/pkg/utils"
)

func main() {
	cfg := utils.LoadConfig()

	zl, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer zl.Sync()

	client := database.MustOpen(database.Config{URI: cfg.MongoURI, Name: cfg.MongoDB})
	defer client.Disconnect(context.Background())
	db := client.Database(cfg.MongoDB)

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	hub := progress.NewHub()
	router.GET("/ws", progress.WSHandler(hub))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/ready", func(c *gin.Context) {
		stats := hub.Stats()
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := client.Ping(ctx, nil); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "not_ready",
				"db_error": err.Error(),
				"watchers": stats.Watchers,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":   "ready",
			"db":       "ok",
			"watchers": stats.Watchers,
		})
	})

	api := router.Group("/api")

	// Public catalog reads
	repo := catalog.NewMongoRepo(db)
	catalogHandler := catalog.NewHandler(repo)
	catalogHandler.RegisterRoutes(api.Group("/phone-specs"))

	// Admin ingestion endpoints (bearer-token guarded)
	tokens := adminauth.TokenService{
		Secret:   []byte(cfg.AdminJWTSecret),
		Issuer:   cfg.AdminJWTIssuer,
		Duration: cfg.AdminJWTTTL,
	}

	specs := specsource.NewClient(cfg.SpecsAPIBase)
	importer := ingest.NewImporter(repo, specs, zl)
	importer.Events = hub
	importer.PhoneDelay = cfg.PhoneDelay
	importer.BrandDelay = cfg.BrandDelay

	admin := api.Group("/admin")
	admin.Use(adminauth.Middleware(tokens))
	ingest.NewHandler(importer).RegisterRoutes(admin)

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("http server listening", "port", cfg.Port)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		zl.Info("shutdown signal received", "signal", sig.String())
	case err := <-errCh:
		zl.Error("server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		zl.Error("http shutdown error", "error", err)
	}
	zl.Info("server stopped")
}
