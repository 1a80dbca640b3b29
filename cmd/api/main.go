package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"supply-demand/internal/api"
	"supply-demand/internal/config"
	"supply-demand/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	flag.Parse()

	log := logger.GetLogger()

	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.WithError(err).Warn("failed to load .env")
	}

	if *cfgPath == "" {
		*cfgPath = os.Getenv("API_CONFIG")
	}
	cfg := config.Default()
	if *cfgPath != "" {
		c, err := config.Load(*cfgPath)
		if err != nil {
			log.WithError(err).Fatal("failed to load config")
		}
		cfg = c
	}
	if err := log.Configure(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output, cfg.Logging.MaxAge); err != nil {
		log.WithError(err).Fatal("failed to configure logger")
	}

	addr := cfg.Server.Address
	if port := os.Getenv("API_PORT"); port != "" {
		addr = ":" + port
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router, closeRouter := api.NewRouter(cfg, log)
	defer closeRouter()

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithComponent("api").WithFields(logger.Fields{
			"addr":      addr,
			"scenario":  cfg.Scenario,
			"reference": cfg.Controls.Reference,
		}).Info("starting API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.WithComponent("api").Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
}
