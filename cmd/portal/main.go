package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	_ "github.com/noah-isme/library-portal/api/swagger"
	"github.com/noah-isme/library-portal/internal/handler"
	"github.com/noah-isme/library-portal/internal/repository"
	"github.com/noah-isme/library-portal/internal/service"
	"github.com/noah-isme/library-portal/pkg/cache"
	"github.com/noah-isme/library-portal/pkg/config"
	"github.com/noah-isme/library-portal/pkg/logger"
)

// @title Library Portal
// @version 0.1.0
// @description Catalog browsing portal for question papers and research papers
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

	redisClient, err := cache.NewRedis(context.Background(), cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("session store unavailable, continuing without sessions", "error", err)
	}
	sessionRepo := repository.NewSessionRepository(redisClient, cfg.Session.KeyPrefix, logr)
	defer sessionRepo.Close() //nolint:errcheck

	validate := validator.New()
	metrics := service.NewMetricsService()
	schemas := service.DefaultSchemaRegistry()

	httpClient := &http.Client{Timeout: cfg.Backend.Timeout}
	resourceRepo := repository.NewResourceRepository(cfg.Backend.BaseURL, httpClient, schemas, metrics, logr)

	catalog := service.NewCatalogService(schemas, resourceRepo, metrics, logr)
	sessions := service.NewSessionService(sessionRepo, validate, cfg.Session.JWTSecret, logr)
	exports := service.NewExportService(catalog, logr)

	r, err := newRouter(cfg, routerDeps{
		logger:    logr,
		validator: validate,
		metrics:   metrics,
		schemas:   schemas,
		catalog:   catalog,
		sessions:  sessions,
		exports:   exports,
		ready:     map[string]handler.Pinger{"session_store": sessionRepo},
	})
	if err != nil {
		logr.Sugar().Fatalw("failed to build router", "error", err)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "backend", cfg.Backend.BaseURL)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
