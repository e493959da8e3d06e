package main

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/dialdesk/dialdesk/internal/config"
	"github.com/dialdesk/dialdesk/internal/handler"
	"github.com/dialdesk/dialdesk/internal/middleware"
)

// setupRouter wraps the API routes in the middleware stack.
func setupRouter(cfg *config.Config, h *handler.Handler, logger *zap.Logger) http.Handler {
	middlewareConfig := &middleware.Config{
		Logger:         logger,
		CORS:           middleware.NewCORSConfig(cfg.Middleware.AllowedOrigins),
		RateLimit:      rate.Limit(cfg.Middleware.RateLimit),
		RateLimitBurst: cfg.Middleware.RateLimitBurst,
		RequestTimeout: 30 * time.Second,
	}
	if !cfg.Middleware.EnableCORS {
		middlewareConfig.CORS = nil
	}

	return middleware.Chain(middlewareConfig)(h.Routes())
}
