package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Tnmoxa/epg-task/internal/config"
)

// Registrar is a common interface for all HTTP service registrars
type Registrar interface {
	Register(e *gin.Engine)
}

// NewRouter builds the gin engine and registers all provided services
func NewRouter(log *slog.Logger, registrars ...Registrar) *gin.Engine {
	e := gin.New()
	e.Use(gin.Recovery())
	e.Use(requestLogger(log))

	e.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	e.GET("/metrics", gin.WrapH(promhttp.Handler()))

	for _, r := range registrars {
		r.Register(e)
	}

	return e
}

// StartHTTPServer boots the HTTP server with all provided services
func StartHTTPServer(cfg *config.Config, log *slog.Logger, registrars ...Registrar) error {
	addr := fmt.Sprintf("%s:%s", cfg.HTTP.Host, cfg.HTTP.Port)
	e := NewRouter(log, registrars...)
	return e.Run(addr)
}

// requestLogger logs one line per request with latency and status.
func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if log == nil {
			return
		}
		log.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}
