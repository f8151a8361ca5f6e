package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tomz197/mergebox/internal/config"
	"github.com/tomz197/mergebox/internal/highscore"
	"github.com/tomz197/mergebox/internal/logging"
)

//go:embed index.html
var htmlPage string

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := highscore.Open(ctx, highscore.Options{RedisURL: cfg.RedisURL, File: cfg.HighScoreFile})
	if err != nil {
		logger.Fatal("open high score store", zap.Error(err))
	}
	defer store.Close()

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:    net.JoinHostPort(cfg.WebHost, cfg.WebPort),
		Handler: newRouter(store, cfg.SSHDisplayHost, cfg.SSHPort, logger),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("starting web server", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
}

type pageData struct {
	SSHHost string
	SSHPort string
}

func newRouter(store highscore.Store, sshHost, sshPort string, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))
	router.SetHTMLTemplate(template.Must(template.New("index").Parse(htmlPage)))

	router.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index", pageData{SSHHost: sshHost, SSHPort: sshPort})
	})

	router.GET("/api/highscore", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		best, err := store.Load(ctx)
		if err != nil {
			logger.Warn("load high score", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "high score unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"key": highscore.Key, "highscore": best})
	})

	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return router
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
