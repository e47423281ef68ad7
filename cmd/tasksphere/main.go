// Package main boots the TaskSphere API server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tasksphere/server/concurrency/worker"
	"github.com/tasksphere/server/config"
	"github.com/tasksphere/server/data"
	"github.com/tasksphere/server/email"
	"github.com/tasksphere/server/handler"
	"github.com/tasksphere/server/logging/logger"
	"github.com/tasksphere/server/middleware"
	"github.com/tasksphere/server/net/resp"
	"github.com/tasksphere/server/security/jwt"
	"github.com/tasksphere/server/service"
)

// App represents the main application.
type App struct {
	config  *config.Config
	logger  *logger.Logger
	data    *data.Data
	pool    *worker.Pool
	handler *handler.Handler
	tokens  *jwt.TokenManager
	server  *http.Server
}

// NewApp creates a new application instance with manual dependency
// injection.
func NewApp(configPath string) (*App, func(), error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, loggerCleanup, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	dataLayer, err := data.New(cfg.Data.Database.URI, cfg.Data.Database.Name, log)
	if err != nil {
		loggerCleanup()
		return nil, nil, fmt.Errorf("failed to create data layer: %w", err)
	}

	pool := worker.NewPool(worker.DefaultConfig())
	pool.Start()

	sender, err := email.NewSender(cfg.Email)
	if err != nil {
		log.Warnf(context.Background(), "email sender unavailable: %v", err)
		sender = nil
	}
	notifier := email.NewNotifier(sender, pool, log)

	tokens := jwt.NewTokenManager(cfg.Auth.JWT.Secret)

	svc := service.New(dataLayer, tokens, notifier, cfg.Frontend.URL, log)
	h := handler.New(svc, log)

	app := &App{
		config:  cfg,
		logger:  log,
		data:    dataLayer,
		pool:    pool,
		handler: h,
		tokens:  tokens,
	}

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		pool.Stop(ctx)
		if err := dataLayer.Close(); err != nil {
			log.Errorf(ctx, "failed to close data layer: %v", err)
		}
		loggerCleanup()
	}

	return app, cleanup, nil
}

// Run starts the application server and blocks until shutdown.
func (a *App) Run() error {
	if a.config.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logging(a.logger))

	a.handler.RegisterRoutes(router, a.tokens, a.data)

	router.GET("/health", func(c *gin.Context) {
		status := "healthy"
		if err := a.data.Ping(c.Request.Context()); err != nil {
			status = "degraded"
		}
		resp.Success(c.Writer, map[string]string{"status": status})
	})

	addr := fmt.Sprintf("%s:%d", a.config.Host, a.config.Port)
	a.server = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		a.logger.Infof(context.Background(), "starting server on %s", addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(context.Background(), "server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	a.logger.Info(context.Background(), "shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Errorf(ctx, "server forced to shutdown: %v", err)
		return err
	}

	a.logger.Info(context.Background(), "server exited")
	return nil
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	app, cleanup, err := NewApp(*configPath)
	if err != nil {
		fmt.Printf("Failed to initialize app: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	config.Watch(*configPath, func(cfg *config.Config) {
		app.logger.Info(context.Background(), "configuration reloaded")
	})

	if err := app.Run(); err != nil {
		fmt.Printf("Failed to run app: %v\n", err)
		os.Exit(1)
	}
}
