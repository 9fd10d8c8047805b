package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"episolve/cache"
	"episolve/cms"
	"episolve/common"
	"episolve/config"
	"episolve/database"
	"episolve/forms"
	"episolve/models"
	"episolve/site"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	log, err := cfg.Logger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "building logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := serve(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func serve(cfg *config.Config, log *zap.Logger) error {
	db, err := common.ConnectDb(cfg.DatabaseURI, log)
	if err != nil {
		return err
	}
	defer common.CloseDb(db)

	if err := database.RunMigrations(db, log); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	store, err := cms.NewStore(db, models.Collections())
	if err != nil {
		return err
	}

	sender := cfg.Sender()
	if closer, ok := sender.(io.Closer); ok {
		defer closer.Close()
	}
	notifier := cfg.Notifier(sender, log)
	if !notifier.Enabled() {
		log.Warn("no mail transport configured, notifications disabled")
	}

	responses := cache.New(cfg.CacheDir, cfg.CacheTTL)
	if n, err := responses.ClearOld(); err != nil {
		log.Warn("pruning response cache", zap.Error(err))
	} else if n > 0 {
		log.Info("pruned response cache", zap.Int("files", n))
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))
	router.Static("/media", cfg.MediaDir)

	forms.NewFormsModule(store, notifier, cfg.UnsubscribeSecret, log).RegisterRoutes(router)
	site.NewSiteModule(store, responses, cfg.ServerURL, log).RegisterRoutes(router)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", srv.Addr), zap.String("url", cfg.ServerURL))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	if err := notifier.Drain(shutdownCtx); err != nil {
		log.Warn("pending emails abandoned", zap.Error(err))
	}
	return nil
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
