package app

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"omni_notifications/internal/config"
	"omni_notifications/internal/queue"
	"omni_notifications/internal/repository"
)

type App struct {
	cfg      *config.Config
	store    repository.NotificationStore
	consumer queue.Consumer
	server   *http.Server
	logger   *zap.Logger
	wg       sync.WaitGroup
}

func NewApp(cfg *config.Config, store repository.NotificationStore, consumer queue.Consumer, router *gin.Engine, logger *zap.Logger) *App {
	return &App{
		cfg:      cfg,
		store:    store,
		consumer: consumer,
		server: &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: router,
		},
		logger: logger,
	}
}

func (a *App) Run(ctx context.Context) error {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.consumer.Start(ctx); err != nil && ctx.Err() == nil {
			a.logger.Error("consumer stopped", zap.Error(err))
		}
	}()
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("graceful shutdown started")
	shutdownErr := a.server.Shutdown(ctx)

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		if shutdownErr == nil {
			shutdownErr = ctx.Err()
		}
	}

	if err := a.store.Close(); err != nil {
		a.logger.Error("store close failed", zap.Error(err))
		if shutdownErr == nil {
			shutdownErr = err
		}
	}
	if shutdownErr == nil {
		a.logger.Info("graceful shutdown completed")
	}
	return shutdownErr
}

func (a *App) Logger() *zap.Logger {
	return a.logger
}
