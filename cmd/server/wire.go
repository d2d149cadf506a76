//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"omni_notifications/internal/app"
	"omni_notifications/internal/config"
	"omni_notifications/internal/events"
	"omni_notifications/internal/http"
	"omni_notifications/internal/http/controller"
	"omni_notifications/internal/logging"
	"omni_notifications/internal/queue/kafka"
	"omni_notifications/internal/service/notify"
	"omni_notifications/internal/store"
	"omni_notifications/internal/ws"
)

func InitializeApp() (*app.App, error) {
	wire.Build(
		config.New,
		logging.New,
		store.NewStore,
		ws.NewRegistry,
		notify.NewService,
		events.NewHandlers,
		kafka.NewConsumer,
		controller.NewHandler,
		http.NewRouter,
		app.NewApp,
	)
	return &app.App{}, nil
}
