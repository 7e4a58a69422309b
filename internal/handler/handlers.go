package handler

import (
	"github.com/mwbots/ircservserv/internal/config"
	"github.com/mwbots/ircservserv/internal/handler/http"
	"github.com/mwbots/ircservserv/internal/logger"
	"github.com/mwbots/ircservserv/internal/service"
	"github.com/mwbots/ircservserv/internal/store"
	"github.com/mwbots/ircservserv/models"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, runs store.SyncRunRepository, build models.AppBuildInfo, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, runs, build, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
