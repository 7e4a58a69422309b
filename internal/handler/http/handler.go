package http

import (
	"github.com/mwbots/ircservserv/internal/logger"
	"github.com/mwbots/ircservserv/internal/service"
	"github.com/mwbots/ircservserv/internal/store"
	"github.com/mwbots/ircservserv/models"
)

type Handler struct {
	services *service.Services
	runs     store.SyncRunRepository // nil when persistence is disabled
	build    models.AppBuildInfo

	logger *logger.Logger
}

func NewHandler(services *service.Services, runs store.SyncRunRepository, build models.AppBuildInfo, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		runs:     runs,
		build:    build,
		logger:   logger,
	}
}
