package service

import (
	"github.com/mwbots/ircservserv/internal/config"
	"github.com/mwbots/ircservserv/internal/irc"
	"github.com/mwbots/ircservserv/internal/logger"
	"github.com/mwbots/ircservserv/internal/store"
)

type Services struct {
	ReconcileService   ReconcileService
	ChannelSyncService ChannelSyncService
}

func NewServices(transport irc.Transport, storages *store.Storages, notifier Notifier, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	reconciler := NewReconcileService()
	return &Services{
		ReconcileService:   reconciler,
		ChannelSyncService: NewChannelSyncService(transport, reconciler, storages.SyncRunRepository, notifier, cfg, logger),
	}
}
