package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/mwbots/ircservserv/internal/adapter"
	"github.com/mwbots/ircservserv/internal/bot"
	"github.com/mwbots/ircservserv/internal/config"
	"github.com/mwbots/ircservserv/internal/gitcfg"
	"github.com/mwbots/ircservserv/internal/handler"
	"github.com/mwbots/ircservserv/internal/irc"
	"github.com/mwbots/ircservserv/internal/logger"
	"github.com/mwbots/ircservserv/internal/server"
	"github.com/mwbots/ircservserv/internal/service"
	"github.com/mwbots/ircservserv/internal/store"
	"github.com/mwbots/ircservserv/internal/workers"
	"github.com/mwbots/ircservserv/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// reconnectDelay spaces out connection attempts after the network drops
// the bot.
const reconnectDelay = 30 * time.Second

func main() {
	printBuildInfo()

	log := logger.NewLogger("bot")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	var notifier service.Notifier
	if cfg.Webhook.URL != "" {
		notifier = adapter.NewWebhookNotifier(cfg.Webhook, log)
	}

	client := irc.NewClient(cfg.IRC, log)
	services := service.NewServices(client, storages, notifier, cfg, log)
	repo := gitcfg.NewRepo(cfg.Channels, log)

	issBot := bot.NewBot(client, services.ChannelSyncService, repo, cfg, log)
	client.OnMessage(issBot.Handler(ctx))
	// fires on every registration, so channels are rejoined after a
	// reconnect too
	client.OnReady(func() {
		go func() {
			if err := issBot.JoinChannels(ctx); err != nil {
				log.Error().Err(err).Msg("error joining channels")
			}
		}()
	})

	go runIRC(ctx, client, log)

	background, err := workers.NewWorkers(ctx, services.ChannelSyncService, repo, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating workers")
	}
	background.Run()

	if cfg.Server.HTTPAddress == "" {
		<-ctx.Done()
		log.Info().Msg("bot Shutdown gracefully")
		return
	}

	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	handlers, err := handler.NewHandlers(services, storages.SyncRunRepository, build, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

// runIRC keeps one connection alive for the life of the process,
// redialing after the network drops it.
func runIRC(ctx context.Context, client *irc.Client, log *logger.Logger) {
	for {
		err := client.Run(ctx)
		if ctx.Err() != nil {
			return
		}

		log.Error().Err(err).Msgf("connection lost, reconnecting in %s", reconnectDelay)
		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
