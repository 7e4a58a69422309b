// SPDX-License-Identifier: Apache-2.0

// Package bot implements the in-channel command surface: trusted users
// drive syncs and config pulls by talking to the bot where it sits.
package bot

import (
	"context"
	"errors"
	"strings"

	ircmsg "gopkg.in/irc.v4"

	"github.com/mwbots/ircservserv/internal/config"
	"github.com/mwbots/ircservserv/internal/irc"
	"github.com/mwbots/ircservserv/internal/logger"
	"github.com/mwbots/ircservserv/internal/service"
)

// Chat is the outbound surface the bot needs from the transport.
type Chat interface {
	irc.Messenger
	Join(ctx context.Context, channel string) error
}

// Puller updates the channel-config checkout and reports which channels
// changed. Satisfied by gitcfg.Repo.
type Puller interface {
	Pull(ctx context.Context) ([]string, error)
}

// Bot reacts to chat commands. Commands work only inside channels, and
// only for senders whose services account (IRCv3 account tag) is on the
// trusted or owners list; everyone else is silently ignored.
type Bot struct {
	chat   Chat
	syncs  service.ChannelSyncService
	puller Puller
	cfg    *config.StructuredConfig
	logger *logger.Logger
}

func NewBot(chat Chat, syncs service.ChannelSyncService, puller Puller, cfg *config.StructuredConfig, logger *logger.Logger) *Bot {
	return &Bot{
		chat:   chat,
		syncs:  syncs,
		puller: puller,
		cfg:    cfg,
		logger: logger,
	}
}

// Handler adapts the bot to the transport's message callback. Commands
// run on their own goroutine: a sync blocks on ChanServ replies, which
// arrive through the same read loop this handler is called from.
func (b *Bot) Handler(ctx context.Context) irc.MessageHandler {
	return func(msg *ircmsg.Message) {
		go b.dispatch(ctx, msg)
	}
}

// JoinChannels joins every configured channel. Called once after
// registration completes.
func (b *Bot) JoinChannels(ctx context.Context) error {
	channels, err := config.ListChannels(b.cfg.Channels.Dir)
	if err != nil {
		return err
	}

	for _, channel := range channels {
		if err := b.chat.Join(ctx, channel); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bot) dispatch(ctx context.Context, msg *ircmsg.Message) {
	if msg.Command != "PRIVMSG" || len(msg.Params) == 0 {
		return
	}
	channel := msg.Params[0]
	if !strings.HasPrefix(channel, "#") {
		return
	}

	command := strings.TrimSpace(msg.Trailing())
	account := msg.Tags["account"]

	switch command {
	case "!issync":
		if !b.trusted(account, command, channel) {
			return
		}
		b.syncOne(ctx, channel, channel)
	case "!isspull":
		if !b.trusted(account, command, channel) {
			return
		}
		b.pull(ctx, channel)
	case "!isstrust":
		if !b.trusted(account, command, channel) {
			return
		}
		b.reply(ctx, channel, "I trust: "+strings.Join(b.cfg.Trusted, ", "))
	}
}

func (b *Bot) trusted(account, command, channel string) bool {
	if b.cfg.IsTrusted(account, config.TrustTrusted) {
		b.logger.Info().Str("account", account).Str("channel", channel).Msgf("received %s", command)
		return true
	}

	b.logger.Debug().Str("account", account).Str("channel", channel).Msgf("ignoring %s from untrusted sender", command)
	return false
}

// syncOne syncs channel and relays the report lines to origin, which is
// the channel the command was said in.
func (b *Bot) syncOne(ctx context.Context, origin, channel string) {
	report, err := b.syncs.SyncChannel(ctx, channel)

	for _, line := range report.Lines {
		b.reply(ctx, origin, line)
	}

	switch {
	case err == nil:
	case errors.Is(err, service.ErrSyncInProgress):
		b.reply(ctx, origin, "A sync is already in progress for "+channel)
	case errors.Is(err, service.ErrChannelNotConfigured):
		b.reply(ctx, origin, "No configuration for "+channel)
	default:
		b.reply(ctx, origin, "Sync of "+channel+" failed: "+err.Error())
	}
}

func (b *Bot) pull(ctx context.Context, origin string) {
	changed, err := b.puller.Pull(ctx)
	if err != nil {
		b.logger.Error().Err(err).Msg("config pull failed")
		b.reply(ctx, origin, "Pull failed: "+err.Error())
		return
	}

	if len(changed) == 0 {
		b.reply(ctx, origin, "No channel configuration changes")
		return
	}

	for _, channel := range changed {
		b.syncOne(ctx, origin, channel)
	}
}

func (b *Bot) reply(ctx context.Context, target, text string) {
	if err := b.chat.Privmsg(ctx, target, text); err != nil {
		b.logger.Warn().Err(err).Str("target", target).Msg("error sending reply")
	}
}
