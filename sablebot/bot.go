package sablebot

import (
	"context"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/cache"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/paginator"
	"github.com/marchanddesable/sablebot/sablebot/database/repositories"
	"github.com/marchanddesable/sablebot/sablebot/economy"
	"github.com/marchanddesable/sablebot/sablebot/economy/cooldown"
	"github.com/marchanddesable/sablebot/sablebot/provision"
	"github.com/marchanddesable/sablebot/sablebot/tutorial"
	"github.com/marchanddesable/sablebot/sablebot/voice"
)

func New(cfg Config, version string, commit string) *Bot {
	return &Bot{
		Cfg:       cfg,
		Paginator: paginator.New(),
		Version:   version,
		Commit:    commit,
	}
}

type Bot struct {
	Cfg       Config
	Client    bot.Client
	Paginator *paginator.Manager
	Version   string
	Commit    string

	ProfileRepository repositories.ProfileRepository
	TicketRepository  repositories.TicketRepository
	Economy           *economy.Service
	Tutorial          *tutorial.Service
	Cooldowns         *cooldown.Manager
	Provisioner       *provision.Provisioner
	VoiceTracker      *voice.Tracker
}

func (b *Bot) SetupBot(listeners ...bot.EventListener) error {
	client, err := disgo.New(b.Cfg.Bot.Token,
		bot.WithGatewayConfigOpts(gateway.WithIntents(
			gateway.IntentGuilds,
			gateway.IntentGuildMessages,
			gateway.IntentMessageContent,
			gateway.IntentGuildMembers,
			gateway.IntentGuildVoiceStates,
		)),
		bot.WithCacheConfigOpts(cache.WithCaches(cache.FlagGuilds, cache.FlagMembers, cache.FlagVoiceStates)),
		bot.WithEventListeners(b.Paginator),
		bot.WithEventListeners(listeners...),
	)
	if err != nil {
		return err
	}

	b.Client = client
	b.Provisioner = provision.New(client, b.Cfg.Game.TicketsCategoryID)
	return nil
}

func (b *Bot) OnReady(_ *events.Ready) {
	slog.Info("Le Marchand de Sable is now ready",
		slog.String("version", b.Version),
		slog.String("commit", b.Commit))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := b.Client.SetPresence(ctx,
		gateway.WithWatchingActivity("le Royaume des Rêves 🌙"),
		gateway.WithOnlineStatus(discord.OnlineStatusOnline)); err != nil {
		slog.Error("Failed to set presence", slog.Any("error", err))
	}
}
