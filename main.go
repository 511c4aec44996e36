package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"
	"github.com/go-co-op/gocron/v2"
	"github.com/marchanddesable/sablebot/sablebot"
	"github.com/marchanddesable/sablebot/sablebot/catalog"
	"github.com/marchanddesable/sablebot/sablebot/commands"
	"github.com/marchanddesable/sablebot/sablebot/commands/admin"
	"github.com/marchanddesable/sablebot/sablebot/components"
	"github.com/marchanddesable/sablebot/sablebot/config"
	"github.com/marchanddesable/sablebot/sablebot/database"
	"github.com/marchanddesable/sablebot/sablebot/database/models"
	"github.com/marchanddesable/sablebot/sablebot/database/repositories"
	"github.com/marchanddesable/sablebot/sablebot/economy"
	"github.com/marchanddesable/sablebot/sablebot/economy/cooldown"
	"github.com/marchanddesable/sablebot/sablebot/handlers"
	"github.com/marchanddesable/sablebot/sablebot/logger"
	"github.com/marchanddesable/sablebot/sablebot/tutorial"
	"github.com/marchanddesable/sablebot/sablebot/voice"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	customHandler := logger.NewHandler()
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting Le Marchand de Sable",
		slog.String("version", version),
		slog.String("commit", commit))

	shouldSyncCommands := flag.Bool("sync-commands", false, "Whether to sync commands to discord")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := sablebot.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}
	slog.Info("Configuration loaded successfully")

	b := sablebot.New(*cfg, version, commit)

	profileStore := database.NewStore[models.Profile](cfg.Game.ProfilesPath)
	ticketStore := database.NewStore[models.Ticket](cfg.Game.TicketsPath)

	b.ProfileRepository = repositories.NewProfileRepository(profileStore)
	b.TicketRepository = repositories.NewTicketRepository(ticketStore)
	b.Economy = economy.NewService(b.ProfileRepository)
	b.Tutorial = tutorial.NewService(b.TicketRepository, b.Economy)
	b.VoiceTracker = voice.NewTracker()

	b.Cooldowns = cooldown.NewManager()
	b.Cooldowns.StartCleanupRoutine(context.Background())

	h := handler.New()

	// Player commands
	h.Command("/sable", handlers.WrapWithLogging("sable", commands.SableHandler(b)))
	h.Command("/profil", handlers.WrapWithLogging("profil", commands.ProfilHandler(b)))
	h.Command("/classe", handlers.WrapWithLogging("classe", commands.ClasseHandler(b)))
	h.Command("/boutique", handlers.WrapWithLogging("boutique", commands.BoutiqueHandler(b)))
	h.Command("/acheter", handlers.WrapWithLogging("acheter", commands.AcheterHandler(b)))
	h.Autocomplete("/acheter", commands.AcheterAutocompleteHandler(b))
	h.Command("/classement", handlers.WrapWithLogging("classement", commands.ClassementHandler(b)))
	h.Command("/daily", handlers.WrapWithLogging("daily", commands.DailyHandler(b)))
	h.Command("/prestige", handlers.WrapWithLogging("prestige", commands.PrestigeHandler(b)))
	h.Command("/succes", handlers.WrapWithLogging("succes", commands.SuccesHandler(b)))
	h.Command("/niveau", handlers.WrapWithLogging("niveau", commands.NiveauHandler(b)))
	h.Command("/stats", handlers.WrapWithLogging("stats", commands.StatsHandler(b)))
	h.Command("/aide", handlers.WrapWithLogging("aide", commands.AideHandler(b)))

	// Founder commands
	h.Command("/reset-saison", handlers.WrapWithLogging("reset-saison", admin.ResetHandler(b)))
	h.Component("/reset/confirm", handlers.WrapComponentWithLogging("reset-confirm", admin.ResetConfirmHandler(b)))
	h.Component("/reset/cancel", handlers.WrapComponentWithLogging("reset-cancel", admin.ResetCancelHandler(b)))
	h.Command("/setup-aventure", handlers.WrapWithLogging("setup-aventure", admin.SetupHandler(b)))

	// Onboarding flow
	h.Component("/aventure/start", handlers.WrapComponentWithLogging("aventure-start", components.StartAdventureHandler(b)))
	h.Component("/aventure/next", handlers.WrapComponentWithLogging("aventure-next", components.NextStepHandler(b)))
	h.Component("/aventure/close", handlers.WrapComponentWithLogging("aventure-close", components.CloseAdventureHandler(b)))
	for _, classe := range catalog.ClassNames {
		h.Component("/aventure/classe/"+string(classe),
			handlers.WrapComponentWithLogging("aventure-classe", components.ClassPickHandler(b, classe)))
	}

	if err = b.SetupBot(h,
		bot.NewListenerFunc(b.OnReady),
		handlers.MessageHandler(b),
		handlers.MemberUpdateHandler(b),
		handlers.VoiceStateHandler(b),
	); err != nil {
		slog.Error("Failed to setup bot",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("status", "failed"),
		)
		os.Exit(-1)
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		b.Client.Close(ctx)
	}()

	// Voice minutes tick on a fixed schedule, independent of gateway traffic.
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		slog.Error("Failed to create scheduler", slog.Any("error", err))
		os.Exit(-1)
	}
	if _, err = scheduler.NewJob(
		gocron.DurationJob(config.VoiceTickInterval),
		gocron.NewTask(handlers.VoiceTick(b)),
	); err != nil {
		slog.Error("Failed to schedule voice tick", slog.Any("error", err))
		os.Exit(-1)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Shutdown(); err != nil {
			slog.Error("Failed to stop scheduler", slog.Any("error", err))
		}
	}()

	if *shouldSyncCommands {
		slog.Info("Syncing commands",
			slog.String("type", "sys"),
			slog.Any("guild_ids", cfg.Bot.DevGuilds),
		)
		if err = handler.SyncCommands(b.Client, commands.Commands, cfg.Bot.DevGuilds); err != nil {
			slog.Error("Failed to sync commands",
				slog.String("type", "sys"),
				slog.Any("error", err),
				slog.String("status", "failed"),
			)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err = b.Client.OpenGateway(ctx); err != nil {
		slog.Error("Failed to open gateway",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("status", "failed"),
		)
		os.Exit(-1)
	}

	slog.Info("Le Marchand de Sable is running. Press CTRL-C to exit.")
	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s
	slog.Info("Shutting down bot...")
}
