package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/events"
	"github.com/marchanddesable/sablebot/sablebot"
	"github.com/marchanddesable/sablebot/sablebot/config"
	"golang.org/x/sync/errgroup"
)

// MessageHandler credits the per-message sable gain for every non-bot guild
// message. Rejections (no class, gain too recent) are silent; only store
// failures get logged.
func MessageHandler(b *sablebot.Bot) bot.EventListener {
	return bot.NewListenerFunc(func(e *events.MessageCreate) {
		if e.Message.Author.Bot || e.Message.Author.System {
			return
		}
		if e.GuildID == nil {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.CommandTimeout)
		defer cancel()

		_, err := b.Economy.AccrueMessageReward(ctx,
			e.Message.Author.ID.String(),
			e.Message.Author.Username,
			time.Now())
		if err != nil {
			slog.Error("Failed to credit message reward",
				slog.String("user_id", e.Message.Author.ID.String()),
				slog.Any("error", err))
		}
	})
}

// MemberUpdateHandler watches for the boost edge: a member whose premium
// date flips from unset to set just boosted the server.
func MemberUpdateHandler(b *sablebot.Bot) bot.EventListener {
	return bot.NewListenerFunc(func(e *events.GuildMemberUpdate) {
		if e.OldMember.PremiumSince != nil || e.Member.PremiumSince == nil {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.CommandTimeout)
		defer cancel()

		_, err := b.Economy.AccrueBoostReward(ctx,
			e.Member.User.ID.String(),
			e.Member.User.Username)
		if err != nil {
			slog.Error("Failed to credit boost reward",
				slog.String("user_id", e.Member.User.ID.String()),
				slog.Any("error", err))
		}
	})
}

// VoiceStateHandler keeps the voice tracker in sync with the gateway. The
// actual reward is credited by the periodic voice tick, not here.
func VoiceStateHandler(b *sablebot.Bot) bot.EventListener {
	return bot.NewListenerFunc(func(e *events.GuildVoiceStateUpdate) {
		if e.Member.User.Bot {
			return
		}

		userID := e.VoiceState.UserID.String()
		if e.VoiceState.ChannelID == nil {
			b.VoiceTracker.Leave(userID)
			return
		}
		b.VoiceTracker.Join(userID, e.Member.User.Username)
	})
}

// VoiceTick credits one voice minute to every tracked member, fanned out
// over a bounded worker group. Wired to a one-minute scheduler job in main.
func VoiceTick(b *sablebot.Bot) func() {
	return func() {
		now := time.Now()
		var g errgroup.Group
		g.SetLimit(4)

		b.VoiceTracker.ForEach(func(userID, username string) {
			g.Go(func() error {
				ctx, cancel := context.WithTimeout(context.Background(), config.CommandTimeout)
				defer cancel()

				if _, err := b.Economy.AccrueVoiceReward(ctx, userID, username, now); err != nil {
					slog.Error("Failed to credit voice reward",
						slog.String("user_id", userID),
						slog.Any("error", err))
				}
				return nil
			})
		})
		_ = g.Wait()
	}
}
