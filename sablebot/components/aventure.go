package components

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/marchanddesable/sablebot/sablebot"
	"github.com/marchanddesable/sablebot/sablebot/config"
	"github.com/marchanddesable/sablebot/sablebot/tutorial"
	"github.com/marchanddesable/sablebot/sablebot/utils"
)

// StartAdventureHandler answers the welcome-message button: it provisions a
// private channel, opens the onboarding ticket and posts the first tutorial
// step there.
func StartAdventureHandler(b *sablebot.Bot) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		if e.GuildID() == nil {
			return utils.EH.CreateComponentError(e, "L'aventure ne commence que sur le serveur.")
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		userID := e.User().ID.String()

		// Re-clicking with an open adventure just points back at it.
		if existing, err := b.Tutorial.Ticket(ctx, userID); err == nil && !existing.Archive {
			return utils.EH.CreateComponentError(e,
				fmt.Sprintf("Ton aventure est déjà ouverte : <#%s>", existing.ChannelID))
		}

		channelID, err := b.Provisioner.CreateAdventureChannel(*e.GuildID(), e.User().ID, e.User().Username)
		if err != nil {
			slog.Error("Failed to provision adventure channel",
				slog.String("user_id", userID),
				slog.Any("error", err))
			return utils.EH.CreateComponentError(e, "Impossible d'ouvrir ton salon d'aventure, réessaie plus tard.")
		}

		result, err := b.Tutorial.Begin(ctx, userID, channelID.String())
		if err != nil {
			return utils.EH.CreateComponentError(e, "Impossible de démarrer ton aventure, réessaie plus tard.")
		}
		if result.Rejection == tutorial.RejectActiveTicket {
			return utils.EH.CreateComponentError(e,
				fmt.Sprintf("Ton aventure est déjà ouverte : <#%s>", result.Ticket.ChannelID))
		}

		if _, err := b.Client.Rest().CreateMessage(channelID, stepMessage(b, result.Ticket.TutorielEtape, e.User().Username)); err != nil {
			slog.Error("Failed to post tutorial step",
				slog.String("user_id", userID),
				slog.Any("error", err))
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       "⚔️ Aventure lancée !",
				Description: fmt.Sprintf("Ton salon t'attend : <#%s>", channelID),
				Color:       config.SuccessColor,
			}},
			Flags: discord.MessageFlagEphemeral,
		})
	}
}
