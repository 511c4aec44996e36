package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/marchanddesable/sablebot/sablebot"
	"github.com/marchanddesable/sablebot/sablebot/config"
	"github.com/marchanddesable/sablebot/sablebot/database/repositories"
	"github.com/marchanddesable/sablebot/sablebot/utils"
)

var Sable = discord.SlashCommandCreate{
	Name:        "sable",
	Description: "⏳ Voir ton sable (ou celui d'un autre rêveur)",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "membre",
			Description: "Le rêveur à inspecter",
			Required:    false,
		},
	},
}

func SableHandler(b *sablebot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.CommandTimeout)
		defer cancel()

		target := e.User()
		if member, ok := e.SlashCommandInteractionData().OptUser("membre"); ok {
			target = member
		}

		var description string
		if target.ID == e.User().ID {
			profile, err := b.ProfileRepository.GetOrCreate(ctx, target.ID.String(), target.Username)
			if err != nil {
				return utils.EH.CreateErrorEmbed(e, "Impossible de consulter ton sable, réessaie plus tard.")
			}
			description = fmt.Sprintf("Tu possèdes **%s**", utils.FormatSable(profile.Sable))
		} else {
			profile, err := b.ProfileRepository.Get(ctx, target.ID.String())
			if err != nil {
				if errors.Is(err, repositories.ErrProfileNotFound) {
					return utils.EH.CreateErrorEmbed(e, fmt.Sprintf("**%s** n'a pas encore rejoint le Royaume des Rêves.", target.Username))
				}
				return utils.EH.CreateErrorEmbed(e, "Impossible de consulter ce sable, réessaie plus tard.")
			}
			description = fmt.Sprintf("**%s** possède **%s**", profile.Username, utils.FormatSable(profile.Sable))
		}

		now := time.Now()
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       "⏳ Sable",
				Description: description,
				Color:       config.GoldColor,
				Footer: &discord.EmbedFooter{
					Text: fmt.Sprintf("Demandé par %s", e.User().Username),
				},
				Timestamp: &now,
			}},
		})
	}
}
