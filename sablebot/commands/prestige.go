package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/marchanddesable/sablebot/sablebot"
	"github.com/marchanddesable/sablebot/sablebot/catalog"
	"github.com/marchanddesable/sablebot/sablebot/config"
	"github.com/marchanddesable/sablebot/sablebot/database/repositories"
	"github.com/marchanddesable/sablebot/sablebot/economy"
	"github.com/marchanddesable/sablebot/sablebot/utils"
)

var Prestige = discord.SlashCommandCreate{
	Name:        "prestige",
	Description: "🌟 Renaître au niveau 100 et gagner une étoile de prestige",
}

func PrestigeHandler(b *sablebot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.CommandTimeout)
		defer cancel()

		result, err := b.Economy.ApplyPrestige(ctx, e.User().ID.String())
		if err != nil {
			if errors.Is(err, repositories.ErrProfileNotFound) {
				return utils.EH.CreateErrorEmbed(e, "Tu n'as pas encore de profil.")
			}
			return utils.EH.CreateErrorEmbed(e, "Impossible d'appliquer le prestige, réessaie plus tard.")
		}
		if result.Rejection == economy.RejectLevelTooLow {
			return utils.EH.CreateErrorEmbed(e, fmt.Sprintf(
				"Le prestige demande le niveau **%d** — tu es niveau **%d**.",
				result.RequiredLevel, result.OldLevel))
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title: "🌟 Prestige !",
				Description: fmt.Sprintf(
					"Tu renais avec l'étoile **%s** !\n\nTon équipement et ta puissance repartent de zéro, ton sable retombe à %s, mais ton niveau plancher est désormais **%d**.",
					strings.Repeat("🌟", result.Prestige),
					utils.FormatSable(catalog.StartingSable),
					result.NewLevel),
				Color: config.GoldColor,
			}},
		})
	}
}
