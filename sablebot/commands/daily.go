package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/marchanddesable/sablebot/sablebot"
	"github.com/marchanddesable/sablebot/sablebot/config"
	"github.com/marchanddesable/sablebot/sablebot/economy"
	"github.com/marchanddesable/sablebot/sablebot/utils"
)

var Daily = discord.SlashCommandCreate{
	Name:        "daily",
	Description: "🌙 Réclamer ton sable quotidien",
}

func DailyHandler(b *sablebot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.CommandTimeout)
		defer cancel()

		result, err := b.Economy.ApplyDailyLogin(ctx, e.User().ID.String(), e.User().Username, time.Now())
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Impossible de réclamer ton sable, réessaie plus tard.")
		}
		if result.Rejection == economy.RejectAlreadyClaimed {
			return utils.EH.CreateErrorEmbed(e, "Tu as déjà réclamé ton sable aujourd'hui. Reviens demain !")
		}

		description := fmt.Sprintf("Le Marchand t'offre **%s** !\n\n%s Série : **%d jour(s)**\n⏳ Solde : %s",
			utils.FormatSable(result.Bonus),
			utils.FormatStreak(result.Streak),
			result.Streak,
			utils.FormatSable(result.NewBalance))
		if result.Streak > 1 {
			description += "\n\nReviens chaque jour pour faire grandir ta série."
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       "🌙 Sable quotidien",
				Description: description,
				Color:       config.PurpleColor,
			}},
		})
	}
}
