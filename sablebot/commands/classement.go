package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/marchanddesable/sablebot/sablebot"
	"github.com/marchanddesable/sablebot/sablebot/config"
	"github.com/marchanddesable/sablebot/sablebot/utils"
)

var Classement = discord.SlashCommandCreate{
	Name:        "classement",
	Description: "🏆 Les rêveurs les plus puissants du royaume",
}

var rankMedals = []string{"🥇", "🥈", "🥉", "4.", "5."}

func ClassementHandler(b *sablebot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if ok, remaining := b.Cooldowns.Check(e.User().ID.String(), "classement"); !ok {
			return utils.EH.CreateErrorEmbed(e, fmt.Sprintf("Doucement ! Réessaie dans %.0fs.", remaining.Seconds()))
		}
		b.Cooldowns.Set(e.User().ID.String(), "classement", config.LeaderboardCooldown)

		ctx, cancel := context.WithTimeout(context.Background(), config.CommandTimeout)
		defer cancel()

		top, err := b.Economy.Leaderboard(ctx, config.LeaderboardSize)
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Impossible de charger le classement, réessaie plus tard.")
		}
		if len(top) == 0 {
			return utils.EH.CreateErrorEmbed(e, "Personne n'a encore de puissance. Sois le premier !")
		}

		var description strings.Builder
		for i, profile := range top {
			medal := fmt.Sprintf("%d.", i+1)
			if i < len(rankMedals) {
				medal = rankMedals[i]
			}
			classe := ""
			if profile.Classe != "" {
				classe = " — " + utils.FormatClasse(profile.Classe)
			}
			prestige := ""
			if profile.Prestige > 0 {
				prestige = " " + strings.Repeat("🌟", profile.Prestige)
			}
			description.WriteString(fmt.Sprintf("%s **%s**%s%s\n⚡ %d puissance • niveau %d\n\n",
				medal, profile.Username, prestige, classe, profile.Puissance, profile.Niveau))
		}

		now := time.Now()
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       "🏆 Classement du Royaume des Rêves",
				Description: description.String(),
				Color:       config.GoldColor,
				Timestamp:   &now,
			}},
		})
	}
}
