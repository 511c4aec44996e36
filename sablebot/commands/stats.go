package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/marchanddesable/sablebot/sablebot"
	"github.com/marchanddesable/sablebot/sablebot/config"
	"github.com/marchanddesable/sablebot/sablebot/utils"
)

var Stats = discord.SlashCommandCreate{
	Name:        "stats",
	Description: "📈 Les statistiques du Royaume des Rêves",
}

func StatsHandler(b *sablebot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.CommandTimeout)
		defer cancel()

		stats, err := b.Economy.Stats(ctx)
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Impossible de charger les statistiques, réessaie plus tard.")
		}
		if stats.Players == 0 {
			return utils.EH.CreateErrorEmbed(e, "Le royaume est encore désert.")
		}

		popular := "Aucune"
		if stats.PopularClass != "" {
			popular = fmt.Sprintf("%s (%d rêveurs)", utils.FormatClasse(stats.PopularClass), stats.PopularClassCount)
		}

		now := time.Now()
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title: "📈 Statistiques du Royaume",
				Color: config.InfoColor,
				Fields: []discord.EmbedField{
					{Name: "👥 Rêveurs", Value: fmt.Sprintf("%d", stats.Players), Inline: utils.Ptr(true)},
					{Name: "⏳ Sable total", Value: fmt.Sprintf("%d", stats.TotalSable), Inline: utils.Ptr(true)},
					{Name: "⚡ Puissance totale", Value: fmt.Sprintf("%d", stats.TotalPower), Inline: utils.Ptr(true)},
					{Name: "💬 Messages", Value: fmt.Sprintf("%d", stats.TotalMessages), Inline: utils.Ptr(true)},
					{Name: "🎤 Minutes vocales", Value: fmt.Sprintf("%d", stats.TotalVocal), Inline: utils.Ptr(true)},
					{Name: "📊 Niveau moyen", Value: fmt.Sprintf("%.1f", stats.MeanLevel), Inline: utils.Ptr(true)},
					{Name: "🎭 Classe favorite", Value: popular, Inline: utils.Ptr(true)},
					{Name: "💰 Plus riche", Value: fmt.Sprintf("%s (%s)", stats.RichestName, utils.FormatSable(stats.RichestSable)), Inline: utils.Ptr(true)},
					{Name: "🔥 Plus puissant", Value: fmt.Sprintf("%s (%d)", stats.StrongestName, stats.StrongestPower), Inline: utils.Ptr(true)},
				},
				Timestamp: &now,
			}},
		})
	}
}
