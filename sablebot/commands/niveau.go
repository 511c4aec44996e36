package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/marchanddesable/sablebot/sablebot"
	"github.com/marchanddesable/sablebot/sablebot/config"
	"github.com/marchanddesable/sablebot/sablebot/utils"
)

var Niveau = discord.SlashCommandCreate{
	Name:        "niveau",
	Description: "📊 Voir ta progression vers le prochain niveau",
}

func NiveauHandler(b *sablebot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.CommandTimeout)
		defer cancel()

		profile, err := b.ProfileRepository.GetOrCreate(ctx, e.User().ID.String(), e.User().Username)
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Impossible de charger ta progression, réessaie plus tard.")
		}

		calc := b.Economy.Calculator()
		next := calc.NextLevelThreshold(profile.Niveau)
		bar := progressBar(profile.Puissance, next)

		description := fmt.Sprintf(
			"Niveau actuel : **%d**\nPuissance : **%d / %d**\n\n%s\n\nLa puissance vient de ton arme et de ton armure — passe à la `/boutique` !",
			profile.Niveau, profile.Puissance, next, bar)
		if profile.Prestige > 0 {
			description += fmt.Sprintf("\nPlancher de prestige : niveau %d %s",
				1+profile.Prestige, strings.Repeat("🌟", profile.Prestige))
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       "📊 Niveau",
				Description: description,
				Color:       classColor(profile.Classe),
			}},
		})
	}
}

func progressBar(current, target int64) string {
	const barLength = 12

	progress := 0.0
	if target > 0 {
		progress = float64(current) / float64(target)
	}
	if progress > 1 {
		progress = 1
	}
	filled := int(progress * barLength)

	var bar strings.Builder
	bar.WriteString("[")
	for i := 0; i < barLength; i++ {
		if i < filled {
			bar.WriteString("■")
		} else {
			bar.WriteString("□")
		}
	}
	bar.WriteString(fmt.Sprintf("] %.0f%%", progress*100))
	return bar.String()
}
