package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/marchanddesable/sablebot/sablebot"
	"github.com/marchanddesable/sablebot/sablebot/catalog"
	"github.com/marchanddesable/sablebot/sablebot/config"
	"github.com/marchanddesable/sablebot/sablebot/utils"
)

var Succes = discord.SlashCommandCreate{
	Name:        "succes",
	Description: "🏅 Voir tes succès débloqués et ceux qui t'attendent",
}

func SuccesHandler(b *sablebot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.CommandTimeout)
		defer cancel()

		profile, err := b.ProfileRepository.GetOrCreate(ctx, e.User().ID.String(), e.User().Username)
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Impossible de charger tes succès, réessaie plus tard.")
		}

		var earned, locked strings.Builder
		for _, a := range catalog.Achievements {
			line := fmt.Sprintf("%s **%s** — %s\n", a.Emoji, a.Name, a.Description)
			if profile.HasAchievement(a.ID) {
				earned.WriteString(line)
			} else {
				locked.WriteString(line)
			}
		}

		fields := make([]discord.EmbedField, 0, 2)
		if earned.Len() > 0 {
			fields = append(fields, discord.EmbedField{
				Name:  "✅ Débloqués",
				Value: earned.String(),
			})
		}
		if locked.Len() > 0 {
			fields = append(fields, discord.EmbedField{
				Name:  "🔒 À débloquer",
				Value: locked.String(),
			})
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title: fmt.Sprintf("🏅 Succès de %s — %d/%d",
					profile.Username, len(profile.Achievements), len(catalog.Achievements)),
				Fields: fields,
				Color:  config.InfoColor,
			}},
		})
	}
}
