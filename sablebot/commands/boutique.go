package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"
	"github.com/marchanddesable/sablebot/sablebot"
	"github.com/marchanddesable/sablebot/sablebot/catalog"
	"github.com/marchanddesable/sablebot/sablebot/config"
	"github.com/marchanddesable/sablebot/sablebot/utils"
)

var Boutique = discord.SlashCommandCreate{
	Name:        "boutique",
	Description: "🏪 Parcourir les équipements de ta classe",
}

// Shop pages: one per category. Navigation is handled by the shared
// paginator listener.
var boutiquePages = []catalog.Category{catalog.CategoryArme, catalog.CategoryArmure}

func BoutiqueHandler(b *sablebot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if ok, remaining := b.Cooldowns.Check(e.User().ID.String(), "boutique"); !ok {
			return utils.EH.CreateErrorEmbed(e, fmt.Sprintf("Doucement ! Réessaie dans %.0fs.", remaining.Seconds()))
		}
		b.Cooldowns.Set(e.User().ID.String(), "boutique", config.ShopCooldown)

		ctx, cancel := context.WithTimeout(context.Background(), config.CommandTimeout)
		defer cancel()

		profile, err := b.ProfileRepository.GetOrCreate(ctx, e.User().ID.String(), e.User().Username)
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Impossible d'ouvrir la boutique, réessaie plus tard.")
		}
		if profile.Classe == "" {
			return utils.EH.CreateErrorEmbed(e, "Choisis d'abord une classe avec `/classe choisir` pour voir ta boutique.")
		}

		classe := profile.Classe
		sable := profile.Sable
		niveau := profile.Niveau

		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				category := boutiquePages[page]
				items := catalog.Items(classe, category)

				var description strings.Builder
				description.WriteString(fmt.Sprintf("Boutique de **%s** — tu possèdes %s\n\n",
					utils.FormatClasse(classe), utils.FormatSable(sable)))

				for i, item := range items {
					marker := "🔓"
					if item.MinLevel > niveau {
						marker = fmt.Sprintf("🔒 niveau %d requis", item.MinLevel)
					}
					description.WriteString(fmt.Sprintf("**%d. %s**\n%s • puissance +%d • %s\n\n",
						i+1, item.Name, utils.FormatSable(item.Cost), item.Power, marker))
				}
				description.WriteString("Achète avec `/acheter`.")

				embed.SetTitle(fmt.Sprintf("🏪 %s", categoryTitle(category))).
					SetDescription(description.String()).
					SetColor(classColor(classe)).
					SetFooter(fmt.Sprintf("Page %d/%d", page+1, len(boutiquePages)), "")
			},
			Pages:      len(boutiquePages),
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, false)
	}
}

func categoryTitle(category catalog.Category) string {
	switch category {
	case catalog.CategoryArme:
		return "Armes"
	case catalog.CategoryArmure:
		return "Armures"
	default:
		return string(category)
	}
}
