package commands

import (
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/marchanddesable/sablebot/sablebot"
	"github.com/marchanddesable/sablebot/sablebot/catalog"
	"github.com/marchanddesable/sablebot/sablebot/config"
)

var Aide = discord.SlashCommandCreate{
	Name:        "aide",
	Description: "❓ Comment fonctionne le Marchand de Sable",
}

func AideHandler(b *sablebot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title: "🌙 Le Marchand de Sable",
				Description: fmt.Sprintf(
					"Gagne du **sable** ⏳ en vivant sur le serveur, équipe-toi et grimpe les niveaux !\n\n"+
						"**Gains**\n"+
						"• %d sable par message\n"+
						"• %d sable par minute en vocal\n"+
						"• %d sable pour un boost du serveur\n"+
						"• `/daily` : %d sable + bonus de série\n",
					catalog.SablePerMessage, catalog.SablePerVoiceMinute,
					catalog.SablePerBoost, catalog.DailyBaseSable),
				Color: config.PurpleColor,
				Fields: []discord.EmbedField{
					{Name: "🎭 Commencer", Value: "`/classe choisir` puis explore la `/boutique` et `/acheter` ton équipement."},
					{Name: "📊 Progresser", Value: "Ta puissance (arme + armure) fixe ton niveau — `/niveau` pour suivre, `/prestige` au niveau 100."},
					{Name: "🏅 Te mesurer", Value: "`/classement`, `/stats`, `/succes`, `/profil`."},
				},
				Footer: &discord.EmbedFooter{
					Text: fmt.Sprintf("Le Marchand de Sable %s", b.Version),
				},
			}},
		})
	}
}
