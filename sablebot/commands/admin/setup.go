package admin

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/marchanddesable/sablebot/sablebot"
	"github.com/marchanddesable/sablebot/sablebot/config"
	"github.com/marchanddesable/sablebot/sablebot/utils"
)

var Setup = discord.SlashCommandCreate{
	Name:        "setup-aventure",
	Description: "🏰 [Fondateur] Publier le message d'accueil de l'aventure dans ce salon",
}

func SetupHandler(b *sablebot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if e.User().ID != b.Cfg.Game.FondateurID {
			return utils.EH.CreateErrorEmbed(e, "Seul le fondateur peut installer l'accueil.")
		}

		_, err := b.Client.Rest().CreateMessage(e.ChannelID(), discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title: "🌙 Bienvenue au Royaume des Rêves",
				Description: "Le **Marchand de Sable** t'attend.\n\n" +
					"Clique sur le bouton pour ouvrir ton salon d'aventure personnel : " +
					"tu y choisiras ta classe, recevras ton premier équipement et apprendras à gagner du sable ⏳.",
				Color: config.PurpleColor,
			}},
			Components: []discord.ContainerComponent{
				discord.NewActionRow(
					discord.NewPrimaryButton("⚔️ Commencer l'aventure", "/aventure/start"),
				),
			},
		})
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Impossible de publier le message d'accueil.")
		}

		return utils.EH.CreateSuccessEmbed(e, "🏰 Accueil installé", "Le message d'aventure est en place dans ce salon.")
	}
}
