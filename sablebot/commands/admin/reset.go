package admin

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/marchanddesable/sablebot/sablebot"
	"github.com/marchanddesable/sablebot/sablebot/config"
	"github.com/marchanddesable/sablebot/sablebot/utils"
)

var Reset = discord.SlashCommandCreate{
	Name:        "reset-saison",
	Description: "🔄 [Fondateur] Remettre tous les profils à zéro pour une nouvelle saison",
}

// pendingResets maps founder user id to the moment their confirmation
// window closes. A reset not confirmed in time silently lapses.
var pendingResets sync.Map

func ResetHandler(b *sablebot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if e.User().ID != b.Cfg.Game.FondateurID {
			return utils.EH.CreateErrorEmbed(e, "Seul le fondateur peut déclencher une nouvelle saison.")
		}

		pendingResets.Store(e.User().ID.String(), time.Now().Add(config.ResetConfirmWindow))

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title: "⚠️ Nouvelle saison",
				Description: fmt.Sprintf(
					"Tous les profils vont repartir de zéro : sable, classe, équipement, puissance et niveau.\n"+
						"Les **succès**, **étoiles de prestige** et **séries quotidiennes** sont conservés.\n\n"+
						"Confirme dans les **%.0f secondes**.", config.ResetConfirmWindow.Seconds()),
				Color: config.WarningColor,
			}},
			Components: []discord.ContainerComponent{
				discord.NewActionRow(
					discord.NewDangerButton("Confirmer la remise à zéro", "/reset/confirm"),
					discord.NewSecondaryButton("Annuler", "/reset/cancel"),
				),
			},
			Flags: discord.MessageFlagEphemeral,
		})
	}
}

func ResetConfirmHandler(b *sablebot.Bot) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		if e.User().ID != b.Cfg.Game.FondateurID {
			return utils.EH.CreateComponentError(e, "Seul le fondateur peut confirmer.")
		}

		deadline, ok := pendingResets.Load(e.User().ID.String())
		if !ok || time.Now().After(deadline.(time.Time)) {
			pendingResets.Delete(e.User().ID.String())
			return utils.EH.CreateComponentError(e, "La fenêtre de confirmation est passée. Relance `/reset-saison`.")
		}
		pendingResets.Delete(e.User().ID.String())

		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		result, err := b.Economy.SeasonReset(ctx)
		if err != nil {
			return utils.EH.CreateComponentError(e, "La remise à zéro a échoué, vérifie les journaux.")
		}

		return e.UpdateMessage(discord.MessageUpdate{
			Embeds: &[]discord.Embed{{
				Title: "🔄 Nouvelle saison lancée",
				Description: fmt.Sprintf("**%d profil(s)** remis à zéro. Bonne saison à tous les rêveurs !",
					result.ProfilesReset),
				Color: config.SuccessColor,
			}},
			Components: &[]discord.ContainerComponent{},
		})
	}
}

func ResetCancelHandler(b *sablebot.Bot) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		pendingResets.Delete(e.User().ID.String())
		return e.UpdateMessage(discord.MessageUpdate{
			Embeds: &[]discord.Embed{{
				Title:       "Remise à zéro annulée",
				Description: "Rien n'a été touché.",
				Color:       config.InfoColor,
			}},
			Components: &[]discord.ContainerComponent{},
		})
	}
}
