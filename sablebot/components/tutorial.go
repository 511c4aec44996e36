package components

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/marchanddesable/sablebot/sablebot"
	"github.com/marchanddesable/sablebot/sablebot/catalog"
	"github.com/marchanddesable/sablebot/sablebot/config"
	"github.com/marchanddesable/sablebot/sablebot/database/models"
	"github.com/marchanddesable/sablebot/sablebot/economy"
	"github.com/marchanddesable/sablebot/sablebot/tutorial"
	"github.com/marchanddesable/sablebot/sablebot/utils"
)

// NextStepHandler advances the clicking user's own onboarding by one step
// and posts the new step in the adventure channel.
func NextStepHandler(b *sablebot.Bot) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		result, err := b.Tutorial.Advance(ctx, e.User().ID.String(), e.User().Username)
		if err != nil {
			return utils.EH.CreateComponentError(e, "Impossible d'avancer, réessaie plus tard.")
		}

		switch result.Rejection {
		case tutorial.RejectNoTicket:
			return utils.EH.CreateComponentError(e, "Ce n'est pas ton aventure — lance la tienne depuis le message d'accueil !")
		case tutorial.RejectArchived:
			return utils.EH.CreateComponentError(e, "Cette aventure est terminée et archivée.")
		case tutorial.RejectCompleted:
			return utils.EH.CreateComponentError(e, "Tu as déjà fini le tutoriel !")
		}

		msg := stepMessage(b, result.Step, e.User().Username)
		msg.Embeds[0].Description += grantBlock(result)
		return e.CreateMessage(msg)
	}
}

// ClassPickHandler handles the class buttons shown at step 2: it sets the
// class, hands out the guild role and rolls the tutorial into step 3.
func ClassPickHandler(b *sablebot.Bot, classe catalog.Class) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		ticket, err := b.Tutorial.Ticket(ctx, e.User().ID.String())
		if err != nil || ticket.Archive {
			return utils.EH.CreateComponentError(e, "Ce n'est pas ton aventure — lance la tienne depuis le message d'accueil !")
		}

		selected, err := b.Economy.SelectClass(ctx, e.User().ID.String(), e.User().Username, classe)
		if err != nil {
			return utils.EH.CreateComponentError(e, "Impossible de choisir ta classe, réessaie plus tard.")
		}
		if selected.Rejection == economy.RejectClassAlreadySet {
			return utils.EH.CreateComponentError(e, fmt.Sprintf(
				"Tu es déjà **%s**.", utils.FormatClasse(selected.Classe)))
		}

		if e.GuildID() != nil {
			if err := b.Provisioner.EnsureClassRole(*e.GuildID(), e.User().ID, classe); err != nil {
				slog.Warn("Failed to assign class role",
					slog.String("user_id", e.User().ID.String()),
					slog.Any("error", err))
			}
		}

		result, err := b.Tutorial.Advance(ctx, e.User().ID.String(), e.User().Username)
		if err != nil {
			return utils.EH.CreateComponentError(e, "Impossible d'avancer, réessaie plus tard.")
		}

		msg := stepMessage(b, result.Step, e.User().Username)
		msg.Embeds[0].Description = fmt.Sprintf("Te voilà **%s** !\n\n", utils.FormatClasse(classe)) +
			msg.Embeds[0].Description + grantBlock(result)
		return e.CreateMessage(msg)
	}
}

// CloseAdventureHandler archives the ticket and removes the private channel.
func CloseAdventureHandler(b *sablebot.Bot) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		ticket, err := b.Tutorial.Archive(ctx, e.User().ID.String())
		if err != nil {
			return utils.EH.CreateComponentError(e, "Ce n'est pas ton aventure.")
		}

		if err := e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       "🌙 À bientôt, rêveur",
				Description: "Ton aventure est archivée. Ce salon va disparaître...",
				Color:       config.PurpleColor,
			}},
		}); err != nil {
			return err
		}

		if err := b.Client.Rest().DeleteChannel(e.ChannelID()); err != nil {
			slog.Warn("Failed to delete adventure channel",
				slog.String("channel_id", ticket.ChannelID),
				slog.Any("error", err))
		}
		return nil
	}
}

// grantBlock renders what a step transition handed out, empty when nothing.
func grantBlock(result tutorial.AdvanceResult) string {
	out := ""
	if result.GrantedArme != nil {
		out += fmt.Sprintf("\n\n🎁 Tu reçois **%s** (puissance +%d) !",
			result.GrantedArme.Name, result.GrantedArme.Power)
	}
	if result.GrantedSable > 0 {
		out += fmt.Sprintf("\n💰 Le Marchand t'offre **%s**.", utils.FormatSable(result.GrantedSable))
	}
	return out
}

// stepMessage builds the embed and buttons for a tutorial step.
func stepMessage(b *sablebot.Bot, step int, username string) discord.MessageCreate {
	next := discord.NewActionRow(
		discord.NewPrimaryButton("Continuer ➡️", "/aventure/next"),
	)

	switch step {
	case 1:
		return discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title: fmt.Sprintf("🌙 Bienvenue, %s — Étape 1/%d", username, models.TicketLastStep),
				Description: "Je suis le **Marchand de Sable**, gardien du Royaume des Rêves.\n\n" +
					"Ici, chaque message, chaque minute passée en vocal fait couler du **sable** ⏳ dans ta bourse. " +
					"Ce sable t'achètera armes et armures, et ta **puissance** fera grimper ton **niveau**.\n\n" +
					"Prêt à apprendre ?",
				Color: config.PurpleColor,
			}},
			Components: []discord.ContainerComponent{next},
		}
	case 2:
		return discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       fmt.Sprintf("🎭 Choisis ta voie — Étape 2/%d", models.TicketLastStep),
				Description: classChoiceText(),
				Color:       config.InfoColor,
			}},
			Components: []discord.ContainerComponent{
				discord.NewActionRow(
					discord.NewSecondaryButton("🛡️ Chevalier", "/aventure/classe/chevalier"),
					discord.NewSecondaryButton("⚔️ Samouraï", "/aventure/classe/samourai"),
					discord.NewSecondaryButton("✨ Mage", "/aventure/classe/mage"),
				),
			},
		}
	case 3:
		return discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title: fmt.Sprintf("🎁 Ton premier équipement — Étape 3/%d", models.TicketLastStep),
				Description: "Un aventurier ne part jamais les mains vides. " +
					"Garde ton arme de départ précieusement — la `/boutique` t'en vendra de bien meilleures.",
				Color: config.SuccessColor,
			}},
			Components: []discord.ContainerComponent{next},
		}
	case 4:
		return discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title: fmt.Sprintf("⏳ Gagner du sable — Étape 4/%d", models.TicketLastStep),
				Description: fmt.Sprintf(
					"• **%d** sable par message envoyé\n"+
						"• **%d** sable par minute en vocal\n"+
						"• **%d** sable si tu boostes le serveur\n"+
						"• `/daily` chaque jour : **%d** sable plus un bonus de série 🔥",
					catalog.SablePerMessage, catalog.SablePerVoiceMinute,
					catalog.SablePerBoost, catalog.DailyBaseSable),
				Color: config.GoldColor,
			}},
			Components: []discord.ContainerComponent{next},
		}
	case 5:
		return discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title: fmt.Sprintf("📊 Boutique et niveaux — Étape 5/%d", models.TicketLastStep),
				Description: "La `/boutique` propose **6 armes** et **6 armures** à ta classe, de plus en plus puissantes. " +
					"Ta puissance totale fixe ton niveau (`/niveau`), certains équipements demandent un niveau minimum.\n\n" +
					fmt.Sprintf("Au niveau **%d**, le `/prestige` te fera renaître avec une étoile 🌟.", catalog.PrestigeLevel),
				Color: config.InfoColor,
			}},
			Components: []discord.ContainerComponent{next},
		}
	default:
		return discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title: fmt.Sprintf("🏰 Ton aventure commence — Étape %d/%d", models.TicketLastStep, models.TicketLastStep),
				Description: "Tu sais tout, rêveur. Va, discute, combats, équipe-toi — le Royaume des Rêves est à toi.\n\n" +
					"Retrouve-moi avec `/aide` si ta mémoire te joue des tours.",
				Color: config.GoldColor,
			}},
			Components: []discord.ContainerComponent{
				discord.NewActionRow(
					discord.NewSuccessButton("🌙 Terminer l'aventure", "/aventure/close"),
				),
			},
		}
	}
}

func classChoiceText() string {
	out := "Trois voies s'offrent à toi :\n\n"
	for _, classe := range catalog.ClassNames {
		info := catalog.Classes[classe]
		out += fmt.Sprintf("%s **%s** — *%s*\n", info.Emoji, utils.Capitalize(string(classe)), info.Description)
	}
	out += "\nChaque classe a son propre arsenal. Choisis avec ton cœur."
	return out
}
