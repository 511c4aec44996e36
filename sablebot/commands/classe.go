package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/marchanddesable/sablebot/sablebot"
	"github.com/marchanddesable/sablebot/sablebot/catalog"
	"github.com/marchanddesable/sablebot/sablebot/config"
	"github.com/marchanddesable/sablebot/sablebot/database/repositories"
	"github.com/marchanddesable/sablebot/sablebot/economy"
	"github.com/marchanddesable/sablebot/sablebot/utils"
)

var Classe = discord.SlashCommandCreate{
	Name:        "classe",
	Description: "🎭 Choisir ou abandonner ta classe",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionSubCommand{
			Name:        "choisir",
			Description: "Choisir ta classe de rêveur",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionString{
					Name:        "classe",
					Description: "La classe à embrasser",
					Required:    true,
					Choices: []discord.ApplicationCommandOptionChoiceString{
						{Name: "🛡️ Chevalier", Value: string(catalog.ClassChevalier)},
						{Name: "⚔️ Samouraï", Value: string(catalog.ClassSamourai)},
						{Name: "✨ Mage", Value: string(catalog.ClassMage)},
					},
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "retirer",
			Description: "Abandonner ta classe (les gains de sable s'arrêtent)",
		},
	},
}

func ClasseHandler(b *sablebot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		data := e.SlashCommandInteractionData()
		switch *data.SubCommandName {
		case "choisir":
			return handleClasseChoisir(b, e, catalog.Class(data.String("classe")))
		case "retirer":
			return handleClasseRetirer(b, e)
		default:
			return utils.EH.CreateErrorEmbed(e, "Sous-commande inconnue.")
		}
	}
}

func handleClasseChoisir(b *sablebot.Bot, e *handler.CommandEvent, classe catalog.Class) error {
	ctx, cancel := context.WithTimeout(context.Background(), config.CommandTimeout)
	defer cancel()

	result, err := b.Economy.SelectClass(ctx, e.User().ID.String(), e.User().Username, classe)
	if err != nil {
		return utils.EH.CreateErrorEmbed(e, "Impossible de choisir ta classe, réessaie plus tard.")
	}

	switch result.Rejection {
	case economy.RejectUnknownClass:
		return utils.EH.CreateErrorEmbed(e, "Cette classe n'existe pas dans le Royaume des Rêves.")
	case economy.RejectClassAlreadySet:
		return utils.EH.CreateErrorEmbed(e, fmt.Sprintf(
			"Tu es déjà **%s**. Utilise `/classe retirer` pour en changer.", utils.FormatClasse(result.Classe)))
	}

	if e.GuildID() != nil {
		if err := b.Provisioner.EnsureClassRole(*e.GuildID(), e.User().ID, classe); err != nil {
			// The class is set either way; the role is cosmetic.
			slog.Warn("Failed to assign class role",
				slog.String("user_id", e.User().ID.String()),
				slog.Any("error", err))
		}
	}

	info := catalog.Classes[classe]
	description := fmt.Sprintf("Te voilà **%s** ! *%s*\n\nTes messages et ta présence en vocal te rapportent désormais du sable.",
		utils.FormatClasse(classe), info.Description)
	description += formatNewAchievements(result.NewAchievements)

	return e.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Title:       "🎭 Classe choisie",
			Description: description,
			Color:       info.RoleColor,
		}},
	})
}

func handleClasseRetirer(b *sablebot.Bot, e *handler.CommandEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), config.CommandTimeout)
	defer cancel()

	result, err := b.Economy.RemoveClass(ctx, e.User().ID.String())
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return utils.EH.CreateErrorEmbed(e, "Tu n'as pas encore de profil.")
		}
		return utils.EH.CreateErrorEmbed(e, "Impossible de retirer ta classe, réessaie plus tard.")
	}
	if result.Rejection == economy.RejectNoClass {
		return utils.EH.CreateErrorEmbed(e, "Tu n'as pas de classe à retirer.")
	}

	if e.GuildID() != nil {
		b.Provisioner.RemoveClassRoles(*e.GuildID(), e.User().ID)
	}

	return utils.EH.CreateSuccessEmbed(e, "🎭 Classe retirée",
		fmt.Sprintf("Tu n'es plus **%s**. Ton équipement et ton sable restent, mais les gains s'arrêtent jusqu'à ton prochain choix.",
			utils.FormatClasse(result.Classe)))
}

// formatNewAchievements appends an unlocked-achievements block to a command
// response, empty when nothing was unlocked.
func formatNewAchievements(unlocked []catalog.Achievement) string {
	if len(unlocked) == 0 {
		return ""
	}
	out := "\n"
	for _, a := range unlocked {
		out += fmt.Sprintf("\n%s **Succès débloqué : %s** — %s", a.Emoji, a.Name, a.Description)
	}
	return out
}
