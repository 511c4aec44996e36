package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/marchanddesable/sablebot/sablebot"
	"github.com/marchanddesable/sablebot/sablebot/catalog"
	"github.com/marchanddesable/sablebot/sablebot/config"
	"github.com/marchanddesable/sablebot/sablebot/database/models"
	"github.com/marchanddesable/sablebot/sablebot/database/repositories"
	"github.com/marchanddesable/sablebot/sablebot/utils"
)

var Profil = discord.SlashCommandCreate{
	Name:        "profil",
	Description: "📜 Voir le profil complet d'un rêveur",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "membre",
			Description: "Le rêveur à inspecter",
			Required:    false,
		},
	},
}

func ProfilHandler(b *sablebot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if ok, remaining := b.Cooldowns.Check(e.User().ID.String(), "profil"); !ok {
			return utils.EH.CreateErrorEmbed(e, fmt.Sprintf("Doucement ! Réessaie dans %.0fs.", remaining.Seconds()))
		}
		b.Cooldowns.Set(e.User().ID.String(), "profil", config.ProfileCooldown)

		ctx, cancel := context.WithTimeout(context.Background(), config.CommandTimeout)
		defer cancel()

		target := e.User()
		if member, ok := e.SlashCommandInteractionData().OptUser("membre"); ok {
			target = member
		}

		var profile *models.Profile
		var err error
		if target.ID == e.User().ID {
			profile, err = b.ProfileRepository.GetOrCreate(ctx, target.ID.String(), target.Username)
		} else {
			profile, err = b.ProfileRepository.Get(ctx, target.ID.String())
			if errors.Is(err, repositories.ErrProfileNotFound) {
				return utils.EH.CreateErrorEmbed(e, fmt.Sprintf("**%s** n'a pas encore rejoint le Royaume des Rêves.", target.Username))
			}
		}
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Impossible de charger ce profil, réessaie plus tard.")
		}

		classe := "Aucune"
		if profile.Classe != "" {
			classe = utils.FormatClasse(profile.Classe)
		}
		arme := "Aucune"
		if profile.Arme != "" {
			arme = profile.Arme
		}
		armure := "Aucune"
		if profile.Armure != "" {
			armure = profile.Armure
		}

		title := fmt.Sprintf("📜 Profil de %s", profile.Username)
		if profile.Prestige > 0 {
			title = fmt.Sprintf("%s %s", title, strings.Repeat("🌟", profile.Prestige))
		}

		nextThreshold := b.Economy.Calculator().NextLevelThreshold(profile.Niveau)

		now := time.Now()
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title: title,
				Color: classColor(profile.Classe),
				Fields: []discord.EmbedField{
					{Name: "⏳ Sable", Value: utils.FormatSable(profile.Sable), Inline: utils.Ptr(true)},
					{Name: "🎭 Classe", Value: classe, Inline: utils.Ptr(true)},
					{Name: "📊 Niveau", Value: fmt.Sprintf("%d", profile.Niveau), Inline: utils.Ptr(true)},
					{Name: "⚔️ Arme", Value: arme, Inline: utils.Ptr(true)},
					{Name: "🛡️ Armure", Value: armure, Inline: utils.Ptr(true)},
					{Name: "⚡ Puissance", Value: fmt.Sprintf("%d / %d", profile.Puissance, nextThreshold), Inline: utils.Ptr(true)},
					{Name: "💬 Messages", Value: fmt.Sprintf("%d", profile.MessagesEnvoyes), Inline: utils.Ptr(true)},
					{Name: "🎤 Vocal", Value: fmt.Sprintf("%d min", profile.TempsVocalMinutes), Inline: utils.Ptr(true)},
					{Name: "🏆 Succès", Value: fmt.Sprintf("%d / %d", len(profile.Achievements), len(catalog.Achievements)), Inline: utils.Ptr(true)},
				},
				Footer: &discord.EmbedFooter{
					Text: fmt.Sprintf("Rêveur depuis le %s", profile.DateCreation.Format("02/01/2006")),
				},
				Timestamp: &now,
			}},
		})
	}
}

func classColor(classe catalog.Class) int {
	if info, ok := catalog.Classes[classe]; ok {
		return info.RoleColor
	}
	return config.InfoColor
}
