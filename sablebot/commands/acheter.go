package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/json"
	"github.com/marchanddesable/sablebot/sablebot"
	"github.com/marchanddesable/sablebot/sablebot/catalog"
	"github.com/marchanddesable/sablebot/sablebot/config"
	"github.com/marchanddesable/sablebot/sablebot/economy"
	"github.com/marchanddesable/sablebot/sablebot/utils"
	"github.com/sahilm/fuzzy"
)

var Acheter = discord.SlashCommandCreate{
	Name:        "acheter",
	Description: "🛒 Acheter un équipement de ta classe",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "categorie",
			Description: "Arme ou armure",
			Required:    true,
			Choices: []discord.ApplicationCommandOptionChoiceString{
				{Name: "⚔️ Arme", Value: string(catalog.CategoryArme)},
				{Name: "🛡️ Armure", Value: string(catalog.CategoryArmure)},
			},
		},
		discord.ApplicationCommandOptionInt{
			Name:        "numero",
			Description: "Le numéro de l'équipement dans la boutique (1 à 6)",
			Required:    false,
			MinValue:    utils.Ptr(1),
			MaxValue:    utils.Ptr(6),
		},
		discord.ApplicationCommandOptionString{
			Name:         "objet",
			Description:  "Ou son nom, si tu préfères",
			Required:     false,
			Autocomplete: true,
		},
	},
}

func AcheterHandler(b *sablebot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if ok, remaining := b.Cooldowns.Check(e.User().ID.String(), "acheter"); !ok {
			return utils.EH.CreateErrorEmbed(e, fmt.Sprintf("Doucement ! Réessaie dans %.0fs.", remaining.Seconds()))
		}
		b.Cooldowns.Set(e.User().ID.String(), "acheter", config.BuyCooldown)

		ctx, cancel := context.WithTimeout(context.Background(), config.CommandTimeout)
		defer cancel()

		data := e.SlashCommandInteractionData()
		category := catalog.Category(data.String("categorie"))

		tier, ok := data.OptInt("numero")
		if !ok {
			name, nameOK := data.OptString("objet")
			if !nameOK {
				return utils.EH.CreateErrorEmbed(e, "Indique le numéro ou le nom de l'équipement.")
			}
			profile, err := b.ProfileRepository.GetOrCreate(ctx, e.User().ID.String(), e.User().Username)
			if err != nil {
				return utils.EH.CreateErrorEmbed(e, "Impossible de traiter l'achat, réessaie plus tard.")
			}
			tier, ok = tierByName(profile.Classe, category, name)
			if !ok {
				return utils.EH.CreateErrorEmbed(e, fmt.Sprintf("Aucun équipement ne s'appelle **%s** dans ta boutique.", name))
			}
		}

		result, err := b.Economy.PurchaseEquipment(ctx, e.User().ID.String(), e.User().Username, category, tier)
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Impossible de traiter l'achat, réessaie plus tard.")
		}

		switch result.Rejection {
		case economy.RejectNoClass:
			return utils.EH.CreateErrorEmbed(e, "Choisis d'abord une classe avec `/classe choisir`.")
		case economy.RejectInvalidCategory:
			return utils.EH.CreateErrorEmbed(e, "Cette catégorie n'existe pas.")
		case economy.RejectInvalidTier:
			return utils.EH.CreateErrorEmbed(e, "Ce numéro n'existe pas dans la boutique (1 à 6).")
		case economy.RejectLevelTooLow:
			return utils.EH.CreateErrorEmbed(e, fmt.Sprintf(
				"**%s** demande le niveau **%d**. Continue à gagner de la puissance !",
				result.Item.Name, result.RequiredLevel))
		case economy.RejectInsufficientFunds:
			return utils.EH.CreateErrorEmbed(e, fmt.Sprintf(
				"Il te manque **%s** pour acheter **%s**.",
				utils.FormatSable(result.MissingSable), result.Item.Name))
		}

		description := fmt.Sprintf("Tu as acquis **%s** !\n\n⏳ Solde : %s\n⚡ Puissance : %d\n📊 Niveau : %d",
			result.Item.Name, utils.FormatSable(result.NewBalance), result.NewPower, result.NewLevel)
		if result.LeveledUp {
			description += fmt.Sprintf("\n\n🎉 **Niveau supérieur !** Te voilà niveau %d.", result.NewLevel)
		}
		description += formatNewAchievements(result.NewAchievements)

		return utils.EH.CreateSuccessEmbed(e, "🛒 Achat réussi", description)
	}
}

// AcheterAutocompleteHandler suggests item names from the player's own
// class and the selected category, fuzzy-matched on what they typed.
func AcheterAutocompleteHandler(b *sablebot.Bot) handler.AutocompleteHandler {
	return func(e *handler.AutocompleteEvent) error {
		focused := e.Data.Focused()
		if focused.Name != "objet" {
			return nil
		}

		var query string
		if focused.Value != nil {
			if err := json.Unmarshal(focused.Value, &query); err != nil {
				return e.AutocompleteResult([]discord.AutocompleteChoice{})
			}
		}
		query = strings.TrimSpace(query)

		ctx, cancel := context.WithTimeout(context.Background(), config.CommandTimeout)
		defer cancel()

		profile, err := b.ProfileRepository.GetOrCreate(ctx, e.User().ID.String(), e.User().Username)
		if err != nil || profile.Classe == "" {
			return e.AutocompleteResult([]discord.AutocompleteChoice{})
		}

		category := catalog.Category(e.Data.String("categorie"))
		items := catalog.Items(profile.Classe, category)
		if items == nil {
			// Category not picked yet; offer both.
			items = append(items, catalog.Items(profile.Classe, catalog.CategoryArme)...)
			items = append(items, catalog.Items(profile.Classe, catalog.CategoryArmure)...)
		}

		names := make([]string, len(items))
		for i, item := range items {
			names[i] = item.Name
		}

		shown := names
		if query != "" {
			matches := fuzzy.Find(query, names)
			shown = make([]string, 0, len(matches))
			for _, m := range matches {
				shown = append(shown, m.Str)
			}
		}

		choices := make([]discord.AutocompleteChoice, 0, min(len(shown), 25))
		for _, name := range shown {
			if len(choices) == 25 {
				break
			}
			choices = append(choices, discord.AutocompleteChoiceString{
				Name:  name,
				Value: name,
			})
		}
		return e.AutocompleteResult(choices)
	}
}

// tierByName maps an item name back to its 1-based shop number.
func tierByName(classe catalog.Class, category catalog.Category, name string) (int, bool) {
	for i, item := range catalog.Items(classe, category) {
		if strings.EqualFold(item.Name, name) {
			return i + 1, true
		}
	}
	return 0, false
}
