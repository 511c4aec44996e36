package catalog

// Achievement conditions are plain data interpreted by the progression
// package, never executable logic.

type ConditionKind int

const (
	// ConditionFieldSet is satisfied when the named field holds a value.
	ConditionFieldSet ConditionKind = iota
	// ConditionThreshold is satisfied when the named field reaches Threshold.
	ConditionThreshold
	// ConditionCountAtLeast is ConditionThreshold for activity counters.
	ConditionCountAtLeast
)

// ConditionField names the profile field a condition reads.
type ConditionField string

const (
	FieldClasse         ConditionField = "classe"
	FieldEquipped       ConditionField = "equipped"
	FieldSable          ConditionField = "sable"
	FieldSableDepense   ConditionField = "sable_depense"
	FieldNiveau         ConditionField = "niveau"
	FieldMessages       ConditionField = "messages_envoyes"
	FieldVocalMinutes   ConditionField = "temps_vocal_minutes"
	FieldBoosts         ConditionField = "boosts"
	FieldEquipmentCount ConditionField = "equipment_count"
)

type Achievement struct {
	ID          string
	Name        string
	Emoji       string
	Description string
	Kind        ConditionKind
	Field       ConditionField
	Threshold   int64
}

var Achievements = []Achievement{
	{
		ID:          "first_steps",
		Name:        "Premiers pas",
		Emoji:       "👣",
		Description: "Choisir une classe",
		Kind:        ConditionFieldSet,
		Field:       FieldClasse,
	},
	{
		ID:          "collector",
		Name:        "Collectionneur",
		Emoji:       "🎁",
		Description: "Acheter son premier équipement",
		Kind:        ConditionFieldSet,
		Field:       FieldEquipped,
	},
	{
		ID:          "spender",
		Name:        "Dépensier",
		Emoji:       "💸",
		Description: "Dépenser 1000 sable",
		Kind:        ConditionThreshold,
		Field:       FieldSableDepense,
		Threshold:   1000,
	},
	{
		ID:          "wealthy",
		Name:        "Riche",
		Emoji:       "💰",
		Description: "Accumuler 10,000 sable",
		Kind:        ConditionThreshold,
		Field:       FieldSable,
		Threshold:   10000,
	},
	{
		ID:          "powerful",
		Name:        "Puissant",
		Emoji:       "⚡",
		Description: "Atteindre le niveau 5",
		Kind:        ConditionThreshold,
		Field:       FieldNiveau,
		Threshold:   5,
	},
	{
		ID:          "legendary",
		Name:        "Légendaire",
		Emoji:       "👑",
		Description: "Atteindre le niveau 20",
		Kind:        ConditionThreshold,
		Field:       FieldNiveau,
		Threshold:   20,
	},
	{
		ID:          "talker",
		Name:        "Bavard",
		Emoji:       "💬",
		Description: "Envoyer 100 messages",
		Kind:        ConditionCountAtLeast,
		Field:       FieldMessages,
		Threshold:   100,
	},
	{
		ID:          "voice_master",
		Name:        "Maître du vocal",
		Emoji:       "🎤",
		Description: "Passer 1 heure en vocal",
		Kind:        ConditionCountAtLeast,
		Field:       FieldVocalMinutes,
		Threshold:   60,
	},
	{
		ID:          "boost_champion",
		Name:        "Champion du boost",
		Emoji:       "🚀",
		Description: "Booster le serveur",
		Kind:        ConditionCountAtLeast,
		Field:       FieldBoosts,
		Threshold:   1,
	},
	{
		ID:          "elite_collector",
		Name:        "Collectionneur élite",
		Emoji:       "🏆",
		Description: "Avoir les 6 tiers d'équipement",
		Kind:        ConditionCountAtLeast,
		Field:       FieldEquipmentCount,
		Threshold:   6,
	},
}

// AchievementByID returns the achievement definition for a stored id.
func AchievementByID(id string) (Achievement, bool) {
	for _, a := range Achievements {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}
