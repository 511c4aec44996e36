package progression

import (
	"github.com/marchanddesable/sablebot/sablebot/catalog"
	"github.com/marchanddesable/sablebot/sablebot/database/models"
)

// EvaluateAchievements returns the achievements the profile now satisfies
// but has not yet recorded. Already-earned ids are excluded, so once a
// batch is recorded a re-evaluation of the unchanged profile returns
// nothing. The profile is never mutated here.
func EvaluateAchievements(p *models.Profile) []catalog.Achievement {
	var unlocked []catalog.Achievement
	for _, a := range catalog.Achievements {
		if p.HasAchievement(a.ID) {
			continue
		}
		if conditionMet(a, p) {
			unlocked = append(unlocked, a)
		}
	}
	return unlocked
}

// RecordAchievements evaluates and records newly satisfied achievements on
// the profile, returning what was added.
func RecordAchievements(p *models.Profile) []catalog.Achievement {
	unlocked := EvaluateAchievements(p)
	for _, a := range unlocked {
		p.AddAchievement(a.ID)
	}
	return unlocked
}

func conditionMet(a catalog.Achievement, p *models.Profile) bool {
	switch a.Kind {
	case catalog.ConditionFieldSet:
		switch a.Field {
		case catalog.FieldClasse:
			return p.Classe != ""
		case catalog.FieldEquipped:
			return p.Arme != "" || p.Armure != ""
		}
		return false
	case catalog.ConditionThreshold, catalog.ConditionCountAtLeast:
		return fieldValue(a.Field, p) >= a.Threshold
	default:
		return false
	}
}

func fieldValue(field catalog.ConditionField, p *models.Profile) int64 {
	switch field {
	case catalog.FieldSable:
		return p.Sable
	case catalog.FieldSableDepense:
		return p.SableDepense
	case catalog.FieldNiveau:
		return int64(p.Niveau)
	case catalog.FieldMessages:
		return p.MessagesEnvoyes
	case catalog.FieldVocalMinutes:
		return p.TempsVocalMinutes
	case catalog.FieldBoosts:
		return p.Boosts
	case catalog.FieldEquipmentCount:
		return p.EquipmentCount
	default:
		return 0
	}
}
