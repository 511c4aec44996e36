package progression

import (
	"testing"
	"time"

	"github.com/marchanddesable/sablebot/sablebot/catalog"
	"github.com/marchanddesable/sablebot/sablebot/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func achievementIDs(unlocked []catalog.Achievement) []string {
	var ids []string
	for _, a := range unlocked {
		ids = append(ids, a.ID)
	}
	return ids
}

func TestEvaluateAchievements(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		mutate  func(p *models.Profile)
		wantIDs []string
	}{
		{
			name:    "fresh profile earns nothing",
			mutate:  func(p *models.Profile) {},
			wantIDs: nil,
		},
		{
			name: "class pick",
			mutate: func(p *models.Profile) {
				p.Classe = catalog.ClassMage
			},
			wantIDs: []string{"first_steps"},
		},
		{
			name: "first equipment",
			mutate: func(p *models.Profile) {
				p.Arme = "Bâton d'apprenti"
			},
			wantIDs: []string{"collector"},
		},
		{
			name: "wealth and spending",
			mutate: func(p *models.Profile) {
				p.Sable = 10000
				p.SableDepense = 1000
			},
			wantIDs: []string{"spender", "wealthy"},
		},
		{
			name: "level milestones stack",
			mutate: func(p *models.Profile) {
				p.Niveau = 20
			},
			wantIDs: []string{"powerful", "legendary"},
		},
		{
			name: "activity counters",
			mutate: func(p *models.Profile) {
				p.MessagesEnvoyes = 100
				p.TempsVocalMinutes = 60
				p.Boosts = 1
				p.EquipmentCount = 6
			},
			wantIDs: []string{"talker", "voice_master", "boost_champion", "elite_collector"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := models.NewProfile("1", "tester", now)
			tt.mutate(p)
			assert.Equal(t, tt.wantIDs, achievementIDs(EvaluateAchievements(p)))
		})
	}
}

func TestRecordAchievementsIsIdempotent(t *testing.T) {
	p := models.NewProfile("1", "tester", time.Now())
	p.Classe = catalog.ClassChevalier
	p.Sable = 10000

	first := RecordAchievements(p)
	require.Len(t, first, 2)
	assert.True(t, p.HasAchievement("first_steps"))
	assert.True(t, p.HasAchievement("wealthy"))

	// Unchanged profile: nothing new, nothing duplicated.
	assert.Empty(t, RecordAchievements(p))
	assert.Len(t, p.Achievements, 2)
}

func TestEvaluateAchievementsDoesNotMutate(t *testing.T) {
	p := models.NewProfile("1", "tester", time.Now())
	p.Classe = catalog.ClassSamourai

	require.NotEmpty(t, EvaluateAchievements(p))
	assert.Empty(t, p.Achievements)
}
