package economy

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/marchanddesable/sablebot/sablebot/catalog"
	"github.com/marchanddesable/sablebot/sablebot/database"
	"github.com/marchanddesable/sablebot/sablebot/database/models"
	"github.com/marchanddesable/sablebot/sablebot/database/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func newTestService(t *testing.T) (*Service, repositories.ProfileRepository) {
	t.Helper()
	store := database.NewStore[models.Profile](filepath.Join(t.TempDir(), "joueurs.json"))
	repo := repositories.NewProfileRepository(store)
	return NewService(repo), repo
}

// knight returns a profile with a class set, ready to earn and spend.
func knight(t *testing.T, s *Service) *models.Profile {
	t.Helper()
	ctx := context.Background()
	result, err := s.SelectClass(ctx, "1", "arthur", catalog.ClassChevalier)
	require.NoError(t, err)
	require.False(t, result.Rejection.Rejected())
	profile, err := s.Profiles().Get(ctx, "1")
	require.NoError(t, err)
	return profile
}

func TestSelectClass(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	result, err := s.SelectClass(ctx, "1", "arthur", catalog.ClassChevalier)
	require.NoError(t, err)
	assert.False(t, result.Rejection.Rejected())
	assert.Equal(t, catalog.ClassChevalier, result.Classe)
	assert.Equal(t, []string{"first_steps"}, achievementIDs(result.NewAchievements))

	// Second pick is refused until the class is removed.
	result, err = s.SelectClass(ctx, "1", "arthur", catalog.ClassMage)
	require.NoError(t, err)
	assert.Equal(t, RejectClassAlreadySet, result.Rejection)
	assert.Equal(t, catalog.ClassChevalier, result.Classe)

	removed, err := s.RemoveClass(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, catalog.ClassChevalier, removed.Classe)

	result, err = s.SelectClass(ctx, "1", "arthur", catalog.ClassMage)
	require.NoError(t, err)
	assert.False(t, result.Rejection.Rejected())
}

func TestSelectClassUnknown(t *testing.T) {
	s, _ := newTestService(t)

	result, err := s.SelectClass(context.Background(), "1", "arthur", catalog.Class("barde"))
	require.NoError(t, err)
	assert.Equal(t, RejectUnknownClass, result.Rejection)
}

func TestAccrueMessageReward(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// No class, no sable.
	result, err := s.AccrueMessageReward(ctx, "1", "arthur", now)
	require.NoError(t, err)
	assert.Equal(t, RejectNoClass, result.Rejection)

	knight(t, s)

	result, err = s.AccrueMessageReward(ctx, "1", "arthur", now)
	require.NoError(t, err)
	require.False(t, result.Rejection.Rejected())
	assert.Equal(t, catalog.SablePerMessage, result.Amount)
	assert.Equal(t, catalog.StartingSable+catalog.SablePerMessage, result.NewBalance)

	// A burst inside the one-second gap earns nothing.
	result, err = s.AccrueMessageReward(ctx, "1", "arthur", now.Add(500*time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, RejectCooldown, result.Rejection)

	result, err = s.AccrueMessageReward(ctx, "1", "arthur", now.Add(time.Second))
	require.NoError(t, err)
	assert.False(t, result.Rejection.Rejected())

	profile, err := s.Profiles().Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), profile.MessagesEnvoyes)
}

func TestAccrueVoiceReward(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	knight(t, s)

	result, err := s.AccrueVoiceReward(ctx, "1", "arthur", now)
	require.NoError(t, err)
	require.False(t, result.Rejection.Rejected())
	assert.Equal(t, catalog.SablePerVoiceMinute, result.Amount)

	// The next tick inside the minute gap is ignored.
	result, err = s.AccrueVoiceReward(ctx, "1", "arthur", now.Add(30*time.Second))
	require.NoError(t, err)
	assert.Equal(t, RejectCooldown, result.Rejection)

	result, err = s.AccrueVoiceReward(ctx, "1", "arthur", now.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, result.Rejection.Rejected())

	profile, err := s.Profiles().Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), profile.TempsVocalMinutes)
}

// The voice tick fans accruals out over a worker group; concurrent credits
// for distinct members must each land exactly once.
func TestAccrueVoiceRewardConcurrent(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	ids := []string{"1", "2", "3", "4"}
	for _, id := range ids {
		result, err := s.SelectClass(ctx, id, "membre-"+id, catalog.ClassMage)
		require.NoError(t, err)
		require.False(t, result.Rejection.Rejected())
	}

	var g errgroup.Group
	g.SetLimit(4)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			_, err := s.AccrueVoiceReward(ctx, id, "membre-"+id, now)
			return err
		})
	}
	require.NoError(t, g.Wait())

	for _, id := range ids {
		profile, err := s.Profiles().Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(1), profile.TempsVocalMinutes, "user %s", id)
		assert.Equal(t, catalog.StartingSable+catalog.SablePerVoiceMinute, profile.Sable, "user %s", id)
	}
}

func TestAccrueBoostReward(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	// Boosting needs no class and has no cooldown.
	result, err := s.AccrueBoostReward(ctx, "1", "arthur")
	require.NoError(t, err)
	require.False(t, result.Rejection.Rejected())
	assert.Equal(t, catalog.SablePerBoost, result.Amount)
	assert.Equal(t, catalog.StartingSable+catalog.SablePerBoost, result.NewBalance)
	assert.Contains(t, achievementIDs(result.NewAchievements), "boost_champion")
}

func TestPurchaseEquipment(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	profile := knight(t, s)
	profile.Sable = 150
	require.NoError(t, s.Profiles().Save(ctx, profile))

	result, err := s.PurchaseEquipment(ctx, "1", "arthur", catalog.CategoryArme, 1)
	require.NoError(t, err)
	require.False(t, result.Rejection.Rejected())
	assert.Equal(t, "Épée de bronze", result.Item.Name)
	assert.Equal(t, int64(50), result.NewBalance)
	assert.Equal(t, int64(10), result.NewPower)
	assert.Equal(t, 1, result.NewLevel)
	assert.False(t, result.LeveledUp)
	assert.Equal(t, []string{"collector"}, achievementIDs(result.NewAchievements))

	profile, err = s.Profiles().Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Épée de bronze", profile.Arme)
	assert.Equal(t, int64(100), profile.SableDepense)
	assert.Equal(t, int64(1), profile.EquipmentCount)

	// 50 left, tier 2 costs 300: rejected, nothing changes.
	result, err = s.PurchaseEquipment(ctx, "1", "arthur", catalog.CategoryArme, 2)
	require.NoError(t, err)
	assert.Equal(t, RejectInsufficientFunds, result.Rejection)
	assert.Equal(t, int64(250), result.MissingSable)

	// Asking again right away is rejected identically: the first rejection
	// debited nothing.
	result, err = s.PurchaseEquipment(ctx, "1", "arthur", catalog.CategoryArme, 2)
	require.NoError(t, err)
	assert.Equal(t, RejectInsufficientFunds, result.Rejection)
	assert.Equal(t, int64(250), result.MissingSable)

	after, err := s.Profiles().Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, int64(50), after.Sable)
	assert.Equal(t, "Épée de bronze", after.Arme)
}

func TestPurchaseEquipmentReplacesInCategory(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	profile := knight(t, s)
	profile.Sable = 10000
	require.NoError(t, s.Profiles().Save(ctx, profile))

	_, err := s.PurchaseEquipment(ctx, "1", "arthur", catalog.CategoryArme, 1)
	require.NoError(t, err)
	result, err := s.PurchaseEquipment(ctx, "1", "arthur", catalog.CategoryArme, 2)
	require.NoError(t, err)
	require.False(t, result.Rejection.Rejected())

	profile, err = s.Profiles().Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Épée de fer", profile.Arme)
	assert.Equal(t, int64(25), profile.Puissance)
	assert.Equal(t, int64(2), profile.EquipmentCount)
}

func TestPurchaseEquipmentRejections(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		setup    func()
		category catalog.Category
		tier     int
		want     Rejection
	}{
		{
			name:     "no class",
			setup:    func() {},
			category: catalog.CategoryArme,
			tier:     1,
			want:     RejectNoClass,
		},
		{
			name:     "bad category",
			setup:    func() { knight(t, s) },
			category: catalog.Category("bouclier"),
			tier:     1,
			want:     RejectInvalidCategory,
		},
		{
			name:     "tier out of range",
			setup:    func() {},
			category: catalog.CategoryArme,
			tier:     7,
			want:     RejectInvalidTier,
		},
		{
			name:     "level gate",
			setup:    func() {},
			category: catalog.CategoryArme,
			tier:     4, // needs level 5
			want:     RejectLevelTooLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			result, err := s.PurchaseEquipment(ctx, "1", "arthur", tt.category, tt.tier)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Rejection)
		})
	}
}

func TestApplyDailyLogin(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	day1 := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	result, err := s.ApplyDailyLogin(ctx, "1", "arthur", day1)
	require.NoError(t, err)
	require.False(t, result.Rejection.Rejected())
	assert.Equal(t, 1, result.Streak)
	assert.Equal(t, catalog.DailyBaseSable+catalog.DailyStreakStep, result.Bonus)

	// Same calendar day, even hours later: already claimed.
	result, err = s.ApplyDailyLogin(ctx, "1", "arthur", day1.Add(10*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, RejectAlreadyClaimed, result.Rejection)

	// Next day extends the streak.
	result, err = s.ApplyDailyLogin(ctx, "1", "arthur", day1.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Streak)
	assert.Equal(t, catalog.DailyBaseSable+2*catalog.DailyStreakStep, result.Bonus)

	// A skipped day restarts at 1.
	result, err = s.ApplyDailyLogin(ctx, "1", "arthur", day1.AddDate(0, 0, 4))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Streak)
}

func TestApplyDailyLoginStreakCap(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	var last DailyResult
	for day := 0; day < catalog.DailyStreakCap+5; day++ {
		result, err := s.ApplyDailyLogin(ctx, "1", "arthur", start.AddDate(0, 0, day))
		require.NoError(t, err)
		require.False(t, result.Rejection.Rejected())
		last = result
	}

	assert.Equal(t, catalog.DailyStreakCap, last.Streak)
	assert.Equal(t, catalog.DailyBaseSable+int64(catalog.DailyStreakCap)*catalog.DailyStreakStep, last.Bonus)
}

func TestApplyPrestige(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	profile := knight(t, s)

	result, err := s.ApplyPrestige(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, RejectLevelTooLow, result.Rejection)
	assert.Equal(t, catalog.PrestigeLevel, result.RequiredLevel)

	profile.Niveau = catalog.PrestigeLevel
	profile.Arme = "Épée de bronze"
	profile.Armure = "Armure de cuir"
	profile.Puissance = 25
	profile.Sable = 99999
	require.NoError(t, s.Profiles().Save(ctx, profile))

	result, err = s.ApplyPrestige(ctx, "1")
	require.NoError(t, err)
	require.False(t, result.Rejection.Rejected())
	assert.Equal(t, 1, result.Prestige)
	assert.Equal(t, 2, result.NewLevel)

	profile, err = s.Profiles().Get(ctx, "1")
	require.NoError(t, err)
	assert.Empty(t, profile.Arme)
	assert.Empty(t, profile.Armure)
	assert.Equal(t, int64(0), profile.Puissance)
	assert.Equal(t, catalog.StartingSable, profile.Sable)
	assert.Equal(t, 2, profile.Niveau)
}

func TestSeasonReset(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	profile := knight(t, s)
	profile.Sable = 5000
	profile.Arme = "Épée de bronze"
	profile.Puissance = 10
	profile.Niveau = 7
	profile.Prestige = 2
	profile.StreakDaily = 9
	profile.TempsVocalMinutes = 120
	require.NoError(t, s.Profiles().Save(ctx, profile))

	result, err := s.SeasonReset(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.ProfilesReset)

	profile, err = s.Profiles().Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, catalog.StartingSable, profile.Sable)
	assert.Empty(t, profile.Classe)
	assert.Empty(t, profile.Arme)
	assert.Equal(t, int64(0), profile.Puissance)
	assert.Equal(t, 1, profile.Niveau)
	assert.Equal(t, int64(0), profile.TempsVocalMinutes)

	// Survivors: achievements, prestige stars, daily streak.
	assert.Contains(t, profile.Achievements, "first_steps")
	assert.Equal(t, 2, profile.Prestige)
	assert.Equal(t, 9, profile.StreakDaily)
}

func TestLeaderboardOrdering(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	for _, p := range []struct {
		id    string
		power int64
	}{
		{"1", 100}, {"2", 300}, {"3", 200},
	} {
		profile, err := s.Profiles().GetOrCreate(ctx, p.id, "joueur"+p.id)
		require.NoError(t, err)
		profile.Puissance = p.power
		require.NoError(t, s.Profiles().Save(ctx, profile))
	}

	top, err := s.Leaderboard(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "2", top[0].ID)
	assert.Equal(t, "3", top[1].ID)
}

func TestGrantStarterEquipment(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	knight(t, s)

	item, err := s.GrantStarterEquipment(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Épée de bronze", item.Name)

	profile, err := s.Profiles().Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Épée de bronze", profile.Arme)
	assert.Equal(t, catalog.StartingSable+catalog.TutorialSable, profile.Sable)
	assert.Equal(t, int64(10), profile.Puissance)
}

func achievementIDs(unlocked []catalog.Achievement) []string {
	ids := make([]string, 0, len(unlocked))
	for _, a := range unlocked {
		ids = append(ids, a.ID)
	}
	return ids
}
