package economy

import (
	"context"
	"log/slog"
	"time"

	"github.com/marchanddesable/sablebot/sablebot/catalog"
	"github.com/marchanddesable/sablebot/sablebot/database/models"
	"github.com/marchanddesable/sablebot/sablebot/database/repositories"
	"github.com/marchanddesable/sablebot/sablebot/progression"
)

// Accrual gaps. Message rewards need at least one second between gains,
// voice rewards one minute (the voice tick credits one minute per tick, not
// elapsed time).
const (
	messageRewardGap = time.Second
	voiceRewardGap   = time.Minute
)

// Service is the economy transaction layer. Every operation loads one
// profile (creating a default one when absent), applies the progression
// rules, persists the result and reports what changed. Rule violations are
// rejections on the result value; only store failures surface as errors.
type Service struct {
	profiles repositories.ProfileRepository
	calc     *progression.Calculator
}

func NewService(profiles repositories.ProfileRepository) *Service {
	return &Service{
		profiles: profiles,
		calc:     progression.NewCalculator(),
	}
}

// Calculator exposes the progression math for display-only callers.
func (s *Service) Calculator() *progression.Calculator {
	return s.calc
}

// Profiles exposes the backing repository for read-only command handlers.
func (s *Service) Profiles() repositories.ProfileRepository {
	return s.profiles
}

// AccrueMessageReward credits the per-message sable gain. Requires a class
// and at least one second since the previous message gain.
func (s *Service) AccrueMessageReward(ctx context.Context, userID, username string, now time.Time) (AccrualResult, error) {
	profile, err := s.profiles.GetOrCreate(ctx, userID, username)
	if err != nil {
		return AccrualResult{}, err
	}

	if profile.Classe == "" {
		return AccrualResult{Rejection: RejectNoClass}, nil
	}
	if now.Sub(profile.DernierGainMessage) < messageRewardGap {
		return AccrualResult{Rejection: RejectCooldown}, nil
	}

	profile.Sable += catalog.SablePerMessage
	profile.MessagesEnvoyes++
	profile.DernierGainMessage = now
	unlocked := progression.RecordAchievements(profile)

	if err := s.profiles.Save(ctx, profile); err != nil {
		return AccrualResult{}, err
	}
	return AccrualResult{
		Amount:          catalog.SablePerMessage,
		NewBalance:      profile.Sable,
		NewAchievements: unlocked,
	}, nil
}

// AccrueVoiceReward credits one voice minute. Requires a class and at least
// one minute since the previous voice gain.
func (s *Service) AccrueVoiceReward(ctx context.Context, userID, username string, now time.Time) (AccrualResult, error) {
	profile, err := s.profiles.GetOrCreate(ctx, userID, username)
	if err != nil {
		return AccrualResult{}, err
	}

	if profile.Classe == "" {
		return AccrualResult{Rejection: RejectNoClass}, nil
	}
	if now.Sub(profile.DernierGainVocal) < voiceRewardGap {
		return AccrualResult{Rejection: RejectCooldown}, nil
	}

	profile.Sable += catalog.SablePerVoiceMinute
	profile.TempsVocalMinutes++
	profile.DernierGainVocal = now
	unlocked := progression.RecordAchievements(profile)

	if err := s.profiles.Save(ctx, profile); err != nil {
		return AccrualResult{}, err
	}
	return AccrualResult{
		Amount:          catalog.SablePerVoiceMinute,
		NewBalance:      profile.Sable,
		NewAchievements: unlocked,
	}, nil
}

// AccrueBoostReward credits the server boost bonus. The caller fires this
// exactly once per false-to-true boost transition.
func (s *Service) AccrueBoostReward(ctx context.Context, userID, username string) (AccrualResult, error) {
	profile, err := s.profiles.GetOrCreate(ctx, userID, username)
	if err != nil {
		return AccrualResult{}, err
	}

	profile.Sable += catalog.SablePerBoost
	profile.Boosts++
	unlocked := progression.RecordAchievements(profile)

	if err := s.profiles.Save(ctx, profile); err != nil {
		return AccrualResult{}, err
	}

	slog.Info("Server boost rewarded",
		slog.String("user_id", userID),
		slog.String("user_name", username),
		slog.Int64("amount", catalog.SablePerBoost))
	return AccrualResult{
		Amount:          catalog.SablePerBoost,
		NewBalance:      profile.Sable,
		NewAchievements: unlocked,
	}, nil
}

// SelectClass sets the profile's class. A class can only be set while
// unset; RemoveClass is the explicit way back.
func (s *Service) SelectClass(ctx context.Context, userID, username string, classe catalog.Class) (ClassResult, error) {
	if !catalog.ValidClass(classe) {
		return ClassResult{Rejection: RejectUnknownClass}, nil
	}

	profile, err := s.profiles.GetOrCreate(ctx, userID, username)
	if err != nil {
		return ClassResult{}, err
	}
	if profile.Classe != "" {
		return ClassResult{Rejection: RejectClassAlreadySet, Classe: profile.Classe}, nil
	}

	profile.Classe = classe
	unlocked := progression.RecordAchievements(profile)

	if err := s.profiles.Save(ctx, profile); err != nil {
		return ClassResult{}, err
	}
	return ClassResult{Classe: classe, NewAchievements: unlocked}, nil
}

// RemoveClass clears the class, halting future accrual. Currency, equipment
// and counters are untouched.
func (s *Service) RemoveClass(ctx context.Context, userID string) (ClassResult, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return ClassResult{}, err
	}
	if profile.Classe == "" {
		return ClassResult{Rejection: RejectNoClass}, nil
	}

	removed := profile.Classe
	profile.Classe = ""

	if err := s.profiles.Save(ctx, profile); err != nil {
		return ClassResult{}, err
	}
	return ClassResult{Classe: removed}, nil
}

// PurchaseEquipment buys the tier-th item (1-based) of the category for the
// player's class. The new item replaces whatever was equipped in that
// category; puissance and niveau are recomputed from the two equipped items.
func (s *Service) PurchaseEquipment(ctx context.Context, userID, username string, category catalog.Category, tier int) (PurchaseResult, error) {
	if category != catalog.CategoryArme && category != catalog.CategoryArmure {
		return PurchaseResult{Rejection: RejectInvalidCategory}, nil
	}

	profile, err := s.profiles.GetOrCreate(ctx, userID, username)
	if err != nil {
		return PurchaseResult{}, err
	}
	if profile.Classe == "" {
		return PurchaseResult{Rejection: RejectNoClass}, nil
	}

	item, ok := catalog.ItemAt(profile.Classe, category, tier)
	if !ok {
		return PurchaseResult{Rejection: RejectInvalidTier}, nil
	}
	if profile.Niveau < item.MinLevel {
		return PurchaseResult{Rejection: RejectLevelTooLow, Item: item, RequiredLevel: item.MinLevel}, nil
	}
	if profile.Sable < item.Cost {
		return PurchaseResult{Rejection: RejectInsufficientFunds, Item: item, MissingSable: item.Cost - profile.Sable}, nil
	}

	profile.Sable -= item.Cost
	profile.SableDepense += item.Cost
	profile.EquipmentCount++
	if category == catalog.CategoryArme {
		profile.Arme = item.Name
	} else {
		profile.Armure = item.Name
	}

	oldLevel := profile.Niveau
	s.recomputePower(profile)
	unlocked := progression.RecordAchievements(profile)

	if err := s.profiles.Save(ctx, profile); err != nil {
		return PurchaseResult{}, err
	}

	slog.Info("Equipment purchased",
		slog.String("user_id", userID),
		slog.String("user_name", username),
		slog.String("item", item.Name),
		slog.Int64("puissance", profile.Puissance))
	return PurchaseResult{
		Item:            item,
		NewBalance:      profile.Sable,
		NewPower:        profile.Puissance,
		NewLevel:        profile.Niveau,
		LeveledUp:       profile.Niveau > oldLevel,
		NewAchievements: unlocked,
	}, nil
}

// ApplyDailyLogin claims the daily bonus. One claim per calendar day; a
// consecutive-day claim extends the streak up to the cap, anything else
// restarts it at 1. The bonus scales with the streak.
func (s *Service) ApplyDailyLogin(ctx context.Context, userID, username string, now time.Time) (DailyResult, error) {
	profile, err := s.profiles.GetOrCreate(ctx, userID, username)
	if err != nil {
		return DailyResult{}, err
	}

	today := truncateToDay(now)
	if profile.DernierDaily != nil && truncateToDay(*profile.DernierDaily).Equal(today) {
		return DailyResult{Rejection: RejectAlreadyClaimed, Streak: profile.StreakDaily}, nil
	}

	streak := 1
	if profile.DernierDaily != nil {
		lastDay := truncateToDay(*profile.DernierDaily)
		if lastDay.AddDate(0, 0, 1).Equal(today) {
			streak = profile.StreakDaily + 1
			if streak > catalog.DailyStreakCap {
				streak = catalog.DailyStreakCap
			}
		}
	}

	bonus := catalog.DailyBaseSable + int64(streak)*catalog.DailyStreakStep
	profile.Sable += bonus
	profile.DernierDaily = &now
	profile.StreakDaily = streak
	progression.RecordAchievements(profile)

	if err := s.profiles.Save(ctx, profile); err != nil {
		return DailyResult{}, err
	}
	return DailyResult{Bonus: bonus, Streak: streak, NewBalance: profile.Sable}, nil
}

// ApplyPrestige resets a level-100 player: equipment and puissance cleared,
// sable back to the starting amount, niveau floored at 1+prestige. This is
// the only operation that lowers niveau or puissance.
func (s *Service) ApplyPrestige(ctx context.Context, userID string) (PrestigeResult, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return PrestigeResult{}, err
	}
	if profile.Niveau < catalog.PrestigeLevel {
		return PrestigeResult{
			Rejection:     RejectLevelTooLow,
			RequiredLevel: catalog.PrestigeLevel,
			OldLevel:      profile.Niveau,
		}, nil
	}

	oldLevel := profile.Niveau
	profile.Prestige++
	profile.Niveau = 1 + profile.Prestige
	profile.Puissance = 0
	profile.Arme = ""
	profile.Armure = ""
	profile.Sable = catalog.StartingSable

	if err := s.profiles.Save(ctx, profile); err != nil {
		return PrestigeResult{}, err
	}

	slog.Info("Prestige applied",
		slog.String("user_id", userID),
		slog.Int("prestige", profile.Prestige),
		slog.Int("old_level", oldLevel))
	return PrestigeResult{
		OldLevel:   oldLevel,
		NewLevel:   profile.Niveau,
		Prestige:   profile.Prestige,
		NewBalance: profile.Sable,
	}, nil
}

// SeasonReset puts every profile back to a fresh start: starting sable, no
// class or equipment, level 1, activity timers cleared. Achievements,
// prestige stars and daily streaks survive across seasons.
func (s *Service) SeasonReset(ctx context.Context) (SeasonResetResult, error) {
	profiles, err := s.profiles.GetAll(ctx)
	if err != nil {
		return SeasonResetResult{}, err
	}

	for _, profile := range profiles {
		profile.Sable = catalog.StartingSable
		profile.Classe = ""
		profile.Arme = ""
		profile.Armure = ""
		profile.Puissance = 0
		profile.Niveau = 1
		profile.TempsVocalMinutes = 0
		profile.DernierGainMessage = time.Time{}
		profile.DernierGainVocal = time.Time{}
	}

	if err := s.profiles.SaveAll(ctx, profiles); err != nil {
		return SeasonResetResult{}, err
	}

	slog.Info("Season reset complete",
		slog.Int("profiles", len(profiles)))
	return SeasonResetResult{ProfilesReset: len(profiles)}, nil
}

// Leaderboard returns the top players by puissance.
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]*models.Profile, error) {
	return s.profiles.Top(ctx, limit)
}

// Stats aggregates the whole player base.
func (s *Service) Stats(ctx context.Context) (ServerStats, error) {
	profiles, err := s.profiles.GetAll(ctx)
	if err != nil {
		return ServerStats{}, err
	}

	stats := ServerStats{Players: len(profiles)}
	if len(profiles) == 0 {
		return stats, nil
	}

	classCounts := map[catalog.Class]int{}
	var levelSum int64
	for _, p := range profiles {
		stats.TotalSable += p.Sable
		stats.TotalPower += p.Puissance
		stats.TotalMessages += p.MessagesEnvoyes
		stats.TotalVocal += p.TempsVocalMinutes
		levelSum += int64(p.Niveau)
		if p.Classe != "" {
			classCounts[p.Classe]++
		}
		if p.Sable >= stats.RichestSable {
			stats.RichestSable = p.Sable
			stats.RichestName = p.Username
		}
		if p.Puissance >= stats.StrongestPower {
			stats.StrongestPower = p.Puissance
			stats.StrongestName = p.Username
		}
	}
	stats.MeanLevel = float64(levelSum) / float64(len(profiles))
	for classe, count := range classCounts {
		if count > stats.PopularClassCount {
			stats.PopularClass = classe
			stats.PopularClassCount = count
		}
	}
	return stats, nil
}

// GrantStarterEquipment equips the class's tier-1 weapon and credits the
// tutorial bonus. Used by the onboarding flow only; no-op conditions are
// checked by the caller.
func (s *Service) GrantStarterEquipment(ctx context.Context, userID string) (catalog.Item, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return catalog.Item{}, err
	}

	item, ok := catalog.ItemAt(profile.Classe, catalog.CategoryArme, 1)
	if !ok {
		return catalog.Item{}, nil
	}

	profile.Arme = item.Name
	profile.Sable += catalog.TutorialSable
	s.recomputePower(profile)
	progression.RecordAchievements(profile)

	if err := s.profiles.Save(ctx, profile); err != nil {
		return catalog.Item{}, err
	}
	return item, nil
}

// GrantSable credits a flat amount (tutorial completion bonus).
func (s *Service) GrantSable(ctx context.Context, userID string, amount int64) (int64, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return 0, err
	}
	profile.Sable += amount
	progression.RecordAchievements(profile)
	if err := s.profiles.Save(ctx, profile); err != nil {
		return 0, err
	}
	return profile.Sable, nil
}

// recomputePower rederives puissance and niveau from the equipped items.
// Niveau never drops below the prestige floor.
func (s *Service) recomputePower(profile *models.Profile) {
	var arme, armure *catalog.Item
	if item, ok := profile.EquippedArme(); ok {
		arme = &item
	}
	if item, ok := profile.EquippedArmure(); ok {
		armure = &item
	}
	profile.Puissance = s.calc.Power(arme, armure)

	// Niveau only ever drops at a prestige transition; a lower-tier
	// replacement keeps the level already reached.
	level := s.calc.Level(profile.Puissance)
	if floor := 1 + profile.Prestige; level < floor {
		level = floor
	}
	if level > profile.Niveau {
		profile.Niveau = level
	}
}

func truncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
