package economy

import (
	"github.com/marchanddesable/sablebot/sablebot/catalog"
)

// Rejection classifies an ordinary rule violation. Rejections are expected
// outcomes reported to the caller, never Go errors and never logged as
// errors; state is untouched when an operation is rejected.
type Rejection int

const (
	RejectNone Rejection = iota
	RejectNoClass
	RejectClassAlreadySet
	RejectUnknownClass
	RejectCooldown
	RejectInvalidTier
	RejectInvalidCategory
	RejectLevelTooLow
	RejectInsufficientFunds
	RejectAlreadyClaimed
)

func (r Rejection) String() string {
	switch r {
	case RejectNone:
		return "ok"
	case RejectNoClass:
		return "no class selected"
	case RejectClassAlreadySet:
		return "class already selected"
	case RejectUnknownClass:
		return "unknown class"
	case RejectCooldown:
		return "cooldown active"
	case RejectInvalidTier:
		return "invalid equipment tier"
	case RejectInvalidCategory:
		return "invalid equipment category"
	case RejectLevelTooLow:
		return "level too low"
	case RejectInsufficientFunds:
		return "insufficient sable"
	case RejectAlreadyClaimed:
		return "already claimed today"
	default:
		return "unknown rejection"
	}
}

// Rejected reports whether the operation was refused by a rule.
func (r Rejection) Rejected() bool {
	return r != RejectNone
}

// AccrualResult reports a message, voice or boost reward.
type AccrualResult struct {
	Rejection       Rejection
	Amount          int64
	NewBalance      int64
	NewAchievements []catalog.Achievement
}

// ClassResult reports a class selection or removal.
type ClassResult struct {
	Rejection       Rejection
	Classe          catalog.Class
	NewAchievements []catalog.Achievement
}

// PurchaseResult reports an equipment purchase attempt.
type PurchaseResult struct {
	Rejection     Rejection
	Item          catalog.Item
	RequiredLevel int
	MissingSable  int64

	NewBalance      int64
	NewPower        int64
	NewLevel        int
	LeveledUp       bool
	NewAchievements []catalog.Achievement
}

// DailyResult reports a daily login claim.
type DailyResult struct {
	Rejection  Rejection
	Bonus      int64
	Streak     int
	NewBalance int64
}

// PrestigeResult reports a prestige transition.
type PrestigeResult struct {
	Rejection     Rejection
	RequiredLevel int
	OldLevel      int
	NewLevel      int
	Prestige      int
	NewBalance    int64
}

// SeasonResetResult reports a founder-triggered bulk reset.
type SeasonResetResult struct {
	ProfilesReset int
}

// ServerStats aggregates the whole player base for the stats command.
type ServerStats struct {
	Players       int
	TotalSable    int64
	TotalPower    int64
	TotalMessages int64
	TotalVocal    int64
	MeanLevel     float64

	PopularClass      catalog.Class
	PopularClassCount int

	RichestName  string
	RichestSable int64

	StrongestName  string
	StrongestPower int64
}
