package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/marchanddesable/sablebot/sablebot/catalog"
)

// CurrentSchemaVersion marks the profile layout this build writes. Profiles
// read with an older (or missing) version go through MigrateProfile once and
// are persisted back upgraded.
const CurrentSchemaVersion = 2

// Profile is one player's full state, keyed by Discord user id in the
// backing store. JSON keys match the historical joueurs.json layout so
// existing data files load unchanged.
type Profile struct {
	ID       string `json:"id"`
	Username string `json:"username"`

	Sable  int64         `json:"sable"`
	Classe catalog.Class `json:"classe,omitempty"`
	Arme   string        `json:"arme,omitempty"`
	Armure string        `json:"armure,omitempty"`

	// Puissance is always derived from the equipped items; Niveau from
	// Puissance (plus the prestige floor). Neither is ever hand-edited.
	Puissance int64 `json:"puissance"`
	Niveau    int   `json:"niveau"`

	Achievements []string `json:"achievements"`

	MessagesEnvoyes   int64 `json:"messages_envoyes"`
	TempsVocalMinutes int64 `json:"temps_vocal_minutes"`
	SableDepense      int64 `json:"sable_depense"`
	Boosts            int64 `json:"boosts"`
	EquipmentCount    int64 `json:"equipment_count"`

	DernierGainMessage time.Time  `json:"dernier_gain_message"`
	DernierGainVocal   time.Time  `json:"dernier_gain_vocal"`
	DernierDaily       *time.Time `json:"dernier_daily,omitempty"`
	StreakDaily        int        `json:"streak_daily"`

	Prestige     int       `json:"prestige"`
	DateCreation time.Time `json:"date_creation"`

	SchemaVersion int `json:"schema_version"`
}

// UnmarshalJSON accepts both the current layout and the historical one. The
// original data files carried numeric unix timestamps for the accrual gains
// and timezone-less isoformat strings for the daily claim and creation date;
// all of them must keep loading so no player record is lost. Saving always
// writes the current layout.
func (p *Profile) UnmarshalJSON(data []byte) error {
	type profileAlias Profile
	aux := struct {
		*profileAlias
		DernierGainMessage flexTime  `json:"dernier_gain_message"`
		DernierGainVocal   flexTime  `json:"dernier_gain_vocal"`
		DernierDaily       *flexTime `json:"dernier_daily"`
		DateCreation       flexTime  `json:"date_creation"`
	}{profileAlias: (*profileAlias)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	p.DernierGainMessage = time.Time(aux.DernierGainMessage)
	p.DernierGainVocal = time.Time(aux.DernierGainVocal)
	p.DateCreation = time.Time(aux.DateCreation)
	if aux.DernierDaily != nil {
		t := time.Time(*aux.DernierDaily)
		p.DernierDaily = &t
	} else {
		p.DernierDaily = nil
	}
	return nil
}

// flexTime decodes RFC3339 strings, isoformat strings without a timezone
// (read in the server's local zone, matching how they were written) and
// numeric unix timestamps, possibly fractional.
type flexTime time.Time

func (t *flexTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		if raw == "" {
			return nil
		}
		if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			*t = flexTime(parsed)
			return nil
		}
		parsed, err := time.ParseInLocation("2006-01-02T15:04:05.999999999", raw, time.Local)
		if err != nil {
			return fmt.Errorf("invalid timestamp %q: %w", raw, err)
		}
		*t = flexTime(parsed)
		return nil
	}

	var unix float64
	if err := json.Unmarshal(data, &unix); err != nil {
		return fmt.Errorf("invalid timestamp %s: %w", data, err)
	}
	if unix != 0 {
		sec := int64(unix)
		*t = flexTime(time.Unix(sec, int64((unix-float64(sec))*1e9)))
	}
	return nil
}

// NewProfile builds a fresh profile with the starting defaults.
func NewProfile(id, username string, now time.Time) *Profile {
	return &Profile{
		ID:            id,
		Username:      username,
		Sable:         catalog.StartingSable,
		Niveau:        1,
		Achievements:  []string{},
		DateCreation:  now,
		SchemaVersion: CurrentSchemaVersion,
	}
}

// MigrateProfile upgrades a profile loaded from an older data file to the
// current schema. Returns true when anything changed so the caller can
// persist the upgrade exactly once instead of re-defaulting on every read.
func MigrateProfile(p *Profile, now time.Time) bool {
	if p.SchemaVersion >= CurrentSchemaVersion {
		return false
	}
	if p.Niveau < 1 {
		p.Niveau = 1
	}
	if p.Achievements == nil {
		p.Achievements = []string{}
	}
	if p.DateCreation.IsZero() {
		p.DateCreation = now
	}
	if p.StreakDaily < 0 {
		p.StreakDaily = 0
	}
	p.SchemaVersion = CurrentSchemaVersion
	return true
}

// HasAchievement reports whether the id is already recorded.
func (p *Profile) HasAchievement(id string) bool {
	for _, a := range p.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// AddAchievement records an id if absent and reports whether it was added.
func (p *Profile) AddAchievement(id string) bool {
	if p.HasAchievement(id) {
		return false
	}
	p.Achievements = append(p.Achievements, id)
	return true
}

// EquippedArme resolves the equipped weapon against the catalog.
func (p *Profile) EquippedArme() (catalog.Item, bool) {
	return catalog.FindItem(p.Classe, catalog.CategoryArme, p.Arme)
}

// EquippedArmure resolves the equipped armor against the catalog.
func (p *Profile) EquippedArmure() (catalog.Item, bool) {
	return catalog.FindItem(p.Classe, catalog.CategoryArmure, p.Armure)
}
