package repositories

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/marchanddesable/sablebot/sablebot/database"
	"github.com/marchanddesable/sablebot/sablebot/database/models"
)

// ErrProfileNotFound is returned by Get when the user has no profile yet.
// Most callers want GetOrCreate instead; Get exists for lookups that must
// not create (profile of another member, prestige, class removal).
var ErrProfileNotFound = errors.New("profile not found")

const profileCacheSize = 1024

type ProfileRepository interface {
	Get(ctx context.Context, id string) (*models.Profile, error)
	GetOrCreate(ctx context.Context, id, username string) (*models.Profile, error)
	Save(ctx context.Context, profile *models.Profile) error
	GetAll(ctx context.Context) (map[string]*models.Profile, error)
	SaveAll(ctx context.Context, profiles map[string]*models.Profile) error
	Top(ctx context.Context, limit int) ([]*models.Profile, error)
}

type profileRepository struct {
	store *database.Store[models.Profile]
	cache *lru.Cache
	now   func() time.Time
}

func NewProfileRepository(store *database.Store[models.Profile]) ProfileRepository {
	cache, _ := lru.New(profileCacheSize)
	return &profileRepository{
		store: store,
		cache: cache,
		now:   time.Now,
	}
}

func (r *profileRepository) Get(ctx context.Context, id string) (*models.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if cached, ok := r.cache.Get(id); ok {
		profile := cached.(models.Profile)
		return &profile, nil
	}

	profile, ok, err := r.store.Get(id)
	if err != nil {
		slog.Error("Failed to load profile",
			slog.String("type", "db"),
			slog.String("user_id", id),
			slog.Any("error", err))
		return nil, err
	}
	if !ok {
		return nil, ErrProfileNotFound
	}

	// Lazy schema upgrade, persisted back exactly once.
	if models.MigrateProfile(profile, r.now()) {
		slog.Info("Upgraded profile schema",
			slog.String("type", "db"),
			slog.String("user_id", id),
			slog.Int("schema_version", profile.SchemaVersion))
		if err := r.store.Put(id, profile); err != nil {
			return nil, err
		}
	}

	r.cache.Add(id, *profile)
	return profile, nil
}

func (r *profileRepository) GetOrCreate(ctx context.Context, id, username string) (*models.Profile, error) {
	profile, err := r.Get(ctx, id)
	if err == nil {
		if username != "" {
			profile.Username = username
		}
		return profile, nil
	}
	if !errors.Is(err, ErrProfileNotFound) {
		return nil, err
	}

	profile = models.NewProfile(id, username, r.now())
	if err := r.Save(ctx, profile); err != nil {
		return nil, err
	}
	slog.Info("Created new profile",
		slog.String("type", "db"),
		slog.String("user_id", id),
		slog.String("user_name", username))
	return profile, nil
}

func (r *profileRepository) Save(ctx context.Context, profile *models.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.store.Put(profile.ID, profile); err != nil {
		slog.Error("Failed to save profile",
			slog.String("type", "db"),
			slog.String("user_id", profile.ID),
			slog.Any("error", err))
		return err
	}
	r.cache.Add(profile.ID, *profile)
	return nil
}

func (r *profileRepository) GetAll(ctx context.Context) (map[string]*models.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	profiles, err := r.store.LoadAll()
	if err != nil {
		return nil, err
	}
	now := r.now()
	for _, profile := range profiles {
		models.MigrateProfile(profile, now)
	}
	return profiles, nil
}

func (r *profileRepository) SaveAll(ctx context.Context, profiles map[string]*models.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.store.SaveAll(profiles); err != nil {
		slog.Error("Failed to save profiles",
			slog.String("type", "db"),
			slog.Int("count", len(profiles)),
			slog.Any("error", err))
		return err
	}
	r.cache.Purge()
	return nil
}

func (r *profileRepository) Top(ctx context.Context, limit int) ([]*models.Profile, error) {
	profiles, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	ranked := make([]*models.Profile, 0, len(profiles))
	for _, profile := range profiles {
		ranked = append(ranked, profile)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Puissance != ranked[j].Puissance {
			return ranked[i].Puissance > ranked[j].Puissance
		}
		return ranked[i].ID < ranked[j].ID
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}
