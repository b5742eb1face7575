package storage

import (
	"context"
	"strings"
	"time"

	"github.com/zaikaman/KaspaClash-sub007/internal/game"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
	// configByKey maps lowercase character key -> config definition (stats).
	configByKey map[string]game.Character
	// defaultRating seeds newly created fighter profiles.
	defaultRating int
}

func NewSQLiteRepository(db *gorm.DB, configCharacters []game.Character, defaultRating int) Repository {
	m := make(map[string]game.Character, len(configCharacters))
	for _, c := range configCharacters {
		m[strings.ToLower(c.Key)] = c
	}
	return &sqliteRepository{db: db, configByKey: m, defaultRating: defaultRating}
}

// applyConfigStats copies the non-persisted combat stats from the config
// definition onto a character loaded from the database.
func (r *sqliteRepository) applyConfigStats(c *game.Character) {
	if conf, ok := r.configByKey[strings.ToLower(c.Key)]; ok {
		c.MaxHealth = conf.MaxHealth
		c.MaxEnergy = conf.MaxEnergy
		c.EnergyRegen = conf.EnergyRegen
	}
}

func (r *sqliteRepository) GetCharacters() ([]game.Character, error) {
	var characters []game.Character
	if err := r.db.Find(&characters).Error; err != nil {
		return nil, err
	}
	for i := range characters {
		r.applyConfigStats(&characters[i])
	}
	return characters, nil
}

func (r *sqliteRepository) GetCharacterByKey(key string) (*game.Character, error) {
	var c game.Character
	if err := r.db.Where("lower(key) = ?", strings.ToLower(key)).First(&c).Error; err != nil {
		return nil, err
	}
	r.applyConfigStats(&c)
	return &c, nil
}

func (r *sqliteRepository) CreateMatch(m *game.Match) error {
	return r.db.Create(m).Error
}

func (r *sqliteRepository) GetMatchByCode(code string) (*game.Match, error) {
	var m game.Match
	if err := r.db.Where("match_code = ?", code).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *sqliteRepository) UpdateMatch(m *game.Match) error {
	return r.db.Save(m).Error
}

func (r *sqliteRepository) GetOpenMatches() ([]game.Match, error) {
	var matches []game.Match
	fiveMinutesAgo := time.Now().Add(-5 * time.Minute)
	err := r.db.
		Where("status = ? AND created_at > ?", game.StatusWaitingForOpponent, fiveMinutesAgo).
		Order("created_at desc").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *sqliteRepository) FindTimedOutMatches(now time.Time) ([]game.Match, error) {
	var matches []game.Match
	err := r.db.
		Where("status = ? AND phase = ? AND move_deadline <= ?", game.StatusInProgress, game.PhasePlanning, now).
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *sqliteRepository) FindStaleWaitingMatches(cutoff time.Time) ([]game.Match, error) {
	var matches []game.Match
	err := r.db.
		Where("status = ? AND created_at <= ?", game.StatusWaitingForOpponent, cutoff).
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *sqliteRepository) GetFighterByAddress(ctx context.Context, address string) (*game.Fighter, error) {
	var f game.Fighter
	if err := r.db.WithContext(ctx).Where("address = ?", address).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *sqliteRepository) SaveFighter(ctx context.Context, f *game.Fighter) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *sqliteRepository) UpsertFighter(ctx context.Context, address, displayName string) (*game.Fighter, error) {
	var f game.Fighter
	err := r.db.WithContext(ctx).Where("address = ?", address).First(&f).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
		f = game.Fighter{Address: address, Rating: r.defaultRating}
	}
	if displayName != "" {
		f.DisplayName = displayName
	}
	if err := r.db.WithContext(ctx).Save(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

// GetTopFighters returns the ladder ordered by rating desc, then wins desc.
func (r *sqliteRepository) GetTopFighters(limit int) ([]game.Fighter, error) {
	if limit <= 0 {
		limit = 10
	}
	var fighters []game.Fighter
	if err := r.db.Model(&game.Fighter{}).
		Order("rating DESC").
		Order("wins DESC").
		Limit(limit).
		Find(&fighters).Error; err != nil {
		return nil, err
	}
	return fighters, nil
}
