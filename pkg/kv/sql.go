package kv

import (
	"context"
	"errors"
	"strings"

	"github.com/angelmondragon/mallkv/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLStore keeps each key as one row of kv_entries. The table is created by
// the goose migration in pkg/migrate.
type SQLStore struct {
	db *gorm.DB
}

// NewSQLStore binds the backend to a gorm connection.
func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Read(ctx context.Context, key string) (string, bool, error) {
	var entry models.KVEntry
	err := s.db.WithContext(ctx).
		Where("entry_key = ?", key).
		Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

func (s *SQLStore) Write(ctx context.Context, key, value string) error {
	entry := models.KVEntry{Key: key, Value: value}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "entry_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"entry_value", "updated_at"}),
		}).
		Create(&entry).Error
}

func (s *SQLStore) Remove(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).
		Where("entry_key = ?", key).
		Delete(&models.KVEntry{}).Error
}

func (s *SQLStore) KeysWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := s.db.WithContext(ctx).
		Model(&models.KVEntry{}).
		Where("entry_key LIKE ? ESCAPE '\\'", escapeLike(prefix)+"%").
		Order("entry_key ASC").
		Pluck("entry_key", &keys).Error
	if err != nil {
		return nil, err
	}
	// LIKE is case-insensitive for ASCII on SQLite; keep exact prefix semantics.
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if strings.HasPrefix(key, prefix) {
			out = append(out, key)
		}
	}
	return out, nil
}

func escapeLike(value string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(value)
}
