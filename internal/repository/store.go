package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/project-tracker-api/internal/database"
	"github.com/yukikurage/project-tracker-api/internal/models"
)

// Store is the GORM implementation of Gateway for a single entity type.
type Store[T any] struct {
	db      *gorm.DB
	rule    database.Rule
	columns []string
}

// NewStore creates a Store scoped by rule. columns are the fields written by Update.
func NewStore[T any](db *gorm.DB, rule database.Rule, columns ...string) *Store[T] {
	return &Store[T]{db: db, rule: rule, columns: columns}
}

func (s *Store[T]) Find(ctx context.Context, actor *models.User) ([]T, error) {
	var rows []T
	err := s.db.WithContext(ctx).
		Scopes(s.rule.Query(actor, "")).
		Order(s.rule.Column("created_at") + " DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store[T]) FindOne(ctx context.Context, actor *models.User, id string) (*T, error) {
	var row T
	if err := s.db.WithContext(ctx).Scopes(s.rule.Query(actor, id)).Take(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Store[T]) Insert(ctx context.Context, entity *T) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(entity).Error
}

func (s *Store[T]) Update(ctx context.Context, actor *models.User, id string, entity *T) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(new(T)).
		Scopes(s.rule.Filter(actor, id)).
		Select(s.columns).
		Updates(entity)
	return result.RowsAffected, result.Error
}

// UpdateStatus is a compare-and-swap on is_active: the expected prior value is
// part of the WHERE clause, so concurrent toggles cannot both succeed.
func (s *Store[T]) UpdateStatus(ctx context.Context, actor *models.User, id string, status bool) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(new(T)).
		Scopes(s.rule.Filter(actor, id)).
		Where(s.rule.Column("is_active")+" = ?", !status).
		Update("is_active", status)
	return result.RowsAffected, result.Error
}
