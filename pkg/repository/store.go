// Package repository provides a generic gorm store for entities whose
// queries are plain equality filters. Non-zero fields of the filter value
// become WHERE conditions.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Option adjusts a query before it runs.
type Option func(*gorm.DB) *gorm.DB

func OrderBy(order string) Option {
	return func(db *gorm.DB) *gorm.DB { return db.Order(order) }
}

type Store[T any] struct {
	db *gorm.DB
}

func NewStore[T any](db *gorm.DB) *Store[T] {
	return &Store[T]{db: db}
}

// WithTx binds the store to a transaction.
func (s *Store[T]) WithTx(tx *gorm.DB) *Store[T] {
	return &Store[T]{db: tx}
}

func (s *Store[T]) Find(ctx context.Context, filter *T, opts ...Option) ([]T, error) {
	var out []T
	err := s.query(ctx, filter, opts).Find(&out).Error
	return out, err
}

// Take returns nil without error when nothing matches.
func (s *Store[T]) Take(ctx context.Context, filter *T) (*T, error) {
	var out T
	err := s.query(ctx, filter, nil).Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store[T]) Create(ctx context.Context, entity *T) error {
	return s.db.WithContext(ctx).Create(entity).Error
}

// UpdateWhere applies fields to rows matching filter and reports how many changed.
// Conditioning on current state in filter makes the update a compare-and-set.
func (s *Store[T]) UpdateWhere(ctx context.Context, filter *T, fields map[string]any) (int64, error) {
	res := s.query(ctx, filter, nil).Updates(fields)
	return res.RowsAffected, res.Error
}

func (s *Store[T]) Count(ctx context.Context, filter *T) (int64, error) {
	var n int64
	err := s.query(ctx, filter, nil).Count(&n).Error
	return n, err
}

func (s *Store[T]) query(ctx context.Context, filter *T, opts []Option) *gorm.DB {
	db := s.db.WithContext(ctx).Model(new(T))
	if filter != nil {
		db = db.Where(filter)
	}
	for _, opt := range opts {
		db = opt(db)
	}
	return db
}
