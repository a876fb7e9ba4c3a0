// Package repositories holds the data access for each aggregate. Every
// repository wraps an *orm.Query so the same code runs against the global
// connection or inside a transaction:
//
//	err := db.Transaction(ctx, func(tx *orm.Query) error {
//	    return repositories.NewOrderRepository(tx).Create(ctx, &order)
//	})
package repositories

import (
	"context"

	"github.com/shashiranjanraj/souq/pkg/orm"
)

// Repository is the CRUD shared by every table keyed on an id column.
type Repository[T any] struct {
	q *orm.Query
}

func newRepository[T any](q *orm.Query) Repository[T] {
	if q == nil {
		q = orm.DB()
	}
	return Repository[T]{q: q}
}

func (r Repository[T]) model(ctx context.Context) *orm.Query {
	return r.q.WithContext(ctx).Model(new(T))
}

// All returns every row in the given order ("id ASC" when empty).
func (r Repository[T]) All(ctx context.Context, order string) ([]T, error) {
	if order == "" {
		order = "id ASC"
	}
	var rows []T
	err := r.model(ctx).Order(order).Get(&rows)
	return rows, err
}

// Find loads one row by id; orm.ErrNotFound when missing.
func (r Repository[T]) Find(ctx context.Context, id uint) (T, error) {
	var row T
	err := r.model(ctx).Where("id = ?", id).First(&row)
	return row, err
}

func (r Repository[T]) Create(ctx context.Context, row *T) error {
	return r.q.WithContext(ctx).Create(row)
}

// Save writes every column of row.
func (r Repository[T]) Save(ctx context.Context, row *T) error {
	return r.q.WithContext(ctx).Save(row)
}

// Delete removes the row and reports whether it existed.
func (r Repository[T]) Delete(ctx context.Context, id uint) (bool, error) {
	n, err := r.q.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	return n > 0, err
}

func (r Repository[T]) Count(ctx context.Context) (int64, error) {
	return r.model(ctx).Count()
}

// Exists reports whether a row with id exists.
func (r Repository[T]) Exists(ctx context.Context, id uint) (bool, error) {
	return r.model(ctx).Where("id = ?", id).Exists()
}
