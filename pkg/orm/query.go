// Package orm is a thin fluent layer over gorm used by the repositories.
//
//	var p models.Product
//	err := orm.DB().WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).First(&p)
//
// Every chained call returns a new *Query, so a base Query (or a transaction
// handle) can be shared between repository methods.
package orm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shashiranjanraj/souq/pkg/database"
	"github.com/shashiranjanraj/souq/pkg/metrics"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound mirrors gorm.ErrRecordNotFound so callers don't import gorm.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrDuplicate is returned when a write violates a unique index.
var ErrDuplicate = errors.New("orm: duplicate key")

// Cacher is the read-through cache used by Query.Cache. It is wired by the
// kernel to pkg/cache so that orm and cache never import each other.
type Cacher interface {
	Get(key string, dest interface{}) bool
	Set(key string, value interface{}, ttl time.Duration) error
}

// CacheStore is nil until the kernel installs one; Cache then reads through.
var CacheStore Cacher

type Query struct {
	db *gorm.DB
}

// DB returns a Query bound to the global connection.
func DB() *Query {
	return &Query{db: database.DB}
}

// Use wraps an explicit *gorm.DB (tests, transactions).
func Use(db *gorm.DB) *Query {
	return &Query{db: db}
}

// Gorm exposes the underlying handle for migrations and raw access.
func (q *Query) Gorm() *gorm.DB { return q.db }

func (q *Query) WithContext(ctx context.Context) *Query {
	return &Query{db: q.db.WithContext(ctx)}
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Table(name string) *Query {
	return &Query{db: q.db.Table(name)}
}

func (q *Query) Where(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Select(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Select(query, args...)}
}

func (q *Query) Joins(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Joins(query, args...)}
}

func (q *Query) Preload(assoc string) *Query {
	return &Query{db: q.db.Preload(assoc)}
}

func (q *Query) Order(value string) *Query {
	return &Query{db: q.db.Order(value)}
}

func (q *Query) Group(name string) *Query {
	return &Query{db: q.db.Group(name)}
}

func (q *Query) Limit(n int) *Query {
	return &Query{db: q.db.Limit(n)}
}

// ── Reads ────────────────────────────────────────────────────────────────────

func (q *Query) Get(dest interface{}) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return q.db.Find(dest).Error
}

func (q *Query) First(dest interface{}) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return q.db.First(dest).Error
}

func (q *Query) Scan(dest interface{}) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return q.db.Scan(dest).Error
}

func (q *Query) Count() (int64, error) {
	defer metrics.ObserveDBQuery("select", time.Now())
	var n int64
	err := q.db.Count(&n).Error
	return n, err
}

// Exists reports whether at least one row matches.
func (q *Query) Exists() (bool, error) {
	n, err := q.Limit(1).Count()
	return n > 0, err
}

// Cache reads dest from CacheStore under key, falling back to Find and
// populating the cache on a miss.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	if CacheStore != nil && CacheStore.Get(key, dest) {
		metrics.CacheHits.WithLabelValues("redis").Inc()
		return nil
	}
	metrics.CacheMisses.WithLabelValues("redis").Inc()

	if err := q.Get(dest); err != nil {
		return err
	}

	if CacheStore != nil {
		_ = CacheStore.Set(key, dest, ttl)
	}
	return nil
}

// ── Writes ───────────────────────────────────────────────────────────────────

func (q *Query) Create(v interface{}) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	return translate(q.db.Create(v).Error)
}

// CreateOrSkip inserts v unless it collides with a unique index, reporting
// whether a row was written.
func (q *Query) CreateOrSkip(v interface{}) (bool, error) {
	defer metrics.ObserveDBQuery("insert", time.Now())
	res := q.db.Clauses(clause.OnConflict{DoNothing: true}).Create(v)
	return res.RowsAffected > 0, translate(res.Error)
}

func (q *Query) Save(v interface{}) error {
	defer metrics.ObserveDBQuery("update", time.Now())
	return translate(q.db.Save(v).Error)
}

// Updates applies values to the matched rows and returns how many changed.
func (q *Query) Updates(values map[string]interface{}) (int64, error) {
	defer metrics.ObserveDBQuery("update", time.Now())
	res := q.db.Updates(values)
	return res.RowsAffected, translate(res.Error)
}

// Delete removes the matched rows of v's model.
func (q *Query) Delete(v interface{}) (int64, error) {
	defer metrics.ObserveDBQuery("delete", time.Now())
	res := q.db.Delete(v)
	return res.RowsAffected, translate(res.Error)
}

// Transaction runs fn inside a database transaction. Any error returned by fn
// (or a panic) rolls the whole transaction back.
func (q *Query) Transaction(ctx context.Context, fn func(tx *Query) error) error {
	return q.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Query{db: tx})
	})
}

// Expr builds a SQL expression for use in Updates values.
func Expr(expr string, args ...interface{}) interface{} {
	return gorm.Expr(expr, args...)
}

// IsNotFound reports whether err means no row matched.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// translate normalises unique-index violations across drivers.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.Join(ErrDuplicate, err)
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry") {
		return errors.Join(ErrDuplicate, err)
	}
	return err
}
