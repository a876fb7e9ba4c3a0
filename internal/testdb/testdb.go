// Package testdb opens an isolated, fully migrated SQLite database per test.
package testdb

import (
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"testing"

	_ "github.com/shashiranjanraj/souq/database/migrations"
	"github.com/shashiranjanraj/souq/pkg/database"
	"github.com/shashiranjanraj/souq/pkg/migration"
	"github.com/shashiranjanraj/souq/pkg/orm"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var seq atomic.Int64

// Open returns a migrated in-memory database private to t.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, seq.Add(1))
	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection keeps the shared in-memory db alive and serialises writers
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migration.New(db, io.Discard).Run())
	return db
}

// Query is Open wrapped for repositories and services.
func Query(t testing.TB) *orm.Query {
	return orm.Use(Open(t))
}
