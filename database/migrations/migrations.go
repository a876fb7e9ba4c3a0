// Package migrations registers the schema migrations. It is blank-imported
// by the CLI and by tests that need a migrated database.
package migrations
