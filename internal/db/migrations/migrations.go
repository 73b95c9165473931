// Package migrations embeds the schema for each supported SQL dialect.
package migrations

import "embed"

// Postgres holds the lib/pq schema under postgres/.
//
//go:embed postgres/*.sql
var Postgres embed.FS

// SQLite holds the modernc.org/sqlite schema under sqlite/.
//
//go:embed sqlite/*.sql
var SQLite embed.FS
