// Package migrations holds the schema for every supported database driver.
package migrations

import "embed"

// FS contains one directory of numbered migrations per driver name.
//
//go:embed sqlite3/*.sql postgres/*.sql
var FS embed.FS
