// Package migrations embeds the schema migrations for every supported driver.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
