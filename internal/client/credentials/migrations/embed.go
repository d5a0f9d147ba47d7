// Package migrations embeds the SQL migrations for the local credentials DB.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
