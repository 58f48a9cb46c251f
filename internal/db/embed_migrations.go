package db

import "embed"

// MigrationFS embeds the JSON index migrations from internal/db/migrations.
// Each file is an array of MongoDB commands run in order by golang-migrate's mongodb driver.
//
//go:embed migrations/*.json
var MigrationFS embed.FS
