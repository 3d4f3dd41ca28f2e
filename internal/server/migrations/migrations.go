// Package migrations хранит SQL-миграции схемы и встраивает их в бинарник.
package migrations

import "embed"

// Dir: каталог внутри FS, из которого читает golang-migrate.
const Dir = "postgres"

//go:embed postgres/*.sql
var FS embed.FS
