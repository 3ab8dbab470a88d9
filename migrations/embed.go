// Package migrations holds the ordered Postgres schema files. Each NNNN_name.sql has a
// matching NNNN_name_rollback.sql.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
