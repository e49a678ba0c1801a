// ABOUTME: Embedded goose migrations for the SQLite storage backend
// ABOUTME: Files follow goose's NNNNN_name.sql convention
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
