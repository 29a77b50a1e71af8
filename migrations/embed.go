// Package migrations holds the versioned SQL schema, embedded into binaries
// so the server and the migrate command need no files on disk.
package migrations

import "embed"

// FS contains every *.up.sql and *.down.sql file of this directory
//
//go:embed *.sql
var FS embed.FS
