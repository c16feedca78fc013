package migrations

import "embed"

// FS holds the SQL migrations of the pautas schema, read by golang-migrate
// through its iofs source.
//
//go:embed *.sql
var FS embed.FS

// Version is the schema version the service expects.
const Version uint = 1
