package migrations

import "embed"

// Postgres holds the versioned schema migrations under postgres/.
//
//go:embed postgres/*.sql
var Postgres embed.FS

const PostgresDir = "postgres"
