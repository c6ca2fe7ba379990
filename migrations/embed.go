// Package migrations embeds the SQL schema files so binaries can migrate
// without a checkout on disk.
package migrations

import "embed"

// FS holds every *.sql file of this directory
//
//go:embed *.sql
var FS embed.FS
