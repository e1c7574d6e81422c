// Package migrations embeds the goose SQL migrations applied at startup,
// before the HTTP listener accepts traffic.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
