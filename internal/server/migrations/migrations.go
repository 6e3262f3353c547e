// Package migrations embeds the goose SQL migrations defining the
// relational schema: users, content, content_tags and media.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
