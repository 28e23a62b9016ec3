// Package schema embeds the goose migrations so binaries and tests do not depend on the working directory.
package schema

import "embed"

//go:embed *.sql
var FS embed.FS
