// Package schemas содержит JSON-схемы тел запросов, зашитые в бинарник.
package schemas

import "embed"

//go:embed requests
var SchemasFS embed.FS
