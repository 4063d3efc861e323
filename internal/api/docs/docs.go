// Package docs встраивает OpenAPI-документ, который отдаётся под /api/docs.
package docs

import _ "embed"

//go:embed swagger.json
var SwaggerJSON []byte
