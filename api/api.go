// Package api embeds the OpenAPI spec served by the swagger route.
package api

import _ "embed"

//go:embed openapi.json
var OpenAPISpec []byte
