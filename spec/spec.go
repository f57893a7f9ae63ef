// Package spec embeds the OpenAPI description of the Voyage API.
// The HTTP server serves it at /api/openapi.yaml.
package spec

import _ "embed"

// OpenAPI contains the raw bytes of openapi.yaml, embedded at compile time.
//
//go:embed openapi.yaml
var OpenAPI []byte
