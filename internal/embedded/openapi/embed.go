// Package openapi embeds the OpenAPI 3.0 specification for the taskboard
// HTTP API. The YAML source is embedded at build time; the JSON form is
// derived from it at startup so the two can never drift.
package openapi

import (
	_ "embed"

	"github.com/goccy/go-yaml"
)

// SpecYAML contains the OpenAPI 3.0 specification in YAML format.
// Served at: GET /openapi.yaml
//
//go:embed openapi.yaml
var SpecYAML []byte

// SpecJSON contains the OpenAPI 3.0 specification in JSON format.
// Served at: GET /openapi.json
var SpecJSON []byte

func init() {
	var doc map[string]any
	if err := yaml.Unmarshal(SpecYAML, &doc); err != nil {
		panic("embedded OpenAPI document is malformed: " + err.Error())
	}
	out, err := yaml.MarshalWithOptions(doc, yaml.JSON())
	if err != nil {
		panic("converting embedded OpenAPI document to JSON: " + err.Error())
	}
	SpecJSON = out
}
