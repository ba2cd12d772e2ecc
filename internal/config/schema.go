package config

import (
	"github.com/invopop/jsonschema"
)

// Schema describes the config file for editors and validation tooling
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		RequiredFromJSONSchemaTags: true,
	}
	schema := reflector.Reflect(new(Config))
	schema.Title = "Going Ballistic configuration"
	schema.Description = "Settings read from the file passed with -config. Every key is optional."
	return schema
}
