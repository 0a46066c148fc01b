// Package schema derives model tool definitions from Go types.
package schema

import (
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/invopop/jsonschema"
)

// GenerateSchema reflects T into the input schema of a model tool. Field
// descriptions come from `jsonschema:"description=..."` tags.
func GenerateSchema[T any]() anthropic.ToolInputSchemaParam {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	s := reflector.Reflect(v)

	return anthropic.ToolInputSchemaParam{
		Properties: s.Properties,
	}
}

// Tool declares a tool whose input is shaped like T.
func Tool[T any](name, description string) anthropic.ToolUnionParam {
	return anthropic.ToolUnionParam{
		OfTool: &anthropic.ToolParam{
			Name:        name,
			Description: anthropic.String(description),
			InputSchema: GenerateSchema[T](),
		},
	}
}
