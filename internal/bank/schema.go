package bank

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://shiwake-bank.json"

// documentSchema accepts both bank layouts. Shape exclusivity and
// answer-index bounds are checked after decoding.
var documentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"version": map[string]any{"type": "string"},
		"steps": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"items"},
				"properties": map[string]any{
					"title": map[string]any{"type": "string"},
					"topic": map[string]any{"type": "string"},
					"items": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items":    itemSchema("q"),
					},
				},
			},
		},
	},
	"patternProperties": map[string]any{
		"^day[0-9]+$": map[string]any{
			"oneOf": []any{
				itemSchema("question"),
				map[string]any{
					"type":     "array",
					"minItems": 1,
					"items":    itemSchema("question"),
				},
			},
		},
	},
}

func itemSchema(promptKey string) map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []any{promptKey, "choices", "answer"},
		"properties": map[string]any{
			promptKey: map[string]any{"type": "string", "minLength": 1},
			"choices": map[string]any{
				"type":     "array",
				"minItems": 2,
				"items":    map[string]any{"type": "string"},
			},
			"answer":  map[string]any{"type": "integer", "minimum": 0},
			"explain": map[string]any{"type": "string"},
			"hint":    map[string]any{"type": "string"},
		},
	}
}

var (
	compiledOnce   sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// validateDocument checks a parsed JSON value against documentSchema.
func validateDocument(doc any) error {
	compiledOnce.Do(func() {
		compiledSchema, compileErr = compileSchema()
	})
	if compileErr != nil {
		return fmt.Errorf("compile bank schema: %w", compileErr)
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func compileSchema() (*jsonschema.Schema, error) {
	// The compiler wants a plain decoded value, not Go maps with typed slices.
	defBytes, err := json.Marshal(documentSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(schemaURL)
}
