package events

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/v1/*.json
var schemaFS embed.FS

// Validator holds one compiled schema per event type.
type Validator struct {
	schemas map[string]*jsonschema.Schema
}

func NewValidator() (*Validator, error) {
	entries, err := schemaFS.ReadDir("schemas/v1")
	if err != nil {
		return nil, fmt.Errorf("read schemas: %w", err)
	}
	schemas := make(map[string]*jsonschema.Schema, len(entries))
	for _, e := range entries {
		data, err := schemaFS.ReadFile("schemas/v1/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", e.Name(), err)
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(e.Name(), bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("add resource %s: %w", e.Name(), err)
		}
		s, err := c.Compile(e.Name())
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", e.Name(), err)
		}
		schemas[strings.TrimSuffix(e.Name(), ".json")] = s
	}
	return &Validator{schemas: schemas}, nil
}

func (v *Validator) Validate(eventType string, doc any) error {
	s, ok := v.schemas[eventType]
	if !ok {
		return fmt.Errorf("no schema for event %q", eventType)
	}
	// jsonschema wants the generic form (map[string]any, etc.)
	b, _ := json.Marshal(doc)
	var x any
	_ = json.Unmarshal(b, &x)
	return s.Validate(x)
}
