package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const (
	tasksSchemaURL      = "planboard://schema/tasks.json"
	incrementsSchemaURL = "planboard://schema/increments.json"
)

const tasksSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name", "start", "end"],
    "properties": {
      "id":    {"type": "integer", "minimum": 1},
      "name":  {"type": "string"},
      "start": {"type": "string", "pattern": "^([0-9]{4}-[0-9]{2}-[0-9]{2})?$"},
      "end":   {"type": "string", "pattern": "^([0-9]{4}-[0-9]{2}-[0-9]{2})?$"},
      "color": {"type": "string"},
      "memo":  {"type": "string"}
    }
  }
}`

const incrementsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name", "start", "end"],
    "properties": {
      "id":          {"type": "integer", "minimum": 1},
      "name":        {"type": "string", "minLength": 1},
      "start":       {"type": "string", "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"},
      "end":         {"type": "string", "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"},
      "goals":       {"type": "string"},
      "customOrder": {"type": "integer", "minimum": 0},
      "createdAt":   {"type": "string"}
    }
  }
}`

// ErrInvalidDocument is returned when a stored document does not match its schema.
var ErrInvalidDocument = errors.New("store: invalid document")

var (
	schemaOnce sync.Once
	schemas    map[string]*jsonschema.Schema
	schemaErr  error
)

func compileSchemas() (map[string]*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		sources := map[string]string{
			tasksSchemaURL:      tasksSchema,
			incrementsSchemaURL: incrementsSchema,
		}
		for url, src := range sources {
			if err := compiler.AddResource(url, strings.NewReader(src)); err != nil {
				schemaErr = fmt.Errorf("store: add schema %s: %w", url, err)
				return
			}
		}
		schemas = make(map[string]*jsonschema.Schema, len(sources))
		for url := range sources {
			s, err := compiler.Compile(url)
			if err != nil {
				schemaErr = fmt.Errorf("store: compile schema %s: %w", url, err)
				return
			}
			schemas[url] = s
		}
	})
	return schemas, schemaErr
}

// validate checks raw JSON against the schema registered at url.
func validate(url string, data []byte) error {
	all, err := compileSchemas()
	if err != nil {
		return err
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := all[url].Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return fmt.Errorf("%w: %s", ErrInvalidDocument, firstCause(ve))
		}
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return nil
}

func firstCause(ve *jsonschema.ValidationError) string {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	if ve.InstanceLocation == "" {
		return ve.Message
	}
	return ve.InstanceLocation + ": " + ve.Message
}
