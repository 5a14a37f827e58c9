package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed data/activity.schema.json
var activitySchemaJSON []byte

const activitySchemaURL = "schema://activity.json"

var (
	schemaOnce     sync.Once
	activitySchema *jsonschema.Schema
	schemaErr      error
)

// compiledSchema compiles the embedded activity schema once.
func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(activitySchemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("parse activity schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(activitySchemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		activitySchema, schemaErr = c.Compile(activitySchemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile: %w", schemaErr)
		}
	})
	return activitySchema, schemaErr
}

// validateSchema checks one raw activity against the activity schema.
func validateSchema(raw []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return schema.Validate(inst)
}
