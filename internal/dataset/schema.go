package dataset

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/*.schema.json
var schemaFS embed.FS

// Schema names, matching the embedded schema/<name>.schema.json files.
const (
	SchemaCollection     = "collection"
	SchemaLiveHistory    = "live_history"
	SchemaSubmittedMusic = "submitted_music"
	SchemaManifest       = "manifest"
)

var (
	schemaCacheMu sync.Mutex
	schemaCache   = make(map[string]*jsonschema.Schema)
)

func compiledSchema(name string) (*jsonschema.Schema, error) {
	schemaCacheMu.Lock()
	defer schemaCacheMu.Unlock()
	if cached, ok := schemaCache[name]; ok {
		return cached, nil
	}

	src, err := schemaFS.ReadFile("schema/" + name + ".schema.json")
	if err != nil {
		return nil, fmt.Errorf("unknown dataset schema %q: %w", name, err)
	}
	compiler := jsonschema.NewCompiler()
	resource := name + ".schema.json"
	if err := compiler.AddResource(resource, bytes.NewReader(src)); err != nil {
		return nil, err
	}
	compiled, err := compiler.Compile(resource)
	if err != nil {
		return nil, err
	}
	schemaCache[name] = compiled
	return compiled, nil
}

// ValidateDocument checks a raw JSON payload against a named dataset schema.
// The schemas constrain shape (object vs array, field types) but never
// require optional fields; missing data is defaulted downstream, not
// rejected here.
func ValidateDocument(name string, doc []byte) error {
	schema, err := compiledSchema(name)
	if err != nil {
		return err
	}
	var v interface{}
	if err := json.Unmarshal(doc, &v); err != nil {
		return fmt.Errorf("parse %s payload: %w", name, err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%s schema validation failed: %w", name, err)
	}
	return nil
}
