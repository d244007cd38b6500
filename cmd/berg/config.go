package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// configSchema is the JSON Schema berg.yaml is validated against before
// being applied, in the schema-validate-before-apply idiom the teacher's
// core/types package uses for decorator parameter schemas: fail on a
// malformed config up front rather than downstream with a confusing error.
const configSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "roots": {
      "type": "array",
      "items": {"type": "string"},
      "description": "source directories resolved relative to the config file"
    },
    "mode": {
      "type": "string",
      "enum": ["strict", "lenient"],
      "description": "diagnostic mode, stored in Config.Mode (default strict); no command reads it, and run fails on any parse diagnostic in either mode"
    }
  }
}`

var compiledConfigSchema *jsonschema.Schema

func init() {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("berg.yaml.schema.json", strings.NewReader(configSchema)); err != nil {
		panic(fmt.Sprintf("invalid embedded config schema: %v", err))
	}
	schema, err := compiler.Compile("berg.yaml.schema.json")
	if err != nil {
		panic(fmt.Sprintf("invalid embedded config schema: %v", err))
	}
	compiledConfigSchema = schema
}

// Config is the parsed, validated contents of a berg.yaml project file.
type Config struct {
	Roots []string `yaml:"roots"`
	Mode  string   `yaml:"mode"`
}

// LoadConfig reads and validates path, returning a Config with Mode
// defaulted to "strict" when unset.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}

	var generic any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, err)
	}
	if err := compiledConfigSchema.Validate(yamlToJSONAny(generic)); err != nil {
		return nil, fmt.Errorf("%q failed schema validation: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, err)
	}
	if cfg.Mode == "" {
		cfg.Mode = "strict"
	}
	return &cfg, nil
}

// yamlToJSONAny normalizes yaml.v3's map[string]interface{} decoding (which
// the jsonschema validator accepts directly) — kept as its own function
// since yaml.v3 can also hand back map[interface{}]interface{} for nested
// documents depending on how the node was decoded.
func yamlToJSONAny(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, vv := range val {
			out[k] = yamlToJSONAny(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, vv := range val {
			out[fmt.Sprint(k)] = yamlToJSONAny(vv)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, vv := range val {
			out[i] = yamlToJSONAny(vv)
		}
		return out
	default:
		return val
	}
}
