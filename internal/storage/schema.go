package storage

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const historySchemaURL = "tally-history.schema.json"

const historySchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["change", "version"],
    "properties": {
      "change": {
        "type": "object",
        "required": ["description", "priority", "tags", "completed_at"],
        "properties": {
          "description": {"type": "string", "minLength": 1},
          "priority": {"enum": ["low", "medium", "high", "Low", "Medium", "High"]},
          "tags": {"type": "array", "items": {"type": "string"}},
          "commit": {"type": ["string", "null"]},
          "completed_at": {"type": "string", "format": "date-time"}
        }
      },
      "version": {
        "oneOf": [
          {"type": "null"},
          {
            "type": "object",
            "required": ["major", "minor", "patch"],
            "properties": {
              "major": {"type": "integer", "minimum": 0},
              "minor": {"type": "integer", "minimum": 0},
              "patch": {"type": "integer", "minimum": 0},
              "is_prerelease": {"type": "boolean"}
            }
          }
        ]
      }
    }
  }
}`

// SchemaViolation is one problem found in the ledger file.
type SchemaViolation struct {
	Path    string
	Message string
}

func (v SchemaViolation) String() string {
	if v.Path == "" {
		return v.Message
	}
	return v.Path + ": " + v.Message
}

func compileHistorySchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(historySchemaURL, strings.NewReader(historySchema)); err != nil {
		return nil, fmt.Errorf("loading history schema: %w", err)
	}
	schema, err := compiler.Compile(historySchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compiling history schema: %w", err)
	}
	return schema, nil
}

// CheckHistoryFile validates the ledger at path without loading it into a
// HistoryStorage. A missing file has no violations. Content that is not
// JSON at all is reported as a single violation.
func CheckHistoryFile(path string) ([]SchemaViolation, error) {
	data, ok, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return CheckHistoryJSON(data)
}

func CheckHistoryJSON(data []byte) ([]SchemaViolation, error) {
	schema, err := compileHistorySchema()
	if err != nil {
		return nil, err
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return []SchemaViolation{{Message: fmt.Sprintf("invalid JSON: %v", err)}}, nil
	}

	if err := schema.Validate(doc); err != nil {
		ve, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return nil, fmt.Errorf("validating history: %w", err)
		}
		var out []SchemaViolation
		collectViolations(ve, &out)
		return out, nil
	}
	return nil, nil
}

func collectViolations(err *jsonschema.ValidationError, out *[]SchemaViolation) {
	if len(err.Causes) == 0 {
		*out = append(*out, SchemaViolation{
			Path:    pointerToPath(err.InstanceLocation),
			Message: err.Message,
		})
		return
	}
	for _, cause := range err.Causes {
		collectViolations(cause, out)
	}
}

// pointerToPath turns "/0/change/priority" into "[0].change.priority".
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")
	if ptr == "" {
		return ""
	}
	var b strings.Builder
	for _, seg := range strings.Split(ptr, "/") {
		if isIndex(seg) {
			b.WriteString("[" + seg + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteString(".")
		}
		b.WriteString(seg)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
