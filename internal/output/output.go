// Package output persists the pipeline result. A .json target gets the
// structured record, validated against the embedded schema before the write;
// any other target gets the raw completion text verbatim.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"medscan/internal/extract"
)

const recordSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["patient_name", "age", "gender", "medicines"],
  "additionalProperties": false,
  "properties": {
    "patient_name": {"type": "string"},
    "age": {"type": "string"},
    "gender": {"type": "string"},
    "medicines": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "additionalProperties": false,
        "properties": {
          "name": {"type": "string"},
          "strength": {"type": "string"},
          "dosage": {"type": "string"}
        }
      }
    }
  }
}`

// Write overwrites path with the result. Rendering is chosen by extension.
func Write(path, completion string, rec extract.Record) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return writeJSON(path, rec)
	}
	return os.WriteFile(path, []byte(completion), 0o644)
}

func writeJSON(path string, rec extract.Record) error {
	if rec.Medicines == nil {
		rec.Medicines = []extract.Medicine{}
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if err := validateRecordJSON(data); err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func validateRecordJSON(data []byte) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("record.schema.json", strings.NewReader(recordSchema)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("record.schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal record: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("record does not match schema: %w", err)
	}
	return nil
}
