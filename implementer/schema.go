package implementer

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/viant/mcp-protocol/schema"
)

// inputSchemaFor builds a JSON schema for a tool input struct.
func inputSchemaFor(v any) (*schema.ToolInputSchema, error) {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("expected a struct type, got %s", t.Kind())
	}
	properties, required := structToProperties(t)
	return &schema.ToolInputSchema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}, nil
}

// structToProperties converts a struct type into schema properties and required fields.
func structToProperties(t reflect.Type) (schema.ToolInputSchemaProperties, []string) {
	properties := make(schema.ToolInputSchemaProperties)
	var required []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, omitEmpty, ignore := parseJSONTag(field)
		if ignore {
			continue
		}
		properties[name] = schemaForType(field.Type, false)
		if field.Type.Kind() != reflect.Pointer && !omitEmpty {
			required = append(required, name)
		}
	}
	return properties, required
}

// schemaForType returns a JSON schema fragment for a reflect.Type. The inSlice
// flag suppresses the nullable marker for pointer slice elements.
func schemaForType(t reflect.Type, inSlice bool) map[string]interface{} {
	result := make(map[string]interface{})
	if t == reflect.TypeOf(time.Time{}) {
		result["type"] = "string"
		result["format"] = "date-time"
		return result
	}
	if t.Kind() == reflect.Pointer {
		result = schemaForType(t.Elem(), inSlice)
		if !inSlice {
			result["nullable"] = true
		}
		return result
	}
	switch t.Kind() {
	case reflect.Bool:
		result["type"] = "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		result["type"] = "integer"
	case reflect.Float32, reflect.Float64:
		result["type"] = "number"
	case reflect.String:
		result["type"] = "string"
	case reflect.Slice, reflect.Array:
		result["type"] = "array"
		result["items"] = schemaForType(t.Elem(), true)
	case reflect.Map:
		result["type"] = "object"
		result["additionalProperties"] = schemaForType(t.Elem(), false)
	case reflect.Struct:
		result["type"] = "object"
		properties, required := structToProperties(t)
		result["properties"] = properties
		if len(required) > 0 {
			result["required"] = required
		}
	default:
		result["type"] = "string"
	}
	return result
}

func parseJSONTag(field reflect.StructField) (name string, omitEmpty, ignore bool) {
	name = field.Name
	tag, ok := field.Tag.Lookup("json")
	if !ok {
		return name, false, false
	}
	parts := strings.Split(tag, ",")
	if parts[0] == "-" {
		return "", false, true
	}
	if parts[0] != "" {
		name = parts[0]
	}
	for _, part := range parts[1:] {
		if part == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty, false
}
