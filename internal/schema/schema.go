// Package schema validates generically decoded JSON payloads against a small
// subset of JSON Schema: type, properties, required, anyOf and minLength.
//
// Error messages follow the wording JSON Schema validators commonly use, e.g.
// "99 is not of type 'string'", and carry the path of the offending field.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Type names a JSON type
type Type string

const (
	TypeObject  Type = "object"
	TypeArray   Type = "array"
	TypeString  Type = "string"
	TypeInteger Type = "integer"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
	TypeNull    Type = "null"
)

// Schema describes the accepted shape of a JSON value.
// Zero-valued keywords are not checked.
type Schema struct {
	Type       Type
	Properties map[string]*Schema
	Required   []string
	AnyOf      []*Schema
	MinLength  int
}

// ValidationError reports the first violation found
type ValidationError struct {
	Path    []string
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Path) == 0 {
		return e.Message
	}
	return e.Field() + ": " + e.Message
}

// Field returns the dotted path of the offending value, empty for the root
func (e *ValidationError) Field() string {
	return strings.Join(e.Path, ".")
}

// ErrInvalidJSON is returned by Decode for bodies that are not a single JSON value
var ErrInvalidJSON = errors.New("invalid JSON document")

// Decode reads one JSON value, keeping numbers as json.Number so integers and
// floats remain distinguishable.
func Decode(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after value", ErrInvalidJSON)
	}
	return v, nil
}

// DecodeBytes is Decode for an in-memory body
func DecodeBytes(body []byte) (any, error) {
	return Decode(bytes.NewReader(body))
}

// Validate checks v against the schema. The returned error, if any, is a
// *ValidationError.
func (s *Schema) Validate(v any) error {
	return s.validate(v, nil)
}

func (s *Schema) validate(v any, path []string) error {
	if s.Type != "" && !isType(v, s.Type) {
		return fail(path, "%s is not of type '%s'", Repr(v), s.Type)
	}

	if obj, ok := v.(map[string]any); ok {
		for _, name := range s.Required {
			if _, present := obj[name]; !present {
				return fail(path, "%s is a required property", Repr(name))
			}
		}

		names := make([]string, 0, len(s.Properties))
		for name := range s.Properties {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			value, present := obj[name]
			if !present {
				continue
			}
			if err := s.Properties[name].validate(value, appendPath(path, name)); err != nil {
				return err
			}
		}
	}

	if str, ok := v.(string); ok && s.MinLength > 0 && len([]rune(str)) < s.MinLength {
		return fail(path, "%s is too short", Repr(str))
	}

	if len(s.AnyOf) > 0 {
		matched := false
		for _, sub := range s.AnyOf {
			if sub.validate(v, path) == nil {
				matched = true
				break
			}
		}
		if !matched {
			return fail(path, "%s is not valid under any of the given schemas", Repr(v))
		}
	}

	return nil
}

func fail(path []string, format string, args ...any) error {
	return &ValidationError{Path: path, Message: fmt.Sprintf(format, args...)}
}

func appendPath(path []string, name string) []string {
	next := make([]string, len(path), len(path)+1)
	copy(next, path)
	return append(next, name)
}

func isType(v any, t Type) bool {
	switch t {
	case TypeObject:
		_, ok := v.(map[string]any)
		return ok
	case TypeArray:
		_, ok := v.([]any)
		return ok
	case TypeString:
		_, ok := v.(string)
		return ok
	case TypeBoolean:
		_, ok := v.(bool)
		return ok
	case TypeNull:
		return v == nil
	case TypeNumber:
		switch v.(type) {
		case json.Number, float64, float32, int, int64, int32, uint, uint64, uint32:
			return true
		}
		return false
	case TypeInteger:
		switch n := v.(type) {
		case json.Number:
			_, err := strconv.ParseInt(n.String(), 10, 64)
			return err == nil
		case float64:
			return n == float64(int64(n))
		case int, int64, int32, uint, uint64, uint32:
			return true
		}
		return false
	}
	return false
}

// Repr renders a decoded JSON value the way validation messages quote it:
// strings in single quotes, objects as {'key': value}, and True, False, None.
func Repr(v any) string {
	switch val := v.(type) {
	case nil:
		return "None"
	case bool:
		if val {
			return "True"
		}
		return "False"
	case string:
		return quote(val)
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, quote(k)+": "+Repr(val[k]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, Repr(item))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprint(val)
	}
}

func quote(s string) string {
	q := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}

	var b strings.Builder
	b.WriteByte(q)
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == rune(q):
			b.WriteByte('\\')
			b.WriteByte(q)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(q)
	return b.String()
}
