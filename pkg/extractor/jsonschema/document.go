package jsonschema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Schema is the document model of one JSON Schema node.
// It models the subset of draft keywords the extractor walks; unknown
// keywords are ignored by encoding/json.
type Schema struct {
	Ref string `json:"$ref"`

	Type  TypeSet `json:"type"`
	Enum  []any   `json:"enum"`
	Const any     `json:"const"`

	Properties *SchemaMap `json:"properties"`
	Required   []string   `json:"required"`

	Items       *Items    `json:"items"`
	PrefixItems []*Schema `json:"prefixItems"`
	MinItems    *int      `json:"minItems"`
	MaxItems    *int      `json:"maxItems"`

	AllOf []*Schema `json:"allOf"`
	AnyOf []*Schema `json:"anyOf"`
	OneOf []*Schema `json:"oneOf"`

	Pattern    string   `json:"pattern"`
	MinLength  *int     `json:"minLength"`
	MaxLength  *int     `json:"maxLength"`
	Minimum    *float64 `json:"minimum"`
	Maximum    *float64 `json:"maximum"`
	MultipleOf *float64 `json:"multipleOf"`
	Format     string   `json:"format"`

	Title       string `json:"title"`
	Description string `json:"description"`

	Defs        map[string]*Schema `json:"$defs"`
	Definitions map[string]*Schema `json:"definitions"`
}

// UnmarshalJSON accepts the boolean schema form ("true"/"false") alongside
// the object form.
func (s *Schema) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("true")) || bytes.Equal(trimmed, []byte("false")) {
		*s = Schema{}
		return nil
	}

	type alias Schema
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*s = Schema(a)
	return nil
}

// TypeSet is the "type" keyword: a single name or a list of names.
type TypeSet []string

func (t *TypeSet) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var many []string
		if err := json.Unmarshal(trimmed, &many); err != nil {
			return err
		}
		*t = many
		return nil
	}

	var one string
	if err := json.Unmarshal(trimmed, &one); err != nil {
		return err
	}
	*t = TypeSet{one}
	return nil
}

// First returns the first declared type name or "".
func (t TypeSet) First() string {
	if len(t) == 0 {
		return ""
	}
	return t[0]
}

// Items is the "items" keyword in its single-schema or tuple-array form.
type Items struct {
	Single *Schema
	Tuple  []*Schema
}

func (it *Items) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &it.Tuple)
	}

	it.Single = &Schema{}
	return json.Unmarshal(trimmed, it.Single)
}

// SchemaMap is an object-of-schemas that preserves the key declaration
// order of the source document, which map[string]*Schema would lose.
type SchemaMap struct {
	keys []string
	m    map[string]*Schema
}

func (sm *SchemaMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}

	sm.m = make(map[string]*Schema)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", keyTok)
		}

		s := &Schema{}
		if err := dec.Decode(s); err != nil {
			return err
		}
		if _, exists := sm.m[key]; !exists {
			sm.keys = append(sm.keys, key)
		}
		sm.m[key] = s
	}

	// closing brace
	_, err = dec.Token()
	return err
}

func (sm *SchemaMap) add(key string, s *Schema) {
	if _, exists := sm.m[key]; exists {
		return
	}
	sm.keys = append(sm.keys, key)
	sm.m[key] = s
}

// Keys returns the property names in document order.
func (sm *SchemaMap) Keys() []string {
	if sm == nil {
		return nil
	}
	return sm.keys
}

// Get returns the schema for the given key or nil.
func (sm *SchemaMap) Get(key string) *Schema {
	if sm == nil {
		return nil
	}
	return sm.m[key]
}

// Len returns the number of entries.
func (sm *SchemaMap) Len() int {
	if sm == nil {
		return 0
	}
	return len(sm.keys)
}
