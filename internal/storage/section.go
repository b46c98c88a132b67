package storage

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Section is one mapping in a persisted document. Keys keep their insertion
// order, which is the order documents are written and listed in. Values are
// leaves (string, int64, float64, bool) or nested *Section.
type Section struct {
	keys   []string
	values map[string]any
}

// NewSection creates an empty section
func NewSection() *Section {
	return &Section{values: make(map[string]any)}
}

// Len returns the number of direct children
func (s *Section) Len() int {
	return len(s.keys)
}

// Keys returns the direct child keys in document order
func (s *Section) Keys() []string {
	keys := make([]string, len(s.keys))
	copy(keys, s.keys)
	return keys
}

// Has reports whether key is a direct child
func (s *Section) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Get returns the raw value stored under key
func (s *Section) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Child returns the nested section under key
func (s *Section) Child(key string) (*Section, bool) {
	child, ok := s.values[key].(*Section)
	return child, ok
}

// Set stores value under key, keeping the key's position if it already
// exists. A nil value removes the key.
func (s *Section) Set(key string, value any) {
	if value == nil {
		s.Remove(key)
		return
	}
	value = normalize(value)
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Remove deletes key and reports whether it was present
func (s *Section) Remove(key string) bool {
	if _, ok := s.values[key]; !ok {
		return false
	}
	delete(s.values, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
	return true
}

// String returns a string leaf
func (s *Section) String(key string) (string, bool) {
	v, ok := s.values[key].(string)
	return v, ok
}

// Int returns an integer leaf
func (s *Section) Int(key string) (int64, bool) {
	v, ok := s.values[key].(int64)
	return v, ok
}

// Float returns a numeric leaf as float64. Integers are widened, since YAML
// writers are free to drop the fractional part of whole numbers.
func (s *Section) Float(key string) (float64, bool) {
	switch v := s.values[key].(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// Bool returns a boolean leaf
func (s *Section) Bool(key string) (bool, bool) {
	v, ok := s.values[key].(bool)
	return v, ok
}

// Clone returns a deep copy
func (s *Section) Clone() *Section {
	c := NewSection()
	for _, k := range s.keys {
		v := s.values[k]
		if child, ok := v.(*Section); ok {
			v = child.Clone()
		}
		c.Set(k, v)
	}
	return c
}

// lookup walks path from s
func (s *Section) lookup(path Path) (any, bool) {
	if len(path) == 0 {
		return s, true
	}
	cur := s
	for i, key := range path {
		v, ok := cur.values[key]
		if !ok {
			return nil, false
		}
		if i == len(path)-1 {
			return v, true
		}
		child, ok := v.(*Section)
		if !ok {
			return nil, false
		}
		cur = child
	}
	return nil, false
}

// ensure returns the section at path, creating missing sections and
// replacing leaves that are in the way
func (s *Section) ensure(path Path) *Section {
	cur := s
	for _, key := range path {
		child, ok := cur.values[key].(*Section)
		if !ok {
			child = NewSection()
			cur.Set(key, child)
		}
		cur = child
	}
	return cur
}

func normalize(value any) any {
	switch v := value.(type) {
	case *Section, string, int64, float64, bool:
		return v
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case float32:
		return float64(v)
	default:
		panic(fmt.Sprintf("storage: unsupported value type %T", value))
	}
}

// MarshalYAML encodes the section as an ordered mapping node
func (s *Section) MarshalYAML() (any, error) {
	return s.node(), nil
}

func (s *Section) node() *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range s.keys {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
		n.Content = append(n.Content, key, valueNode(s.values[k]))
	}
	return n
}

func valueNode(v any) *yaml.Node {
	switch v := v.(type) {
	case *Section:
		return v.node()
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
	case int64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(v, 10)}
	case float64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: formatFloat(v)}
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v)}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

// formatFloat writes the shortest exact representation and keeps whole
// numbers recognisable as floats
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case math.IsNaN(f):
		return ".nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// UnmarshalYAML decodes a mapping node. Entries that are not mappings or
// scalars (sequences, for example) are skipped.
func (s *Section) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	fresh := NewSection()
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null" {
		*s = *fresh
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", n.Line)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		v, ok, err := decodeValue(n.Content[i+1])
		if err != nil {
			return err
		}
		if ok {
			fresh.Set(n.Content[i].Value, v)
		}
	}
	*s = *fresh
	return nil
}

func decodeValue(n *yaml.Node) (any, bool, error) {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	switch n.Kind {
	case yaml.MappingNode:
		child := NewSection()
		if err := child.UnmarshalYAML(n); err != nil {
			return nil, false, err
		}
		return child, true, nil
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return nil, false, nil
		case "!!int":
			var i int64
			if err := n.Decode(&i); err == nil {
				return i, true, nil
			}
			var f float64
			if err := n.Decode(&f); err != nil {
				return nil, false, err
			}
			return f, true, nil
		case "!!float":
			var f float64
			if err := n.Decode(&f); err != nil {
				return nil, false, err
			}
			return f, true, nil
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err != nil {
				return nil, false, err
			}
			return b, true, nil
		default:
			return n.Value, true, nil
		}
	}
	return nil, false, nil
}
