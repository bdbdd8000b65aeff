package feed

import (
	"fmt"
	"iter"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DateLayout renders timestamps with a numeric offset, so UTC becomes +00:00.
const DateLayout = "2006-01-02T15:04:05-07:00"

// Value is one of Scalar, DateTime or *Mapping.
type Value interface {
	isValue()
}

type Scalar string

type DateTime time.Time

func (Scalar) isValue()   {}
func (DateTime) isValue() {}
func (*Mapping) isValue() {}

func String(s string) Scalar {
	return Scalar(s)
}

func Int(n int64) Scalar {
	return Scalar(strconv.FormatInt(n, 10))
}

func Float(f float64) Scalar {
	return Scalar(strconv.FormatFloat(f, 'f', -1, 64))
}

func Date(t time.Time) DateTime {
	return DateTime(t)
}

func (d DateTime) String() string {
	return FormatDate(time.Time(d))
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate accepts the timestamp shapes found in front matter. Values without
// an offset are read in time.Local.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Mapping is an ordered string-keyed map. Setting an existing key keeps its position.
type Mapping struct {
	keys   []string
	values map[string]Value
}

func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]Value)}
}

func (m *Mapping) Set(key string, value Value) *Mapping {
	if m.values == nil {
		m.values = make(map[string]Value)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
	return m
}

func (m *Mapping) Get(key string) (Value, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

func (m *Mapping) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// All yields pairs in insertion order.
func (m *Mapping) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// UnmarshalYAML decodes a YAML mapping node, keeping document order.
func (m *Mapping) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping: %w", node.Line, ErrUnsupportedValue)
	}

	*m = Mapping{values: make(map[string]Value, len(node.Content)/2)}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, valueNode := node.Content[i], node.Content[i+1]
		value, err := decodeNode(valueNode)
		if err != nil {
			return fmt.Errorf("key %q: %w", key.Value, err)
		}
		m.Set(key.Value, value)
	}
	return nil
}

func decodeNode(node *yaml.Node) (Value, error) {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}

	switch node.Kind {
	case yaml.MappingNode:
		child := NewMapping()
		if err := child.UnmarshalYAML(node); err != nil {
			return nil, err
		}
		return child, nil
	case yaml.ScalarNode:
		switch node.ShortTag() {
		case "!!null":
			return Scalar(""), nil
		case "!!timestamp":
			var t time.Time
			if err := node.Decode(&t); err != nil {
				return nil, fmt.Errorf("line %d: %w", node.Line, err)
			}
			return DateTime(t), nil
		}
		return Scalar(node.Value), nil
	default:
		return nil, fmt.Errorf("line %d: sequences are not supported: %w", node.Line, ErrUnsupportedValue)
	}
}
