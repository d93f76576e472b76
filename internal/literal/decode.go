package literal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DecodeJSON resolves a JSON document into a Value.
// Object key order and number digits are preserved exactly as written.
// A repeated key keeps its first position and takes the last value.
func DecodeJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode json: unexpected data after top-level value")
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := Object{}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is %T, not string", keyTok)
				}
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, fmt.Errorf("object[%q]: %w", key, err)
				}
				obj = obj.With(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			arr := Array{}
			for dec.More() {
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, fmt.Errorf("array[%d]: %w", len(arr), err)
				}
				arr = append(arr, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %q", rune(t))
	case string:
		return String(t), nil
	case json.Number:
		return ParseNumber(string(t))
	case bool:
		return Bool(t), nil
	case nil:
		return Null{}, nil
	default:
		return nil, fmt.Errorf("unexpected token %T", tok)
	}
}

// DecodeYAML resolves a single YAML document into a Value.
// Mapping key order is preserved. Scalars resolve by their YAML tag;
// numbers keep the digits they were written with.
func DecodeYAML(data []byte) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	node := &doc
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil, fmt.Errorf("decode yaml: empty document")
		}
		node = doc.Content[0]
	}
	if node.Kind == 0 {
		return nil, fmt.Errorf("decode yaml: empty document")
	}

	v, err := fromYAMLNode(node)
	if err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return v, nil
}

func fromYAMLNode(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, fmt.Errorf("line %d: dangling alias", n.Line)
		}
		return fromYAMLNode(n.Alias)

	case yaml.MappingNode:
		obj := Object{}
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode, valNode := n.Content[i], n.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode || keyNode.ShortTag() != "!!str" {
				return nil, fmt.Errorf("line %d: mapping key must be a string, got %s", keyNode.Line, keyNode.ShortTag())
			}
			val, err := fromYAMLNode(valNode)
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", keyNode.Value, err)
			}
			obj = obj.With(keyNode.Value, val)
		}
		return obj, nil

	case yaml.SequenceNode:
		arr := make(Array, 0, len(n.Content))
		for i, item := range n.Content {
			val, err := fromYAMLNode(item)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr = append(arr, val)
		}
		return arr, nil

	case yaml.ScalarNode:
		return fromYAMLScalar(n)

	default:
		return nil, fmt.Errorf("line %d: unexpected yaml node kind %d", n.Line, n.Kind)
	}
}

func fromYAMLScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null{}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return Bool(b), nil
	case "!!int":
		if num, err := ParseNumber(n.Value); err == nil {
			return num, nil
		}
		// Hex, octal and underscore forms.
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return Int(i), nil
	case "!!float":
		switch strings.ToLower(strings.TrimLeft(n.Value, "+-")) {
		case ".inf", ".nan":
			return nil, &FormatError{Err: ErrInvalidFormat, Detail: fmt.Sprintf("line %d: non-finite number %s", n.Line, n.Value)}
		}
		if num, err := ParseNumber(n.Value); err == nil {
			return num, nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return Float(f)
	case "!!str", "!!timestamp":
		return String(n.Value), nil
	default:
		return nil, &FormatError{Err: ErrUnsupportedType, Detail: fmt.Sprintf("line %d: yaml tag %s", n.Line, n.Tag)}
	}
}

// FromAny converts a native Go value into a Value. Accepted inputs are
// nil, bool, string, the integer and float kinds, json.Number, []any,
// map[string]any and Value itself. Map keys are sorted so the result is
// deterministic. Anything else is ErrUnsupportedType; it is never
// stringified.
func FromAny(v any) (Value, error) {
	return fromAny(v, rootPath)
}

func fromAny(v any, path string) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return val, nil
	case bool:
		return Bool(val), nil
	case string:
		return String(val), nil
	case json.Number:
		n, err := ParseNumber(string(val))
		return withPath(n, err, path)
	case int:
		return Int(int64(val)), nil
	case int8:
		return Int(int64(val)), nil
	case int16:
		return Int(int64(val)), nil
	case int32:
		return Int(int64(val)), nil
	case int64:
		return Int(val), nil
	case uint:
		return Uint(uint64(val)), nil
	case uint8:
		return Uint(uint64(val)), nil
	case uint16:
		return Uint(uint64(val)), nil
	case uint32:
		return Uint(uint64(val)), nil
	case uint64:
		return Uint(val), nil
	case float32:
		n, err := Float(float64(val))
		return withPath(n, err, path)
	case float64:
		if val == math.Trunc(val) && math.Abs(val) < 1<<53 {
			return Int(int64(val)), nil
		}
		n, err := Float(val)
		return withPath(n, err, path)
	case []any:
		arr := make(Array, len(val))
		for i, elem := range val {
			lit, err := fromAny(elem, indexPath(path, i))
			if err != nil {
				return nil, err
			}
			arr[i] = lit
		}
		return arr, nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := make(Object, 0, len(keys))
		for _, k := range keys {
			lit, err := fromAny(val[k], keyPath(path, k))
			if err != nil {
				return nil, err
			}
			obj = append(obj, Field{Key: k, Value: lit})
		}
		return obj, nil
	default:
		return nil, &FormatError{
			Err:    ErrUnsupportedType,
			Path:   path,
			Detail: reflect.TypeOf(v).String(),
		}
	}
}

func withPath(n Number, err error, path string) (Value, error) {
	if err != nil {
		var fe *FormatError
		if errors.As(err, &fe) {
			fe.Path = path
		}
		return nil, err
	}
	return n, nil
}
