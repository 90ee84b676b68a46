package jfmt

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// maxConvertDepth bounds recursion in [valueToNode] against cyclic or
// pathologically deep inputs (spec §7 "ValueToNode recursion limit").
const maxConvertDepth = 10000

// valueToNode converts a decoded Go value (as produced by
// encoding/json.Unmarshal into interface{}, or built by hand with the same
// shapes) into a [Node] tree suitable for [measure] and the layout engine.
// A map[string]any carries no key order, so its keys are sorted for
// determinism; an [orderedMap] keeps its insertion order.
func valueToNode(v any, depth int) (*Node, error) {
	if depth > maxConvertDepth {
		return nil, newError(ErrKindConvert, Position{}, ErrRecursionLimit)
	}

	switch t := v.(type) {
	case nil:
		return &Node{Kind: KindNull, Value: "null"}, nil
	case bool:
		if t {
			return &Node{Kind: KindTrue, Value: "true"}, nil
		}

		return &Node{Kind: KindFalse, Value: "false"}, nil
	case string:
		return &Node{Kind: KindString, Value: strconv.Quote(t)}, nil
	case json.Number:
		return &Node{Kind: KindNumber, Value: t.String()}, nil
	case float64:
		return &Node{Kind: KindNumber, Value: formatFloat(t)}, nil
	case int:
		return &Node{Kind: KindNumber, Value: strconv.Itoa(t)}, nil
	case int64:
		return &Node{Kind: KindNumber, Value: strconv.FormatInt(t, 10)}, nil
	case []any:
		return arrayToNode(t, depth)
	case map[string]any:
		return objectToNode(t, depth)
	case *orderedMap:
		return orderedMapToNode(t, depth)
	default:
		return nil, fmt.Errorf("%w: unsupported Go type %T", ErrInvalidOption, v)
	}
}

func arrayToNode(items []any, depth int) (*Node, error) {
	n := &Node{Kind: KindArray}

	for _, item := range items {
		child, err := valueToNode(item, depth+1)
		if err != nil {
			return nil, err
		}

		n.Children = append(n.Children, child)
	}

	return n, nil
}

func objectToNode(m map[string]any, depth int) (*Node, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	n := &Node{Kind: KindObject}

	for _, k := range keys {
		child, err := valueToNode(m[k], depth+1)
		if err != nil {
			return nil, err
		}

		child.Name = strconv.Quote(k)
		n.Children = append(n.Children, child)
	}

	return n, nil
}

// orderedMap preserves insertion order for callers that need object keys
// emitted in their original order rather than sorted (spec §7 "Key order").
type orderedMap struct {
	keys   []string
	values map[string]any
}

// newOrderedMap returns an empty [orderedMap].
func newOrderedMap() *orderedMap {
	return &orderedMap{values: make(map[string]any)}
}

// Set appends key (or overwrites it in place if already present) with
// value.
func (m *orderedMap) Set(key string, value any) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}

	m.values[key] = value
}

func orderedMapToNode(m *orderedMap, depth int) (*Node, error) {
	n := &Node{Kind: KindObject}

	for _, k := range m.keys {
		child, err := valueToNode(m.values[k], depth+1)
		if err != nil {
			return nil, err
		}

		child.Name = strconv.Quote(k)
		n.Children = append(n.Children, child)
	}

	return n, nil
}

// formatFloat renders f as the shortest 'g'-format string that round-trips
// (strconv.FormatFloat with precision -1), with no ".0" for whole numbers.
// Magnitudes of 1e6 and above, or below 1e-4, come out in exponent form
// (1000000 becomes "1e+06"), unlike encoding/json.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
