package jfmt

import "strings"

// Minify reads a JSONC document from src and returns the most compact
// equivalent JSON text: all comments and insignificant whitespace
// removed, no trailing commas (spec §6 "Minify").
func Minify(src string) (string, error) {
	o := DefaultOptions()

	roots, err := parse(src, &o)
	if err != nil {
		return "", err
	}

	values := dataOnly(roots)
	if len(values) != 1 {
		return "", newError(ErrKindParse, Position{Line: 1, Column: 1}, ErrNoTopLevelValue)
	}

	var sb strings.Builder
	minifyNode(values[0], &sb)

	return sb.String(), nil
}

// MinifyValue marshals v (a decoded Go value, see [valueToNode]) to the
// most compact equivalent JSON text.
func MinifyValue(v any) (string, error) {
	n, err := valueToNode(v, 0)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	minifyNode(n, &sb)

	return sb.String(), nil
}

func dataOnly(nodes []*Node) []*Node {
	var out []*Node

	for _, n := range nodes {
		if n.IsDataChild() {
			out = append(out, n)
		}
	}

	return out
}

// minifyNode writes n's minimal JSON form, recursively, with no comments
// and no extraneous whitespace.
func minifyNode(n *Node, sb *strings.Builder) {
	switch n.Kind {
	case KindArray:
		sb.WriteByte('[')

		children := n.DataChildren()
		for i, c := range children {
			if i > 0 {
				sb.WriteByte(',')
			}

			minifyNode(c, sb)
		}

		sb.WriteByte(']')
	case KindObject:
		sb.WriteByte('{')

		children := n.DataChildren()
		for i, c := range children {
			if i > 0 {
				sb.WriteByte(',')
			}

			sb.WriteString(c.Name)
			sb.WriteByte(':')
			minifyNode(c, sb)
		}

		sb.WriteByte('}')
	default:
		sb.WriteString(n.Value)
	}
}
