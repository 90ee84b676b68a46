package jfmt

import "fmt"

// Format reads a JSONC document from src and returns its formatted
// equivalent according to o. src may contain comments, trailing commas
// (only honored if o.AllowTrailingCommas), and blank lines; the result
// preserves or strips each according to o.CommentPolicy and
// o.PreserveBlankLines (spec §6 "Format").
func Format(src string, o Options) (string, error) {
	norm := o.normalized()

	roots, err := parse(src, &norm)
	if err != nil {
		return "", err
	}

	roots, err = applyCommentPolicy(roots, norm)
	if err != nil {
		return "", err
	}

	if !norm.PreserveBlankLines {
		roots = stripBlankLines(roots)
	}

	return renderDocument(roots, norm), nil
}

// FormatValue renders a decoded Go value (see [valueToNode]) with the same
// layout engine [Format] uses. Comments and blank lines never apply since
// v carries none.
func FormatValue(v any, o Options) (string, error) {
	norm := o.normalized()

	n, err := valueToNode(v, 0)
	if err != nil {
		return "", err
	}

	return renderDocument([]*Node{n}, norm), nil
}

// applyCommentPolicy removes every comment Node and comment attachment
// when o.CommentPolicy is CommentRemove, or returns ErrCommentNotAllowed
// when it is CommentTreatAsError and any comment is present.
func applyCommentPolicy(roots []*Node, o Options) ([]*Node, error) {
	switch o.CommentPolicy {
	case CommentPreserve:
		return roots, nil
	case CommentRemove:
		return removeComments(roots), nil
	case CommentTreatAsError:
		if n := firstComment(roots); n != nil {
			return nil, newError(ErrKindParse, Position{}, fmt.Errorf("%w: %q", ErrCommentNotAllowed, n.Value))
		}

		return roots, nil
	default:
		return roots, nil
	}
}

func firstComment(nodes []*Node) *Node {
	for _, n := range nodes {
		if n.Kind == KindLineComment || n.Kind == KindBlockComment {
			return n
		}

		if n.PrefixComment != "" || n.MiddleComment != "" || n.PostfixComment != "" {
			return n
		}

		if found := firstComment(n.Children); found != nil {
			return found
		}
	}

	return nil
}

func removeComments(nodes []*Node) []*Node {
	var out []*Node

	for _, n := range nodes {
		if n.Kind == KindLineComment || n.Kind == KindBlockComment {
			continue
		}

		n.PrefixComment = ""
		n.MiddleComment = ""
		n.PostfixComment = ""
		n.IsPostCommentLineStyle = false
		n.Children = removeComments(n.Children)

		out = append(out, n)
	}

	return out
}

func stripBlankLines(nodes []*Node) []*Node {
	var out []*Node

	for _, n := range nodes {
		if n.Kind == KindBlankLine {
			continue
		}

		n.Children = stripBlankLines(n.Children)
		out = append(out, n)
	}

	return out
}
