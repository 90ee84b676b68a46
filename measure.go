package jfmt

import "strings"

// measure runs the length computer (spec §4.2): a single bottom-up pass
// over n that fills in every measured-width field and RequiresMultipleLines,
// and computes MinimumTotalLen exactly once. Called once per top-level item
// before the layout engine visits it.
func measure(n *Node, tok *paddedTokens) {
	wf := tok.width

	if n.Kind.IsStandaloneComment() {
		n.ValueLen = wf(n.Value)
		n.RequiresMultipleLines = true

		return
	}

	n.PrefixLen = wf(n.PrefixComment)
	n.MiddleLen = wf(n.MiddleComment)
	n.PostfixLen = wf(n.PostfixComment)
	n.NameLen = wf(n.Name)

	requiresMulti := containsNewline(n.PrefixComment) ||
		strings.HasPrefix(n.PrefixComment, "//") ||
		containsNewline(n.MiddleComment) ||
		containsNewline(n.PostfixComment) ||
		containsNewline(n.Value)

	switch n.Kind {
	case KindArray, KindObject:
		measureContainer(n, tok, &requiresMulti)
	default:
		n.ValueLen = wf(n.Value)
		n.Complexity = 0
	}

	n.RequiresMultipleLines = n.RequiresMultipleLines || requiresMulti
	n.MinimumTotalLen = minimumTotalLen(n, tok)
}

// measureContainer measures an Array/Object node's children and fills in
// Complexity and ValueLen.
func measureContainer(n *Node, tok *paddedTokens, requiresMulti *bool) {
	maxChildComplexity := -1
	dataChildCount := 0
	childrenMinTotal := 0
	interCommaWidth := 0

	for _, c := range n.Children {
		measure(c, tok)

		if c.RequiresMultipleLines {
			*requiresMulti = true
		}

		childrenMinTotal += c.MinimumTotalLen

		if c.IsDataChild() {
			if dataChildCount > 0 {
				interCommaWidth += tok.commaWidth
			}

			dataChildCount++

			if c.Complexity > maxChildComplexity {
				maxChildComplexity = c.Complexity
			}

			// An element ending with a line-style postfix comment forces
			// this container onto multiple lines (spec §4.2 item 2: "any
			// child ... ends with a line-style postfix comment").
			if c.IsPostCommentLineStyle && c.PostfixComment != "" {
				*requiresMulti = true
			}
		}
	}

	if maxChildComplexity < 0 {
		n.Complexity = 0
	} else {
		n.Complexity = 1 + maxChildComplexity
	}

	pt := padTypeFor(n)
	startW := tok.startWidthFor(n.Kind, pt)
	endW := tok.endWidthFor(n.Kind, pt)

	n.ValueLen = startW + endW + childrenMinTotal + interCommaWidth
}

// minimumTotalLen computes spec §4.2 item 4: the total width n would occupy
// forced onto a single line, including separators between non-empty
// components.
func minimumTotalLen(n *Node, tok *paddedTokens) int {
	total := 0

	if n.PrefixLen > 0 {
		total += n.PrefixLen + tok.commentSpaceWidth
	}

	if n.NameLen > 0 {
		total += n.NameLen + tok.colonWidth
	}

	if n.MiddleLen > 0 {
		total += n.MiddleLen + tok.commentSpaceWidth
	}

	total += n.ValueLen

	if n.PostfixLen > 0 {
		total += tok.commentSpaceWidth + n.PostfixLen
	}

	return total
}

func containsNewline(s string) bool {
	return strings.ContainsRune(s, '\n')
}
