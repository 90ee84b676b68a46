package jfmt

import (
	"fmt"
)

// parser builds a [Node] tree from a token stream, implementing the
// comment-attachment heuristics of spec §6: a comment immediately
// preceding an element (with no blank line between) becomes that
// element's PrefixComment; a comment directly after the element's value
// (before its comma, with no blank line between) becomes its
// PostfixComment, whether or not it is on the value's line; the comments
// between a property's colon and its value are joined with newlines into
// MiddleComment; anything else becomes a standalone comment Node.
type parser struct {
	tz  *tokenizer
	cur token
	o   *Options
}

// parse reads a full JSONC document and returns its root values: normally
// exactly one, but the parser also recognizes any number of standalone
// comments/blank lines surrounding it (spec §6: "a document is a single
// value optionally preceded and followed by standalone comments").
func parse(src string, o *Options) ([]*Node, error) {
	p := &parser{tz: newTokenizer(src), o: o}

	if err := p.advance(); err != nil {
		return nil, err
	}

	var roots []*Node

	sawValue := false

	for p.cur.kind != tokEOF {
		if isStandaloneCommentTok(p.cur) {
			roots = append(roots, p.standaloneFromCurrent())

			if err := p.advance(); err != nil {
				return nil, err
			}

			continue
		}

		if sawValue {
			return nil, newError(ErrKindParse, p.cur.pos, ErrSecondTopLevelValue)
		}

		n, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		roots = append(roots, n)
		sawValue = true
	}

	if !sawValue {
		return nil, newError(ErrKindParse, Position{Line: 1, Column: 1}, ErrNoTopLevelValue)
	}

	return roots, nil
}

func isStandaloneCommentTok(t token) bool {
	return t.kind == tokLineComment || t.kind == tokBlockComment
}

func (p *parser) standaloneFromCurrent() *Node {
	kind := KindLineComment
	if p.cur.kind == tokBlockComment {
		kind = KindBlockComment
	}

	return &Node{Kind: kind, Value: p.cur.text, InputColumn: p.cur.pos.Column}
}

// advance fetches the next token from the tokenizer into p.cur.
func (p *parser) advance() error {
	tok, err := p.tz.next()
	if err != nil {
		return err
	}

	p.cur = tok

	return nil
}

// collectLeading consumes and classifies any comments before a value:
// standalone comments (separated by a blank line from what follows, or
// from the very start of a container) are returned separately; a single
// comment block immediately touching the upcoming value becomes its
// prefix (spec §6 "Prefix comment attachment"). A blank source line
// preceding any pending token is surfaced as its own [KindBlankLine] node
// when [Options.PreserveBlankLines] is set (spec §6 "Blank line
// preservation"); otherwise blank runs are silently dropped.
func (p *parser) collectLeading() (standalone []*Node, prefix string, err error) {
	var pending []token

	for isStandaloneCommentTok(p.cur) {
		pending = append(pending, p.cur)

		if err := p.advance(); err != nil {
			return nil, "", err
		}
	}

	// attachLast is true when the comment run ends immediately before the
	// upcoming value (no intervening blank line), so its final comment
	// becomes that value's prefix rather than a standalone node.
	attachLast := len(pending) > 0 && p.cur.blankLinesBefore == 0
	lastAttached := len(pending) - 1

	for i, tk := range pending {
		if p.o.PreserveBlankLines && tk.blankLinesBefore > 0 {
			standalone = append(standalone, &Node{Kind: KindBlankLine})
		}

		if !attachLast || i != lastAttached {
			standalone = append(standalone, commentNodeFrom(tk))
		}
	}

	if p.o.PreserveBlankLines && p.cur.blankLinesBefore > 0 {
		standalone = append(standalone, &Node{Kind: KindBlankLine})
	}

	if !attachLast {
		return standalone, "", nil
	}

	return standalone, pending[lastAttached].text, nil
}

func commentNodeFrom(tk token) *Node {
	kind := KindLineComment
	if tk.kind == tokBlockComment {
		kind = KindBlockComment
	}

	return &Node{Kind: kind, Value: tk.text, InputColumn: tk.pos.Column}
}

// parseValue parses one JSON value (with any attached prefix comment
// already the caller's concern for container members; top-level and
// array-element callers handle prefix attachment themselves via
// collectLeading).
func (p *parser) parseValue() (*Node, error) {
	switch p.cur.kind {
	case tokLBrace:
		return p.parseObject()
	case tokLBracket:
		return p.parseArray()
	case tokString:
		n := &Node{Kind: KindString, Value: p.cur.text}

		return n, p.advance()
	case tokNumber:
		n := &Node{Kind: KindNumber, Value: p.cur.text}

		return n, p.advance()
	case tokTrue:
		n := &Node{Kind: KindTrue, Value: "true"}

		return n, p.advance()
	case tokFalse:
		n := &Node{Kind: KindFalse, Value: "false"}

		return n, p.advance()
	case tokNull:
		n := &Node{Kind: KindNull, Value: "null"}

		return n, p.advance()
	default:
		return nil, newError(ErrKindParse, p.cur.pos, ErrMissingValue)
	}
}

func (p *parser) parseObject() (*Node, error) {
	n := &Node{Kind: KindObject}

	if err := p.advance(); err != nil { // consume '{'
		return nil, err
	}

	seen := make(map[string]bool)

	for {
		standalone, prefix, err := p.collectLeading()
		if err != nil {
			return nil, err
		}

		n.Children = append(n.Children, standalone...)

		if p.cur.kind == tokRBrace {
			break
		}

		if p.cur.kind != tokString {
			return nil, newError(ErrKindParse, p.cur.pos, ErrMissingValue)
		}

		name := p.cur.text

		if seen[name] {
			return nil, newError(ErrKindParse, p.cur.pos, ErrDuplicateKey)
		}

		seen[name] = true

		if err := p.advance(); err != nil {
			return nil, err
		}

		if p.cur.kind != tokColon {
			return nil, newError(ErrKindParse, p.cur.pos, ErrMissingColon)
		}

		if err := p.advance(); err != nil {
			return nil, err
		}

		var middle string

		for isStandaloneCommentTok(p.cur) {
			if middle != "" {
				middle += "\n"
			}

			middle += p.cur.text

			if err := p.advance(); err != nil {
				return nil, err
			}
		}

		field, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		field.Name = name
		field.PrefixComment = prefix
		field.MiddleComment = middle

		if err := p.attachPostfix(field); err != nil {
			return nil, err
		}

		n.Children = append(n.Children, field)

		more, err := p.consumeSeparator(tokRBrace)
		if err != nil {
			return nil, err
		}

		if !more {
			break
		}
	}

	return n, p.advance() // consume '}'
}

func (p *parser) parseArray() (*Node, error) {
	n := &Node{Kind: KindArray}

	if err := p.advance(); err != nil { // consume '['
		return nil, err
	}

	for {
		standalone, prefix, err := p.collectLeading()
		if err != nil {
			return nil, err
		}

		n.Children = append(n.Children, standalone...)

		if p.cur.kind == tokRBracket {
			break
		}

		item, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		item.PrefixComment = prefix

		if err := p.attachPostfix(item); err != nil {
			return nil, err
		}

		n.Children = append(n.Children, item)

		more, err := p.consumeSeparator(tokRBracket)
		if err != nil {
			return nil, err
		}

		if !more {
			break
		}
	}

	return n, p.advance() // consume ']'
}

// attachPostfix consumes a comment directly following node's value, before
// any comma and with no blank line between, as its postfix comment (spec
// §6 "Postfix comment attachment"). The line check against
// [parser.valueEndLine] always matches, so a comment on the next line is
// attached too.
func (p *parser) attachPostfix(node *Node) error {
	if !isStandaloneCommentTok(p.cur) {
		return nil
	}

	if p.cur.blankLinesBefore > 0 || p.cur.pos.Line != p.valueEndLine(node) {
		return nil
	}

	node.PostfixComment = p.cur.text
	node.IsPostCommentLineStyle = p.cur.kind == tokLineComment

	return p.advance()
}

// valueEndLine returns the line of the current token, which is the token
// after the just-parsed value (the comment attachPostfix is examining), not
// the line the value itself ended on.
func (p *parser) valueEndLine(node *Node) int {
	_ = node

	return p.cur.pos.Line
}

// consumeSeparator consumes a comma if present, or validates that the
// upcoming token is the closing bracket/brace. Returns more=true if a
// comma was consumed (another element is expected), false if the
// container is about to close.
func (p *parser) consumeSeparator(closeKind tokenKind) (more bool, err error) {
	// A postfix comment attached just above may have already advanced past
	// a same-line comma-adjacent comment; re-check for comma directly.
	if p.cur.kind == tokComma {
		if err := p.advance(); err != nil {
			return false, err
		}

		// A comment directly after the comma, still same line, attaches as
		// the postfix of the comma's preceding element — already handled
		// before the comma in the common case, so here we only need to
		// detect a trailing comma followed immediately by the close token.
		if p.cur.kind == closeKind {
			if !p.o.AllowTrailingCommas {
				return false, newError(ErrKindParse, p.cur.pos, ErrTrailingCommaBanned)
			}

			return false, nil
		}

		return true, nil
	}

	if p.cur.kind == closeKind {
		return false, nil
	}

	return false, newError(ErrKindParse, p.cur.pos, fmt.Errorf("%w: expected , or closing bracket", ErrCommaPlacement))
}
