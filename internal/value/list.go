package value

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// node is a parsed bracket tree: either an atom or a bracketed sequence.
type node struct {
	atom     string
	quoted   bool
	children []node
	isArray  bool
}

// ParseStructure parses box notation. A null-terminated chain of two
// element arrays is a list, any other two element array is a pair and a
// flat array of another length is a list of its elements. "null" and "[]"
// are the empty list.
func ParseStructure(s string) (Value, error) {
	p := &listParser{src: strings.TrimSpace(s)}
	n, err := p.parseNode()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("unexpected %q at offset %d", p.src[p.pos:], p.pos)
	}
	if !n.isArray && (n.quoted || n.atom != "null") {
		return nil, errors.New("not a list or pair")
	}
	return nodeValue(n), nil
}

// ParseList parses list notation into its elements. Both the nested pair
// form "[1, [2, [3, null]]]" and flat arrays "[1, 2, 3]" are accepted; a
// pair with a non-list tail is an error.
func ParseList(s string) ([]Value, error) {
	v, err := ParseStructure(s)
	if err != nil {
		return nil, err
	}
	switch l := v.(type) {
	case NullValue:
		return []Value{}, nil
	case ListValue:
		return l.Elems, nil
	}
	return nil, fmt.Errorf("%s is a pair, not a list", v)
}

// FormatList renders elements in nested pair notation.
func FormatList(elems []Value) string {
	if len(elems) == 0 {
		return "null"
	}
	var b strings.Builder
	for _, e := range elems {
		b.WriteString("[")
		b.WriteString(formatElem(e))
		b.WriteString(", ")
	}
	b.WriteString("null")
	b.WriteString(strings.Repeat("]", len(elems)))
	return b.String()
}

func formatElem(v Value) string {
	if s, ok := v.(StringValue); ok {
		return strconv.Quote(s.S)
	}
	return v.String()
}

// isPairChain reports whether n is null or a two-element array whose tail
// is itself a pair chain.
func isPairChain(n node) bool {
	if !n.isArray {
		return !n.quoted && n.atom == "null"
	}
	return len(n.children) == 2 && isPairChain(n.children[1])
}

func nodeValue(n node) Value {
	switch {
	case !n.isArray && n.quoted:
		return StringValue{S: n.atom}
	case !n.isArray:
		return ParseString(n.atom)
	case len(n.children) == 0:
		return NullValue{}
	case isPairChain(n):
		var elems []Value
		for cur := n; cur.isArray; cur = cur.children[1] {
			elems = append(elems, nodeValue(cur.children[0]))
		}
		return ListValue{Elems: elems}
	case len(n.children) == 2:
		return PairValue{Head: nodeValue(n.children[0]), Tail: nodeValue(n.children[1])}
	}
	elems := make([]Value, len(n.children))
	for i, c := range n.children {
		elems[i] = nodeValue(c)
	}
	return ListValue{Elems: elems}
}

type listParser struct {
	src string
	pos int
}

func (p *listParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t' || p.src[p.pos] == '\n' || p.src[p.pos] == '\r') {
		p.pos++
	}
}

func (p *listParser) parseNode() (node, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return node{}, errors.New("unexpected end of input")
	}
	switch p.src[p.pos] {
	case '[':
		return p.parseArray()
	case '"', '\'':
		return p.parseQuoted()
	default:
		return p.parseAtom()
	}
}

func (p *listParser) parseArray() (node, error) {
	p.pos++ // '['
	n := node{isArray: true}
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == ']' {
		p.pos++
		return n, nil
	}
	for {
		child, err := p.parseNode()
		if err != nil {
			return node{}, err
		}
		n.children = append(n.children, child)
		p.skipSpace()
		if p.pos >= len(p.src) {
			return node{}, errors.New("unterminated list")
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
		case ']':
			p.pos++
			return n, nil
		default:
			return node{}, fmt.Errorf("unexpected %q at offset %d", p.src[p.pos], p.pos)
		}
	}
}

func (p *listParser) parseQuoted() (node, error) {
	quote := p.src[p.pos]
	start := p.pos
	p.pos++
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '\\':
			p.pos += 2
			continue
		case quote:
			p.pos++
			lit := p.src[start:p.pos]
			if quote == '\'' {
				lit = `"` + strings.ReplaceAll(lit[1:len(lit)-1], `"`, `\"`) + `"`
			}
			s, err := strconv.Unquote(lit)
			if err != nil {
				return node{}, fmt.Errorf("bad string literal %s: %w", lit, err)
			}
			return node{atom: s, quoted: true}, nil
		}
		p.pos++
	}
	return node{}, errors.New("unterminated string")
}

func (p *listParser) parseAtom() (node, error) {
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != ',' && p.src[p.pos] != ']' && p.src[p.pos] != '[' {
		p.pos++
	}
	atom := strings.TrimSpace(p.src[start:p.pos])
	if atom == "" {
		return node{}, fmt.Errorf("empty element at offset %d", start)
	}
	return node{atom: atom}, nil
}
