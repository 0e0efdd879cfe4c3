package filterql

import (
	"strconv"
	"strings"
)

// Parse compiles a SCIM filter string into its immutable AST (§4.E). It
// fails with spec.ErrInvalidFilter, annotated with a byte position and
// message, on malformed input.
func Parse(filter string) (*Node, error) {
	p := &parser{scan: newScanner(filter)}
	if err := p.advance(); err != nil {
		return nil, err
	}

	node, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, invalidFilterf(p.tok.pos, "unexpected trailing input %q", p.tok.text)
	}
	return node, nil
}

type parser struct {
	scan *scanner
	tok  token
}

func (p *parser) advance() error {
	t, err := p.scan.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *parser) isKeyword(word string) bool {
	return p.tok.kind == tokWord && strings.EqualFold(p.tok.text, word)
}

// parseOr := andExpr ( "or" andExpr )*
func (p *parser) parseOr() (*Node, error) {
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	children := []*Node{first}
	for p.isKeyword("or") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		next, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}

	if len(children) == 1 {
		return children[0], nil
	}
	return NewLogical(OR, children...), nil
}

// parseAnd := term ( "and" term )*
func (p *parser) parseAnd() (*Node, error) {
	first, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	children := []*Node{first}
	for p.isKeyword("and") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		next, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}

	if len(children) == 1 {
		return children[0], nil
	}
	return NewLogical(AND, children...), nil
}

// term := "(" filter ")" | predicate
func (p *parser) parseTerm() (*Node, error) {
	if p.tok.kind == tokLParen {
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokRParen {
			return nil, invalidFilterf(p.tok.pos, "expected closing parenthesis")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return p.parsePredicate()
}

var opByKeyword = map[string]Op{
	"eq": EQ, "co": CO, "sw": SW, "pr": PR,
	"gt": GT, "ge": GE, "lt": LT, "le": LE,
}

// predicate := attrPath ws op ( ws value )?
func (p *parser) parsePredicate() (*Node, error) {
	if p.tok.kind != tokWord {
		return nil, invalidFilterf(p.tok.pos, "expected attribute path")
	}
	path, err := parseAttributePath(p.tok.text, p.tok.pos)
	if err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.tok.kind != tokWord {
		return nil, invalidFilterf(p.tok.pos, "expected filter operator")
	}
	op, ok := opByKeyword[strings.ToLower(p.tok.text)]
	if !ok {
		return nil, invalidFilterf(p.tok.pos, "unknown filter operator %q", p.tok.text)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	if op == PR {
		return NewComparison(PR, path, ""), nil
	}

	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	return NewComparison(op, path, value), nil
}

// value := quotedString | bareLiteral
func (p *parser) parseValue() (string, error) {
	switch p.tok.kind {
	case tokString:
		v := p.tok.text
		if err := p.advance(); err != nil {
			return "", err
		}
		return v, nil
	case tokWord:
		v := p.tok.text
		if !isBareLiteral(v) {
			return "", invalidFilterf(p.tok.pos, "invalid bare literal %q: must be true, false or an integer", v)
		}
		if err := p.advance(); err != nil {
			return "", err
		}
		return v, nil
	default:
		return "", invalidFilterf(p.tok.pos, "expected a filter value")
	}
}

func isBareLiteral(v string) bool {
	if v == "true" || v == "false" {
		return true
	}
	_, err := strconv.ParseInt(v, 10, 64)
	return err == nil
}

// parseAttributePath splits a raw attribute-path token into its optional
// schema URI, attribute name and optional sub-attribute name (§4.E
// "schemaURI is any colon-bearing prefix up to the last colon before the
// attribute name").
func parseAttributePath(raw string, pos int) (AttributePath, error) {
	schemaURI := ""
	rest := raw
	if idx := strings.LastIndex(raw, ":"); idx >= 0 {
		schemaURI = raw[:idx]
		rest = raw[idx+1:]
	}
	if rest == "" {
		return AttributePath{}, invalidFilterf(pos, "missing attribute name in %q", raw)
	}

	name := rest
	subName := ""
	if idx := strings.Index(rest, "."); idx >= 0 {
		name = rest[:idx]
		subName = rest[idx+1:]
		if name == "" || subName == "" {
			return AttributePath{}, invalidFilterf(pos, "malformed attribute path %q", raw)
		}
	}

	return AttributePath{SchemaURI: schemaURI, Name: name, SubName: subName}, nil
}
