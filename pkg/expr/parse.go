package expr

import (
	"fmt"
	"strconv"
)

// MaxParseDepth is the deepest nesting Parse accepts.
const MaxParseDepth = 64

// SyntaxError reports malformed input to Parse.
type SyntaxError struct {
	// Pos is the byte offset in the input where the problem was found.
	Pos int
	// Msg describes the problem.
	Msg string
}

func (err *SyntaxError) Error() string {
	return "expr: col " + strconv.Itoa(err.Pos) + ": " + err.Msg
}

// Parse reads a tree in the form produced by Node.String, e.g.
// "prod(x, cos_pi(y))". Whitespace between tokens is ignored.
func Parse(s string) (Node, error) {
	p := &parser{src: s}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, p.errorf("unexpected %q after expression", p.src[p.pos:])
	}
	return n, nil
}

var (
	varsByName   = map[string]Var{}
	unaryByName  = map[string]UnaryOp{}
	binaryByName = map[string]BinaryOp{}
)

func init() {
	for v, name := range varNames {
		varsByName[name] = v
	}
	for op, name := range unaryOpNames {
		unaryByName[name] = op
	}
	for op, name := range binaryOpNames {
		binaryByName[name] = op
	}
}

type parser struct {
	src   string
	pos   int
	depth int
}

func (p *parser) errorf(format string, args ...any) *SyntaxError {
	return &SyntaxError{Pos: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) ident() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c != '_' && !('a' <= c && c <= 'z') && !('A' <= c && c <= 'Z') && !('0' <= c && c <= '9') {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) expect(c byte) error {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return p.errorf("expected %q, got end of input", c)
	}
	if p.src[p.pos] != c {
		return p.errorf("expected %q, got %q", c, p.src[p.pos])
	}
	p.pos++
	return nil
}

func (p *parser) expr() (Node, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > MaxParseDepth {
		p.skipSpace()
		return nil, p.errorf("nesting deeper than %d levels", MaxParseDepth)
	}

	start := p.pos
	name := p.ident()
	if name == "" {
		if p.pos >= len(p.src) {
			return nil, p.errorf("expected expression, got end of input")
		}
		return nil, p.errorf("expected expression, got %q", p.src[p.pos])
	}

	if v, ok := varsByName[name]; ok {
		return &VarNode{Var: v}, nil
	}
	if op, ok := unaryByName[name]; ok {
		if err := p.expect('('); err != nil {
			return nil, err
		}
		child, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return &UnaryNode{Op: op, Child: child}, nil
	}
	if op, ok := binaryByName[name]; ok {
		if err := p.expect('('); err != nil {
			return nil, err
		}
		left, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(','); err != nil {
			return nil, err
		}
		right, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return &BinaryNode{Op: op, Left: left, Right: right}, nil
	}

	p.pos = start
	p.skipSpace()
	return nil, p.errorf("unknown function %q", name)
}
