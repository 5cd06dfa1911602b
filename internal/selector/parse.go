package selector

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Expression syntax tree. Nodes are compiled into evaluator closures after
// parsing; the tree itself is discarded.

type nodeKind int

const (
	nodeNumber nodeKind = iota
	nodeAttr
	nodeUnary  // operators ! and unary -
	nodeBinary // arithmetic, comparison, boolean connectives
	nodeCall   // abs(...)
)

type node struct {
	kind  nodeKind
	num   float64
	name  string // attribute or function name
	op    string
	left  *node
	right *node
	arg   *node
}

type token struct {
	kind tokenKind
	text string
	num  float64
	pos  int
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokOp
	tokLParen
	tokRParen
)

func lex(input string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n':
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen, pos: i})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen, pos: i})
			i++
		case strings.ContainsRune("<>=!&|+-*/", rune(c)):
			op := string(c)
			if i+1 < len(input) {
				two := input[i : i+2]
				switch two {
				case "<=", ">=", "==", "!=", "&&", "||":
					op = two
				}
			}
			if op == "=" {
				return nil, exprErrorf("unexpected '=' at offset %d (use == for comparison)", i)
			}
			toks = append(toks, token{kind: tokOp, text: op, pos: i})
			i += len(op)
		case c >= '0' && c <= '9' || c == '.':
			j := i
			for j < len(input) && (input[j] >= '0' && input[j] <= '9' || input[j] == '.' ||
				input[j] == 'e' || input[j] == 'E' ||
				((input[j] == '+' || input[j] == '-') && (input[j-1] == 'e' || input[j-1] == 'E'))) {
				j++
			}
			num, err := strconv.ParseFloat(input[i:j], 64)
			if err != nil {
				return nil, exprErrorf("malformed number %q at offset %d", input[i:j], i)
			}
			toks = append(toks, token{kind: tokNumber, num: num, pos: i})
			i = j
		case unicode.IsLetter(rune(c)) || c == '_':
			j := i
			for j < len(input) && (unicode.IsLetter(rune(input[j])) || unicode.IsDigit(rune(input[j])) ||
				input[j] == '_' || input[j] == '.') {
				j++
			}
			toks = append(toks, token{kind: tokIdent, text: input[i:j], pos: i})
			i = j
		default:
			return nil, exprErrorf("unexpected character %q at offset %d", string(c), i)
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(input)})
	return toks, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) acceptOp(ops ...string) (string, bool) {
	t := p.peek()
	if t.kind != tokOp {
		return "", false
	}
	for _, op := range ops {
		if t.text == op {
			p.next()
			return op, true
		}
	}
	return "", false
}

// parse builds the syntax tree for one expression. Precedence, loosest first:
// or, and, comparison, additive, multiplicative, unary.
func parse(input string) (*node, error) {
	if strings.TrimSpace(input) == "" {
		return nil, exprErrorf("expression is empty")
	}
	toks, err := lex(input)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	n, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, exprErrorf("unexpected trailing input at offset %d", t.pos)
	}
	return n, nil
}

func (p *parser) parseOr() (*node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.acceptOp("||", "|"); !ok {
			return left, nil
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &node{kind: nodeBinary, op: "||", left: left, right: right}
	}
}

func (p *parser) parseAnd() (*node, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.acceptOp("&&", "&"); !ok {
			return left, nil
		}
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &node{kind: nodeBinary, op: "&&", left: left, right: right}
	}
}

func (p *parser) parseComparison() (*node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	op, ok := p.acceptOp("<=", ">=", "==", "!=", "<", ">")
	if !ok {
		return left, nil
	}
	right, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	return &node{kind: nodeBinary, op: op, left: left, right: right}, nil
}

func (p *parser) parseAdditive() (*node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.acceptOp("+", "-")
		if !ok {
			return left, nil
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &node{kind: nodeBinary, op: op, left: left, right: right}
	}
}

func (p *parser) parseMultiplicative() (*node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.acceptOp("*", "/")
		if !ok {
			return left, nil
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &node{kind: nodeBinary, op: op, left: left, right: right}
	}
}

func (p *parser) parseUnary() (*node, error) {
	if op, ok := p.acceptOp("!", "-"); ok {
		arg, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &node{kind: nodeUnary, op: op, arg: arg}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (*node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return &node{kind: nodeNumber, num: t.num}, nil
	case tokIdent:
		if p.peek().kind == tokLParen {
			p.next()
			arg, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			if p.next().kind != tokRParen {
				return nil, exprErrorf("missing ')' in call to %s", t.text)
			}
			return &node{kind: nodeCall, name: t.text, arg: arg}, nil
		}
		return &node{kind: nodeAttr, name: t.text}, nil
	case tokLParen:
		n, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.next().kind != tokRParen {
			return nil, exprErrorf("missing ')'")
		}
		return n, nil
	case tokEOF:
		return nil, exprErrorf("unexpected end of expression")
	default:
		return nil, exprErrorf("unexpected token at offset %d", t.pos)
	}
}

type evaluator func(Object) float64

func boolValue(v bool) float64 {
	if v {
		return 1
	}
	return 0
}

// compileNode lowers a syntax node into an evaluator closure, validating
// attribute and function names against the object type's attribute set.
func compileNode(n *node, attrs Attributes, expr string) (evaluator, error) {
	switch n.kind {
	case nodeNumber:
		v := n.num
		return func(Object) float64 { return v }, nil

	case nodeAttr:
		name := n.name
		if _, ok := attrs[name]; !ok {
			return nil, exprErrorf("unknown attribute %q in %q", name, expr)
		}
		return func(obj Object) float64 {
			v, _ := obj.Attr(name)
			return v
		}, nil

	case nodeCall:
		if n.name != "abs" {
			return nil, exprErrorf("unknown function %q in %q", n.name, expr)
		}
		arg, err := compileNode(n.arg, attrs, expr)
		if err != nil {
			return nil, err
		}
		return func(obj Object) float64 { return math.Abs(arg(obj)) }, nil

	case nodeUnary:
		arg, err := compileNode(n.arg, attrs, expr)
		if err != nil {
			return nil, err
		}
		switch n.op {
		case "!":
			return func(obj Object) float64 { return boolValue(arg(obj) == 0) }, nil
		case "-":
			return func(obj Object) float64 { return -arg(obj) }, nil
		}

	case nodeBinary:
		left, err := compileNode(n.left, attrs, expr)
		if err != nil {
			return nil, err
		}
		right, err := compileNode(n.right, attrs, expr)
		if err != nil {
			return nil, err
		}
		switch n.op {
		case "||":
			return func(obj Object) float64 { return boolValue(left(obj) != 0 || right(obj) != 0) }, nil
		case "&&":
			return func(obj Object) float64 { return boolValue(left(obj) != 0 && right(obj) != 0) }, nil
		case "<":
			return func(obj Object) float64 { return boolValue(left(obj) < right(obj)) }, nil
		case ">":
			return func(obj Object) float64 { return boolValue(left(obj) > right(obj)) }, nil
		case "<=":
			return func(obj Object) float64 { return boolValue(left(obj) <= right(obj)) }, nil
		case ">=":
			return func(obj Object) float64 { return boolValue(left(obj) >= right(obj)) }, nil
		case "==":
			return func(obj Object) float64 { return boolValue(left(obj) == right(obj)) }, nil
		case "!=":
			return func(obj Object) float64 { return boolValue(left(obj) != right(obj)) }, nil
		case "+":
			return func(obj Object) float64 { return left(obj) + right(obj) }, nil
		case "-":
			return func(obj Object) float64 { return left(obj) - right(obj) }, nil
		case "*":
			return func(obj Object) float64 { return left(obj) * right(obj) }, nil
		case "/":
			return func(obj Object) float64 { return left(obj) / right(obj) }, nil
		}
	}
	return nil, exprErrorf("internal: unhandled node in %q", expr)
}
