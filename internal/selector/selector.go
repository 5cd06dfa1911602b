// Package selector compiles user-configured selection expressions into
// predicates over named object attributes.
//
// The grammar is deliberately small: numeric literals, attribute names,
// abs(...), the usual arithmetic and comparison operators, and boolean
// connectives (both the single-character & | forms and && ||). It is not a
// scripting language. Expressions are compiled once, at configuration time,
// against the attribute set of one object type; unknown attributes and
// malformed syntax are compile-time errors. Evaluation is pure and keeps the
// configured ordering, so callers can map result index to meaning by
// position.
package selector

import (
	"errors"
	"fmt"
)

// Object exposes the named numeric attributes of one physics-object variant.
// Boolean attributes are exposed as 0 or 1. Attr reports false for a name the
// variant does not define.
type Object interface {
	Attr(name string) (float64, bool)
}

// Predicate is one compiled selection expression.
type Predicate func(Object) bool

// ErrInvalidExpression reports that a selection string does not conform to
// the expression grammar or references an unknown attribute.
var ErrInvalidExpression = errors.New("invalid selection expression")

func exprErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidExpression}, args...)...)
}

// Attributes is the set of attribute names an object type defines, used to
// reject unknown names at compile time.
type Attributes map[string]struct{}

// NewAttributes builds an attribute set from a list of names.
func NewAttributes(names ...string) Attributes {
	a := make(Attributes, len(names))
	for _, n := range names {
		a[n] = struct{}{}
	}
	return a
}

// Compile compiles one selection expression against the given attribute set.
func Compile(expr string, attrs Attributes) (Predicate, error) {
	node, err := parse(expr)
	if err != nil {
		return nil, err
	}
	eval, err := compileNode(node, attrs, expr)
	if err != nil {
		return nil, err
	}
	return func(obj Object) bool { return eval(obj) != 0 }, nil
}

// CompileList compiles an ordered list of selection expressions. The returned
// predicates keep the input ordering. Any failure aborts the whole list: a
// malformed configured selection is a configuration error, not something to
// skip.
func CompileList(exprs []string, attrs Attributes) ([]Predicate, error) {
	preds := make([]Predicate, 0, len(exprs))
	for i, expr := range exprs {
		p, err := Compile(expr, attrs)
		if err != nil {
			return nil, fmt.Errorf("selection %d: %w", i, err)
		}
		preds = append(preds, p)
	}
	return preds, nil
}
