// Package expr implements string expressions: ordered sequences of literal
// fragments and references to named snippets, resolved against a snippet table.
package expr

import (
	"fmt"
	"strconv"
	"strings"
)

// ElemKind distinguishes literal fragments from snippet references.
type ElemKind int

const (
	Literal ElemKind = iota
	Ref
)

// Elem is a single expression element. For a Literal, Value is the text;
// for a Ref, Value is the snippet name.
type Elem struct {
	Kind  ElemKind
	Value string
}

// Expression is an ordered list of elements that resolves to a single string.
type Expression []Elem

// Table maps snippet names to their expressions.
type Table map[string]Expression

// Lit builds a literal element.
func Lit(s string) Elem { return Elem{Kind: Literal, Value: s} }

// Sym builds a snippet reference element.
func Sym(name string) Elem { return Elem{Kind: Ref, Value: name} }

// Of builds an expression from elements.
func Of(elems ...Elem) Expression { return Expression(elems) }

// Text is shorthand for an expression made of one literal.
func Text(s string) Expression { return Expression{Lit(s)} }

// String renders the expression in its source form, e.g. `"git " + $opts`.
func (e Expression) String() string {
	parts := make([]string, 0, len(e))
	for _, el := range e {
		switch el.Kind {
		case Ref:
			parts = append(parts, "$"+el.Value)
		default:
			parts = append(parts, strconv.Quote(el.Value))
		}
	}
	return strings.Join(parts, " + ")
}

// Refs returns the snippet names referenced directly by the expression.
func (e Expression) Refs() []string {
	var out []string
	for _, el := range e {
		if el.Kind == Ref {
			out = append(out, el.Value)
		}
	}
	return out
}

// UndefinedSnippetError is returned when an expression references a snippet
// that is not present in the table.
type UndefinedSnippetError struct {
	Name  string
	Chain []string
}

func (e *UndefinedSnippetError) Error() string {
	if len(e.Chain) == 0 {
		return fmt.Sprintf("undefined snippet: %s", e.Name)
	}
	return fmt.Sprintf("undefined snippet: %s (via %s)", e.Name, strings.Join(e.Chain, " -> "))
}

// CycleError is returned when snippet resolution re-enters a snippet that is
// already being resolved. Chain ends with the repeated name.
type CycleError struct {
	Chain []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("snippet cycle detected: %s", strings.Join(e.Chain, " -> "))
}

// Resolve concatenates the resolved value of each element of e.
func Resolve(e Expression, table Table) (string, error) {
	var b strings.Builder
	if err := resolveInto(&b, e, table, nil); err != nil {
		return "", err
	}
	return b.String(), nil
}

func resolveInto(b *strings.Builder, e Expression, table Table, chain []string) error {
	for _, el := range e {
		if el.Kind != Ref {
			b.WriteString(el.Value)
			continue
		}
		for _, seen := range chain {
			if seen == el.Value {
				cycle := append(append([]string(nil), chain...), el.Value)
				return &CycleError{Chain: cycle}
			}
		}
		snip, ok := table[el.Value]
		if !ok {
			return &UndefinedSnippetError{Name: el.Value, Chain: append([]string(nil), chain...)}
		}
		// Full slice expression so sibling references never share a backing array.
		next := append(chain[:len(chain):len(chain)], el.Value)
		if err := resolveInto(b, snip, table, next); err != nil {
			return err
		}
	}
	return nil
}
