// ABOUTME: Operator vocabulary of the find bar query language
// ABOUTME: Spellings are configurable so the words can be localised

package grammar

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/nainya/photoquery/pkg/term"
)

// OpKind is the logical meaning of an operator.
type OpKind int

const (
	OpAnd OpKind = iota + 1
	OpOr
)

func (k OpKind) String() string {
	switch k {
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	default:
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
}

// Operators holds the spellings recognised by the matcher. And, Or and Not
// are whole words matched case-insensitively; Separator is punctuation that
// means OR (a list of alternatives).
type Operators struct {
	And       string `yaml:"and"`
	Or        string `yaml:"or"`
	Separator string `yaml:"separator"`
	Not       string `yaml:"not"`
}

// DefaultOperators returns the English vocabulary.
func DefaultOperators() Operators {
	return Operators{
		And:       "and",
		Or:        "or",
		Separator: ",",
		Not:       "not",
	}
}

// Validate checks that every spelling is usable by the matcher.
func (o Operators) Validate() error {
	words := map[string]string{"and": o.And, "or": o.Or, "not": o.Not}
	for name, w := range words {
		if w == "" {
			return fmt.Errorf("grammar: %s operator is empty", name)
		}
		if strings.IndexFunc(w, func(r rune) bool { return unicode.IsSpace(r) || r == '(' || r == ')' }) >= 0 {
			return fmt.Errorf("grammar: %s operator %q must be a single word", name, w)
		}
	}
	if strings.EqualFold(o.And, o.Or) || strings.EqualFold(o.And, o.Not) || strings.EqualFold(o.Or, o.Not) {
		return fmt.Errorf("grammar: operator words must be distinct")
	}
	if o.Separator == "" || strings.ContainsAny(o.Separator, "()") || strings.TrimSpace(o.Separator) != o.Separator {
		return fmt.Errorf("grammar: invalid separator %q", o.Separator)
	}
	return nil
}

// Spelling returns the words used to write trees back as text.
func (o Operators) Spelling() term.Spelling {
	return term.Spelling{And: o.And, Or: o.Or, Not: o.Not}
}
