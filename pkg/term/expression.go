package term

import "strings"

// Spelling holds the words used when a tree is written back as query text.
type Spelling struct {
	And string
	Or  string
	Not string
}

// DefaultSpelling is the English query vocabulary.
var DefaultSpelling = Spelling{And: "and", Or: "or", Not: "not"}

// Expression writes t in the query language using DefaultSpelling.
func Expression(t Term) string {
	return Format(t, DefaultSpelling)
}

// Format writes t as query text that parses back into an equivalent tree.
// The tag-or-text pair built for a single literal is written as that literal
// and a complemented pair as "not literal"; groups of two or more children are
// parenthesised when nested.
func Format(t Term, sp Spelling) string {
	if isNil(t) {
		return ""
	}
	var b strings.Builder
	format(&b, t, sp, false)
	return b.String()
}

func format(b *strings.Builder, t Term, sp Spelling, nested bool) {
	switch v := t.(type) {
	case *Literal:
		name := ""
		if v.tag != nil {
			name = v.tag.Name()
		}
		writeLeaf(b, name, v.negated, sp)
		return
	case *TextLiteral:
		writeLeaf(b, v.text, v.negated, sp)
		return
	}

	if text, negated, ok := literalPair(t); ok {
		writeLeaf(b, text, negated, sp)
		return
	}

	children := Children(t)
	switch len(children) {
	case 0:
		return
	case 1:
		format(b, children[0], sp, nested)
		return
	}

	op := sp.And
	if _, ok := t.(*OrTerm); ok {
		op = sp.Or
	}
	if nested {
		b.WriteByte('(')
	}
	for i, c := range children {
		if i > 0 {
			b.WriteByte(' ')
			b.WriteString(op)
			b.WriteByte(' ')
		}
		format(b, c, sp, true)
	}
	if nested {
		b.WriteByte(')')
	}
}

func writeLeaf(b *strings.Builder, text string, negated bool, sp Spelling) {
	if negated {
		b.WriteString(sp.Not)
		b.WriteByte(' ')
	}
	b.WriteString(text)
}

// literalPair recognises the group built for one typed literal: an OR of a
// tag literal and a text literal of the same name, or the AND of their
// complements.
func literalPair(t Term) (text string, negated bool, ok bool) {
	_, isOr := t.(*OrTerm)
	children := Children(t)
	if len(children) == 0 {
		return "", false, false
	}

	var ref string
	for i, c := range children {
		var name string
		var neg, isText bool
		switch leaf := c.(type) {
		case *Literal:
			if leaf.tag == nil {
				return "", false, false
			}
			name, neg = leaf.tag.Name(), leaf.negated
		case *TextLiteral:
			name, neg, isText = leaf.text, leaf.negated, true
		default:
			return "", false, false
		}
		if i == 0 {
			ref, negated = name, neg
		} else if neg != negated || !strings.EqualFold(name, ref) {
			return "", false, false
		}
		// Prefer the typed text over the directory spelling of the tag.
		if isText || text == "" {
			text = name
		}
	}

	if len(children) > 1 && isOr == negated {
		return "", false, false
	}
	return text, negated, true
}

func isNil(t Term) bool {
	switch v := t.(type) {
	case nil:
		return true
	case *AndTerm:
		return v == nil
	case *OrTerm:
		return v == nil
	case *Literal:
		return v == nil
	case *TextLiteral:
		return v == nil
	}
	return false
}
