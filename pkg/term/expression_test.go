package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// pair builds the tag-or-text group made for one typed literal.
func pair(name string) Term {
	return NewOrTerm(NewLiteral(testTag(name), false), NewTextLiteral(name, false))
}

func TestExpression(t *testing.T) {
	tests := []struct {
		name string
		tree Term
		want string
	}{
		{"nil", nil, ""},
		{"empty", NewAndTerm(), ""},
		{"literal", lit("Paris"), "Paris"},
		{"negated literal", NewLiteral(testTag("Paris"), true), "not Paris"},
		{"pair", pair("Paris"), "Paris"},
		{"negated pair", pair("Paris").Invert(), "not Paris"},
		{"text only", NewOrTerm(NewTextLiteral("beach", false)), "beach"},
		{"root wrapper", NewAndTerm(pair("A")), "A"},
		{"and", NewAndTerm(pair("A"), pair("B")), "A and B"},
		{"or", NewOrTerm(pair("A"), pair("B"), pair("C")), "A or B or C"},
		{"nested", NewAndTerm(NewAndTerm(NewOrTerm(pair("A"), pair("B")), pair("C").Invert())), "(A or B) and not C"},
		{"inverted and", NewAndTerm(pair("A"), pair("B")).Invert(), "not A or not B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Expression(tt.tree))
		})
	}
}

func TestExpressionPrefersTypedText(t *testing.T) {
	tree := NewOrTerm(NewLiteral(testTag("Paris"), false), NewTextLiteral("paris", false))
	assert.Equal(t, "paris", Expression(tree))
}

func TestExpressionMismatchedPair(t *testing.T) {
	tree := NewOrTerm(lit("A"), NewTextLiteral("B", false))
	assert.Equal(t, "A or B", Expression(tree))

	mixed := NewOrTerm(lit("A"), NewTextLiteral("A", true))
	assert.Equal(t, "A or not A", Expression(mixed))
}

func TestFormatSpelling(t *testing.T) {
	sp := Spelling{And: "und", Or: "oder", Not: "nicht"}
	tree := NewAndTerm(NewOrTerm(pair("A"), pair("B")), pair("C").Invert())
	assert.Equal(t, "(A oder B) und nicht C", Format(tree, sp))

	var nilRoot *AndTerm
	assert.Equal(t, "", Format(nilRoot, sp))
}
