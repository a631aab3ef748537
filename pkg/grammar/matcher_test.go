// ABOUTME: Tests for the structural query matcher
// ABOUTME: Verifies term roles, operator capture and rejection of malformed text

package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wantTerm struct {
	role  Role
	text  string
	group bool
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		terms []wantTerm
		ops   []OpKind
	}{
		{
			name:  "single literal",
			text:  "Paris",
			terms: []wantTerm{{RoleTerm, "Paris", false}},
		},
		{
			name:  "literal with spaces",
			text:  "New York  ",
			terms: []wantTerm{{RoleTerm, "New York", false}},
		},
		{
			name:  "and",
			text:  "Paris and London",
			terms: []wantTerm{{RoleTerm, "Paris", false}, {RoleTerm, "London", false}},
			ops:   []OpKind{OpAnd},
		},
		{
			name:  "or is case insensitive",
			text:  "Paris OR London",
			terms: []wantTerm{{RoleTerm, "Paris", false}, {RoleTerm, "London", false}},
			ops:   []OpKind{OpOr},
		},
		{
			name:  "separator",
			text:  "Paris, London,Rome",
			terms: []wantTerm{{RoleTerm, "Paris", false}, {RoleTerm, "London", false}, {RoleTerm, "Rome", false}},
			ops:   []OpKind{OpOr, OpOr},
		},
		{
			name:  "negated literal",
			text:  "not Paris",
			terms: []wantTerm{{RoleNotTag, "Paris", false}},
		},
		{
			name:  "negated group",
			text:  "not (A or B)",
			terms: []wantTerm{{RoleNotTerm, "(A or B)", true}},
		},
		{
			name:  "double negation",
			text:  "not not A",
			terms: []wantTerm{{RoleNotTerm, "not A", false}},
		},
		{
			name:  "group",
			text:  "(A or B) and C",
			terms: []wantTerm{{RoleTerm, "(A or B)", true}, {RoleTerm, "C", false}},
			ops:   []OpKind{OpAnd},
		},
		{
			name:  "operator words inside literals",
			text:  "Sandy Shore and notebook",
			terms: []wantTerm{{RoleTerm, "Sandy Shore", false}, {RoleTerm, "notebook", false}},
			ops:   []OpKind{OpAnd},
		},
		{
			name:  "operator after group without space",
			text:  "(A)and(B)",
			terms: []wantTerm{{RoleTerm, "(A)", true}, {RoleTerm, "(B)", true}},
			ops:   []OpKind{OpAnd},
		},
		{
			name:  "mixed operators are still matched",
			text:  "A and B or C",
			terms: []wantTerm{{RoleTerm, "A", false}, {RoleTerm, "B", false}, {RoleTerm, "C", false}},
			ops:   []OpKind{OpAnd, OpOr},
		},
	}

	m := NewMatcher(DefaultOperators())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.Match(tt.text)
			require.True(t, ok)
			require.Len(t, got.Terms, len(tt.terms))
			for i, want := range tt.terms {
				c := got.Terms[i]
				assert.Equal(t, want.role, c.Role, "term %d", i)
				assert.Equal(t, want.text, c.Text, "term %d", i)
				assert.Equal(t, want.group, c.Group, "term %d", i)
			}

			var kinds []OpKind
			for _, op := range got.Ops {
				kinds = append(kinds, op.Kind)
			}
			assert.Equal(t, tt.ops, kinds)
		})
	}
}

func TestMatchRejects(t *testing.T) {
	m := NewMatcher(DefaultOperators())
	for _, text := range []string{
		"",
		"not",
		"A and",
		"A or ",
		"A,",
		"not not",
		"(A) B",
		")",
	} {
		t.Run(text, func(t *testing.T) {
			_, ok := m.Match(text)
			assert.False(t, ok)
		})
	}
}

func TestMatchOffsets(t *testing.T) {
	m := NewMatcher(DefaultOperators())
	got, ok := m.Match("A and not B")
	require.True(t, ok)
	require.Len(t, got.Terms, 2)

	assert.Equal(t, 0, got.Terms[0].Start)
	assert.Equal(t, 1, got.Terms[0].End)
	assert.Equal(t, 6, got.Terms[1].Start)
	assert.Equal(t, 11, got.Terms[1].End)

	require.Len(t, got.Ops, 1)
	assert.Equal(t, 2, got.Ops[0].Pos)
	assert.Equal(t, "and", got.Ops[0].Spelling)
}

func TestMatchPlainAndNegations(t *testing.T) {
	m := NewMatcher(DefaultOperators())
	got, ok := m.Match("A and not B and C and not (D or E)")
	require.True(t, ok)

	assert.Len(t, got.Plain(), 2)
	neg := got.Negations()
	require.Len(t, neg, 2)
	assert.Equal(t, "B", neg[0].Text)
	assert.Equal(t, "(D or E)", neg[1].Text)
}

func TestMatchCustomOperators(t *testing.T) {
	ops := Operators{And: "und", Or: "oder", Separator: ";", Not: "nicht"}
	require.NoError(t, ops.Validate())

	m := NewMatcher(ops)
	got, ok := m.Match("Berlin und nicht Hamburg; Bremen")
	require.True(t, ok)
	require.Len(t, got.Terms, 3)
	assert.Equal(t, RoleNotTag, got.Terms[1].Role)
	assert.Equal(t, "Hamburg", got.Terms[1].Text)
	assert.Equal(t, OpAnd, got.Ops[0].Kind)
	assert.Equal(t, OpOr, got.Ops[1].Kind)

	// English words are plain text here.
	got, ok = m.Match("salt and pepper")
	require.True(t, ok)
	require.Len(t, got.Terms, 1)
}

func TestOperatorsValidate(t *testing.T) {
	assert.NoError(t, DefaultOperators().Validate())

	bad := []Operators{
		{And: "", Or: "or", Separator: ",", Not: "not"},
		{And: "and also", Or: "or", Separator: ",", Not: "not"},
		{And: "and", Or: "AND", Separator: ",", Not: "not"},
		{And: "and", Or: "or", Separator: "", Not: "not"},
		{And: "and", Or: "or", Separator: "(", Not: "not"},
	}
	for _, ops := range bad {
		assert.Error(t, ops.Validate(), "%+v", ops)
	}
}
