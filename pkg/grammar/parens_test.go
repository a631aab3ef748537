package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBalanced(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"", true},
		{"A and B", true},
		{"(A)", true},
		{"(A or (B and C)) and D", true},
		{"()", true},
		{"(A", false},
		{"A)", false},
		{")(", false},
		{"((A)", false},
		{"(A))", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, Balanced(tt.text))
		})
	}
}

func TestPairPosition(t *testing.T) {
	text := "(A or (B and C)) and D"

	assert.Equal(t, 15, PairPosition(text, 0))
	assert.Equal(t, 0, PairPosition(text, 15))
	assert.Equal(t, 14, PairPosition(text, 6))
	assert.Equal(t, 6, PairPosition(text, 14))

	assert.Equal(t, -1, PairPosition(text, 1), "not a paren")
	assert.Equal(t, -1, PairPosition(text, -1))
	assert.Equal(t, -1, PairPosition(text, len(text)))
	assert.Equal(t, -1, PairPosition("(A", 0))
	assert.Equal(t, -1, PairPosition("A)", 1))
}
