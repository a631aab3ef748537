// ABOUTME: Parenthesis balance checks for find bar input
// ABOUTME: Every paren must have a partner before the text is matched

package grammar

// Balanced reports whether every parenthesis in text has a matching partner.
// Isolated literals around the parens do not matter.
func Balanced(text string) bool {
	for i := 0; i < len(text); i++ {
		if text[i] == '(' || text[i] == ')' {
			if PairPosition(text, i) == -1 {
				return false
			}
		}
	}
	return true
}

// PairPosition returns the byte offset of the parenthesis pairing with the one
// at pos, scanning forward for '(' and backward for ')' and skipping nested
// pairs of the same type. It returns -1 when there is no partner or when pos
// does not hold a parenthesis.
func PairPosition(text string, pos int) int {
	if pos < 0 || pos >= len(text) {
		return -1
	}

	one := text[pos]
	var two byte
	step := 1
	switch one {
	case '(':
		two = ')'
	case ')':
		two = '('
		step = -1
	default:
		return -1
	}

	sames := 0
	for i := pos + step; i >= 0 && i < len(text); i += step {
		switch text[i] {
		case one:
			sames++
		case two:
			if sames == 0 {
				return i
			}
			sames--
		}
	}
	return -1
}
