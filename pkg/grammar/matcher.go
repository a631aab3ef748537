// ABOUTME: Structural matcher for find bar query text
// ABOUTME: Splits one nesting level into terms, negations and operators

package grammar

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Role tells what kind of term a capture is.
type Role int

const (
	// RoleTerm is a plain literal or a parenthesised group.
	RoleTerm Role = iota
	// RoleNotTerm is a negated group, or a negation of another negation.
	RoleNotTerm
	// RoleNotTag is a negated literal.
	RoleNotTag
)

func (r Role) String() string {
	switch r {
	case RoleTerm:
		return "Term"
	case RoleNotTerm:
		return "NotTerm"
	case RoleNotTag:
		return "NotTag"
	default:
		return "Role(?)"
	}
}

// Capture is one top-level term of the matched text.
type Capture struct {
	Role Role
	// Text is the literal, or the group including its parentheses. For
	// negations it is the operand with the keyword removed.
	Text string
	// Group is set when Text is a parenthesised group.
	Group bool
	// Start and End are the byte offsets of the whole term, keyword included.
	Start, End int
}

// Negated reports whether the capture was preceded by the not keyword.
func (c Capture) Negated() bool {
	return c.Role != RoleTerm
}

// Op is an operator found between two top-level terms.
type Op struct {
	Kind OpKind
	// Spelling is the configured word that matched, Text what was typed.
	Spelling string
	Text     string
	Pos      int
}

// Match is the decomposition of one nesting level. It only lives for a
// single parse pass.
type Match struct {
	Terms []Capture
	Ops   []Op
}

// Plain returns the captures that are not negated.
func (m *Match) Plain() []Capture {
	return m.filter(func(c Capture) bool { return !c.Negated() })
}

// Negations returns the negated captures.
func (m *Match) Negations() []Capture {
	return m.filter(Capture.Negated)
}

func (m *Match) filter(keep func(Capture) bool) []Capture {
	var out []Capture
	for _, c := range m.Terms {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// Matcher decomposes query text one nesting level at a time. It scans the
// text once, left to right, and never backtracks.
//
// The grammar at one level is
//
//	level   = term { op term }
//	term    = not term | group | literal
//	group   = "(" ... ")"
//	literal = maximal run without parens, operators or a leading not
//
// Groups are captured whole; callers strip the parentheses and match the
// inside again.
type Matcher struct {
	ops Operators
}

// NewMatcher returns a matcher for the given vocabulary.
func NewMatcher(ops Operators) *Matcher {
	return &Matcher{ops: ops}
}

// Operators returns the vocabulary of the matcher.
func (m *Matcher) Operators() Operators {
	return m.ops
}

// Match decomposes text. It reports false when the text does not conform to
// the grammar at all; text is expected to have balanced parentheses.
func (m *Matcher) Match(text string) (*Match, bool) {
	s := &scanner{src: text, ops: m.ops}
	match := &Match{}
	for {
		s.skipSpace()
		c, ok := s.term()
		if !ok {
			return nil, false
		}
		match.Terms = append(match.Terms, c)

		s.skipSpace()
		if s.done() {
			return match, true
		}
		op, ok := s.operator()
		if !ok {
			return nil, false
		}
		match.Ops = append(match.Ops, op)
	}
}

type scanner struct {
	src string
	pos int
	ops Operators
}

func (s *scanner) done() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) skipSpace() {
	for !s.done() {
		r, size := utf8.DecodeRuneInString(s.src[s.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		s.pos += size
	}
}

func (s *scanner) term() (Capture, bool) {
	start := s.pos
	if !s.wordAt(s.pos, s.ops.Not) {
		return s.operand()
	}

	s.pos += len(s.ops.Not)
	s.skipSpace()
	operandStart := s.pos
	inner, ok := s.term()
	if !ok {
		return Capture{}, false
	}

	c := Capture{
		Role:  RoleNotTag,
		Text:  inner.Text,
		Group: inner.Group,
		Start: start,
		End:   inner.End,
	}
	switch {
	case inner.Negated():
		c.Role = RoleNotTerm
		c.Text = s.src[operandStart:inner.End]
		c.Group = false
	case inner.Group:
		c.Role = RoleNotTerm
	}
	return c, true
}

func (s *scanner) operand() (Capture, bool) {
	if s.done() {
		return Capture{}, false
	}

	start := s.pos
	switch s.src[s.pos] {
	case ')':
		return Capture{}, false
	case '(':
		end := PairPosition(s.src, s.pos)
		if end == -1 {
			return Capture{}, false
		}
		s.pos = end + 1
		return Capture{Role: RoleTerm, Text: s.src[start:s.pos], Group: true, Start: start, End: s.pos}, true
	}

	for !s.done() {
		if ch := s.src[s.pos]; ch == '(' || ch == ')' || s.operatorAt(s.pos) {
			break
		}
		s.pos++
	}
	raw := strings.TrimRightFunc(s.src[start:s.pos], unicode.IsSpace)
	if raw == "" {
		return Capture{}, false
	}
	return Capture{Role: RoleTerm, Text: raw, Start: start, End: start + len(raw)}, true
}

func (s *scanner) operator() (Op, bool) {
	if s.separatorAt(s.pos) {
		op := Op{Kind: OpOr, Spelling: s.ops.Separator, Text: s.src[s.pos : s.pos+len(s.ops.Separator)], Pos: s.pos}
		s.pos += len(s.ops.Separator)
		return op, true
	}
	if !s.boundaryBefore(s.pos) {
		return Op{}, false
	}
	for _, w := range []struct {
		word string
		kind OpKind
	}{{s.ops.And, OpAnd}, {s.ops.Or, OpOr}} {
		if s.wordAt(s.pos, w.word) {
			op := Op{Kind: w.kind, Spelling: w.word, Text: s.src[s.pos : s.pos+len(w.word)], Pos: s.pos}
			s.pos += len(w.word)
			return op, true
		}
	}
	return Op{}, false
}

// operatorAt reports whether an operator starts at i inside a literal.
func (s *scanner) operatorAt(i int) bool {
	if s.separatorAt(i) {
		return true
	}
	if !s.boundaryBefore(i) {
		return false
	}
	return s.wordAt(i, s.ops.And) || s.wordAt(i, s.ops.Or)
}

func (s *scanner) separatorAt(i int) bool {
	n := len(s.ops.Separator)
	return n > 0 && i+n <= len(s.src) && strings.EqualFold(s.src[i:i+n], s.ops.Separator)
}

// wordAt reports whether word starts at i, ignoring case, and is followed by
// whitespace, an opening paren or the end of the text.
func (s *scanner) wordAt(i int, word string) bool {
	n := len(word)
	if n == 0 || i+n > len(s.src) || !strings.EqualFold(s.src[i:i+n], word) {
		return false
	}
	if i+n == len(s.src) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s.src[i+n:])
	return unicode.IsSpace(r) || r == '('
}

func (s *scanner) boundaryBefore(i int) bool {
	if i == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s.src[:i])
	return unicode.IsSpace(r) || r == ')'
}
