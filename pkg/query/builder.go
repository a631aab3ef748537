// ABOUTME: Recursive term builder for find bar queries
// ABOUTME: Turns matched text into a negation-resolved term tree

package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/nainya/photoquery/pkg/grammar"
	"github.com/nainya/photoquery/pkg/term"
)

// TagDirectory resolves literal text to an existing tag. Lookups are exact
// and case-insensitive, and must complete before they return.
type TagDirectory interface {
	LookupTagByName(name string) (term.Tag, bool)
}

// Result is the outcome of one build.
//
// A nil Root with a nil Err means the input was empty and the filter should be
// cleared. A non-nil Err means the build was rejected and the previous filter
// should be kept.
type Result struct {
	Root       *term.AndTerm
	Err        error
	Diagnostic string
}

// Rejected reports whether the build failed validation.
func (r Result) Rejected() bool {
	return r.Err != nil
}

// Builder builds term trees from query text.
type Builder struct {
	matcher *grammar.Matcher
	tags    TagDirectory
	log     zerolog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithOperators sets the operator vocabulary.
func WithOperators(ops grammar.Operators) Option {
	return func(b *Builder) {
		b.matcher = grammar.NewMatcher(ops)
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(log zerolog.Logger) Option {
	return func(b *Builder) {
		b.log = log
	}
}

// NewBuilder creates a builder resolving literals against tags, which may be
// nil when no tag directory is available.
func NewBuilder(tags TagDirectory, opts ...Option) *Builder {
	b := &Builder{
		matcher: grammar.NewMatcher(grammar.DefaultOperators()),
		tags:    tags,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Operators returns the vocabulary the builder matches.
func (b *Builder) Operators() grammar.Operators {
	return b.matcher.Operators()
}

// Build parses text into a new tree. The root of a successful build is always
// an AndTerm holding the parsed expression, so callers can conjoin further
// filters to it.
func (b *Builder) Build(text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{}
	}
	if !grammar.Balanced(text) {
		return Result{Err: ErrUnbalancedParens}
	}

	t, err := b.construct(0, text, false)
	if err != nil {
		r := Result{Err: err}
		if errors.Is(err, ErrAmbiguousOperator) {
			r.Diagnostic = AmbiguousDiagnostic
		}
		return r
	}

	t = term.Prune(t)
	if t == nil {
		return Result{Err: ErrEmptyTerm}
	}
	return Result{Root: term.NewAndTerm(t)}
}

// construct builds the subtree for one nesting level. negated is the
// negation inherited from enclosing not keywords.
func (b *Builder) construct(depth int, text string, negated bool) (term.Term, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyTerm
	}

	log := b.log.With().Int("depth", depth).Logger()

	match, ok := b.matcher.Match(text)
	if !ok {
		log.Debug().Str("text", text).Msg("Failed to match")
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, text)
	}

	op, err := consistentOperator(match.Ops)
	if err != nil {
		log.Info().Str("text", text).Err(err).Msg(AmbiguousDiagnostic)
		return nil, err
	}

	if len(match.Terms) == 1 {
		c := match.Terms[0]
		neg := negated != c.Negated()
		if c.Group || c.Role == grammar.RoleNotTerm {
			return b.construct(depth+1, stripParens(c), neg)
		}
		log.Debug().Str("literal", c.Text).Bool("negated", neg).Msg("Unbreakable term")
		return b.literal(c.Text, neg), nil
	}

	children := make([]term.Term, 0, len(match.Terms))
	for _, c := range match.Terms {
		child, err := b.construct(depth+1, stripParens(c), negated != c.Negated())
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	var node term.Term
	if op.Kind == grammar.OpAnd {
		node = term.NewAndTerm(children...)
	} else {
		node = term.NewOrTerm(children...)
	}

	// The children already carry the negation, so only the kind flips.
	if negated {
		node = term.Dual(node)
	}
	return node, nil
}

// literal builds the tag-or-text pair for one literal.
func (b *Builder) literal(text string, negated bool) term.Term {
	children := make([]term.Term, 0, 2)
	if b.tags != nil {
		if tag, ok := b.tags.LookupTagByName(text); ok {
			children = append(children, term.NewLiteral(tag, false))
		}
	}
	children = append(children, term.NewTextLiteral(text, false))

	var t term.Term = term.NewOrTerm(children...)
	if negated {
		t = t.Invert()
	}
	return t
}

// consistentOperator returns the single operator used at one level. Mixing
// spellings is rejected rather than resolved by precedence.
func consistentOperator(ops []grammar.Op) (grammar.Op, error) {
	if len(ops) == 0 {
		return grammar.Op{}, nil
	}
	first := ops[0]
	for _, op := range ops[1:] {
		if op.Spelling != first.Spelling {
			return grammar.Op{}, fmt.Errorf("%w: %q then %q", ErrAmbiguousOperator, first.Text, op.Text)
		}
	}
	return first, nil
}

func stripParens(c grammar.Capture) string {
	s := strings.TrimSpace(c.Text)
	if c.Group && len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')' {
		return s[1 : len(s)-1]
	}
	return s
}
