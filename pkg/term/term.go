// ABOUTME: Boolean term tree over a tagged photo collection
// ABOUTME: Literal, TextLiteral, AndTerm and OrTerm nodes with parent links

package term

// Tag is the handle of a resolved tag. Implementations are owned by the tag
// directory; the tree only holds references.
type Tag interface {
	Name() string
}

// Subject is anything a term can be evaluated against, typically a photo.
type Subject interface {
	HasTag(tag Tag) bool
	ContainsText(text string) bool
}

// Term is a node in the boolean expression tree.
//
// Trees are built bottom-up: a node is attached to exactly one parent when
// the parent is constructed, and is never re-attached afterwards. Operations
// that change the shape of a tree (Invert, Dual, Conjoin) return new nodes.
type Term interface {
	// Parent returns the enclosing group, or nil for a root.
	Parent() Term

	// Invert returns the logical complement of the term as a new, detached
	// subtree.
	Invert() Term

	// Match evaluates the term against s.
	Match(s Subject) bool

	// Clone returns a detached deep copy.
	Clone() Term

	String() string

	setParent(p Term)
}

type node struct {
	parent Term
}

func (n *node) Parent() Term { return n.parent }

func (n *node) setParent(p Term) { n.parent = p }

// Literal matches subjects carrying a specific tag.
type Literal struct {
	node
	tag     Tag
	negated bool
}

// NewLiteral returns a literal for tag, negated when negated is set.
func NewLiteral(tag Tag, negated bool) *Literal {
	return &Literal{tag: tag, negated: negated}
}

// Tag returns the tag the literal resolves to.
func (l *Literal) Tag() Tag { return l.tag }

// Negated reports whether the literal matches subjects without the tag.
func (l *Literal) Negated() bool { return l.negated }

func (l *Literal) Invert() Term { return NewLiteral(l.tag, !l.negated) }

func (l *Literal) Match(s Subject) bool { return s.HasTag(l.tag) != l.negated }

func (l *Literal) Clone() Term { return NewLiteral(l.tag, l.negated) }

func (l *Literal) String() string { return Expression(l) }

// TextLiteral matches subjects whose free text contains a substring.
type TextLiteral struct {
	node
	text    string
	negated bool
}

// NewTextLiteral returns a substring literal.
func NewTextLiteral(text string, negated bool) *TextLiteral {
	return &TextLiteral{text: text, negated: negated}
}

// Text returns the substring searched for.
func (t *TextLiteral) Text() string { return t.text }

// Negated reports whether the literal matches subjects lacking the text.
func (t *TextLiteral) Negated() bool { return t.negated }

func (t *TextLiteral) Invert() Term { return NewTextLiteral(t.text, !t.negated) }

func (t *TextLiteral) Match(s Subject) bool { return s.ContainsText(t.text) != t.negated }

func (t *TextLiteral) Clone() Term { return NewTextLiteral(t.text, t.negated) }

func (t *TextLiteral) String() string { return Expression(t) }

type group struct {
	node
	children []Term
}

// Children returns the ordered child terms. The slice must not be modified.
func (g *group) Children() []Term { return g.children }

// Len returns the number of children.
func (g *group) Len() int { return len(g.children) }

func (g *group) attach(self Term, children []Term) {
	g.children = make([]Term, 0, len(children))
	for _, c := range children {
		if c == nil {
			continue
		}
		if c.Parent() != nil {
			c = c.Clone()
		}
		c.setParent(self)
		g.children = append(g.children, c)
	}
}

func (g *group) invertedChildren() []Term {
	out := make([]Term, len(g.children))
	for i, c := range g.children {
		out[i] = c.Invert()
	}
	return out
}

func (g *group) clonedChildren() []Term {
	out := make([]Term, len(g.children))
	for i, c := range g.children {
		out[i] = c.Clone()
	}
	return out
}

// AndTerm is true when all of its children are true.
type AndTerm struct {
	group
}

// NewAndTerm returns a conjunction of children. Nil children are skipped and
// children that already belong to another group are cloned.
func NewAndTerm(children ...Term) *AndTerm {
	t := &AndTerm{}
	t.attach(t, children)
	return t
}

// Invert applies De Morgan's law: the complement of a conjunction of two or
// more terms is the disjunction of their complements.
func (t *AndTerm) Invert() Term {
	if t.Len() < 2 {
		return NewAndTerm(t.invertedChildren()...)
	}
	return NewOrTerm(t.invertedChildren()...)
}

func (t *AndTerm) Match(s Subject) bool {
	for _, c := range t.children {
		if !c.Match(s) {
			return false
		}
	}
	return true
}

func (t *AndTerm) Clone() Term { return NewAndTerm(t.clonedChildren()...) }

func (t *AndTerm) String() string { return Expression(t) }

// OrTerm is true when any of its children is true.
type OrTerm struct {
	group
}

// NewOrTerm returns a disjunction of children with the same attachment rules
// as NewAndTerm.
func NewOrTerm(children ...Term) *OrTerm {
	t := &OrTerm{}
	t.attach(t, children)
	return t
}

func (t *OrTerm) Invert() Term {
	if t.Len() < 2 {
		return NewOrTerm(t.invertedChildren()...)
	}
	return NewAndTerm(t.invertedChildren()...)
}

func (t *OrTerm) Match(s Subject) bool {
	for _, c := range t.children {
		if c.Match(s) {
			return true
		}
	}
	return false
}

func (t *OrTerm) Clone() Term { return NewOrTerm(t.clonedChildren()...) }

func (t *OrTerm) String() string { return Expression(t) }
