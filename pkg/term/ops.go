package term

// Dual returns the group of the opposite kind holding the same children:
// AND becomes OR and OR becomes AND. Groups with fewer than two children and
// leaves are returned unchanged.
//
// Dual is the kind swap half of De Morgan's law. It is used when the children
// of a group have already been complemented individually. The returned node
// takes over the children of t, so t must not be used afterwards.
func Dual(t Term) Term {
	switch g := t.(type) {
	case *AndTerm:
		if g.Len() < 2 {
			return g
		}
		return NewOrTerm(detach(&g.group)...)
	case *OrTerm:
		if g.Len() < 2 {
			return g
		}
		return NewAndTerm(detach(&g.group)...)
	}
	return t
}

func detach(g *group) []Term {
	children := g.children
	g.children = nil
	for _, c := range children {
		c.setParent(nil)
	}
	return children
}

// Conjoin returns a new root holding copies of root's children followed by
// extra. A nil root yields a conjunction of extra alone.
func Conjoin(root *AndTerm, extra ...Term) *AndTerm {
	var children []Term
	if root != nil {
		children = root.clonedChildren()
	}
	return NewAndTerm(append(children, extra...)...)
}

// Prune drops AND/OR groups without children, bottom-up. It returns nil when
// nothing is left.
func Prune(t Term) Term {
	switch g := t.(type) {
	case *AndTerm:
		kept := pruneChildren(&g.group)
		if len(kept) == 0 {
			return nil
		}
		return NewAndTerm(kept...)
	case *OrTerm:
		kept := pruneChildren(&g.group)
		if len(kept) == 0 {
			return nil
		}
		return NewOrTerm(kept...)
	}
	return t
}

func pruneChildren(g *group) []Term {
	var kept []Term
	for _, c := range detach(g) {
		if p := Prune(c); p != nil {
			kept = append(kept, p)
		}
	}
	return kept
}

// Walk visits t and its descendants depth-first, parents before children.
// Returning false from fn skips the children of that node.
func Walk(t Term, fn func(Term) bool) {
	if isNil(t) || !fn(t) {
		return
	}
	for _, c := range Children(t) {
		Walk(c, fn)
	}
}

// Children returns the children of an AND/OR group, or nil for a leaf.
func Children(t Term) []Term {
	switch g := t.(type) {
	case *AndTerm:
		return g.children
	case *OrTerm:
		return g.children
	}
	return nil
}

// Depth returns the number of ancestors of t.
func Depth(t Term) int {
	d := 0
	for p := t.Parent(); p != nil; p = p.Parent() {
		d++
	}
	return d
}

// Root returns the topmost ancestor of t.
func Root(t Term) Term {
	for t.Parent() != nil {
		t = t.Parent()
	}
	return t
}
