// ABOUTME: Photo collection filtered by find bar terms
// ABOUTME: Applies the root term with the implicit hidden-tag exclusion

package catalog

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/nainya/photoquery/pkg/term"
)

// Photo is one item of the collection.
type Photo struct {
	ID          uuid.UUID
	Path        string
	Description string
	Tags        []*Tag
}

// HasTag reports whether the photo carries tag, directly or through a tag
// filed under it.
func (p *Photo) HasTag(tag term.Tag) bool {
	want, ok := tag.(*Tag)
	for _, have := range p.Tags {
		if ok {
			if have == want || have.Within(want) {
				return true
			}
		} else if fold(have.Name()) == fold(tag.Name()) {
			return true
		}
	}
	return false
}

// ContainsText reports whether the path or description contains text,
// ignoring case.
func (p *Photo) ContainsText(text string) bool {
	needle := fold(text)
	return strings.Contains(fold(p.Path), needle) || strings.Contains(fold(p.Description), needle)
}

// Collection is the set of photos a find bar filters. It is safe for
// concurrent use.
type Collection struct {
	mu     sync.RWMutex
	dir    *Directory
	photos []*Photo
	filter *term.AndTerm
}

// NewCollection creates an empty collection tagged from dir.
func NewCollection(dir *Directory) *Collection {
	return &Collection{dir: dir}
}

// Directory returns the tag directory of the collection.
func (c *Collection) Directory() *Directory { return c.dir }

// Add appends p. Every tag of p must come from the collection's directory.
func (c *Collection) Add(p *Photo) error {
	if p.Path == "" {
		return ErrEmptyPath
	}
	for _, t := range p.Tags {
		if known, ok := c.dir.ByID(t.ID()); !ok || known != t {
			return fmt.Errorf("%w: %q", ErrUnknownTag, t.Name())
		}
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	c.mu.Lock()
	c.photos = append(c.photos, p)
	c.mu.Unlock()
	return nil
}

// Len returns the number of photos, hidden ones included.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.photos)
}

// ApplyFilter sets the filter used by Photos. A nil root shows every photo
// that is not hidden.
func (c *Collection) ApplyFilter(root *term.AndTerm) {
	c.mu.Lock()
	c.filter = root
	c.mu.Unlock()
}

// Filter returns the applied filter.
func (c *Collection) Filter() *term.AndTerm {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filter
}

// Photos returns the photos matching the applied filter.
func (c *Collection) Photos() []*Photo {
	return c.Query(c.Filter())
}

// Query returns the photos matching root without changing the applied filter.
func (c *Collection) Query(root *term.AndTerm) []*Photo {
	cond := c.Effective(root)

	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []*Photo
	for _, p := range c.photos {
		if cond == nil || cond.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Effective returns the condition actually evaluated for root: a copy of root
// with "not hidden" conjoined, unless root names the hidden tag. root itself
// is never modified.
func (c *Collection) Effective(root *term.AndTerm) *term.AndTerm {
	hidden := c.dir.Hidden()
	if hidden == nil {
		return root
	}
	if root != nil && mentions(root, hidden) {
		return root
	}
	return term.Conjoin(root, term.NewLiteral(hidden, true))
}

func mentions(root term.Term, tag *Tag) bool {
	found := false
	term.Walk(root, func(t term.Term) bool {
		if lit, ok := t.(*term.Literal); ok && lit.Tag() == term.Tag(tag) {
			found = true
		}
		return !found
	})
	return found
}
