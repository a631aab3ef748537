// ABOUTME: In-memory tag directory for the photo catalog
// ABOUTME: Case-insensitive name lookup, categories and the hidden tag

package catalog

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/nainya/photoquery/pkg/term"
)

// Tag is a named label on photos. A tag may belong to a category, which is
// itself a tag; a photo tagged with a tag also matches its categories.
type Tag struct {
	id       uuid.UUID
	name     string
	category *Tag
}

// ID returns the stable identifier of the tag.
func (t *Tag) ID() uuid.UUID { return t.id }

// Name returns the display name.
func (t *Tag) Name() string { return t.name }

// Category returns the parent tag, or nil.
func (t *Tag) Category() *Tag { return t.category }

// Within reports whether t is filed under ancestor, at any depth.
func (t *Tag) Within(ancestor *Tag) bool {
	for c := t.category; c != nil; c = c.category {
		if c == ancestor {
			return true
		}
	}
	return false
}

func (t *Tag) String() string { return t.name }

// Directory holds every tag of the catalog. It is safe for concurrent use.
type Directory struct {
	mu     sync.RWMutex
	byName map[string]*Tag
	byID   map[uuid.UUID]*Tag
	hidden *Tag
}

// NewDirectory creates an empty directory.
func NewDirectory() *Directory {
	return &Directory{
		byName: make(map[string]*Tag),
		byID:   make(map[uuid.UUID]*Tag),
	}
}

// Add creates a tag with a fresh ID.
func (d *Directory) Add(name string, category *Tag) (*Tag, error) {
	return d.AddWithID(uuid.New(), name, category)
}

// AddWithID creates a tag with the given ID. Names are unique ignoring case.
func (d *Directory) AddWithID(id uuid.UUID, name string, category *Tag) (*Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyTagName
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	key := fold(name)
	if _, exists := d.byName[key]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateTag, name)
	}
	if _, exists := d.byID[id]; exists {
		return nil, fmt.Errorf("%w: id %s", ErrDuplicateTag, id)
	}

	t := &Tag{id: id, name: name, category: category}
	d.byName[key] = t
	d.byID[id] = t
	return t, nil
}

// SetCategory moves t under category. A nil category makes t top level.
func (d *Directory) SetCategory(t, category *Tag) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if category == t || (category != nil && category.Within(t)) {
		return fmt.Errorf("%w: %q under %q", ErrCategoryCycle, t.name, category.name)
	}
	t.category = category
	return nil
}

// Tag returns the tag named name, ignoring case.
func (d *Directory) Tag(name string) (*Tag, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	t, ok := d.byName[fold(name)]
	return t, ok
}

// LookupTagByName resolves literal query text to a tag.
func (d *Directory) LookupTagByName(name string) (term.Tag, bool) {
	t, ok := d.Tag(name)
	if !ok {
		return nil, false
	}
	return t, true
}

// ByID returns the tag with the given ID.
func (d *Directory) ByID(id uuid.UUID) (*Tag, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	t, ok := d.byID[id]
	return t, ok
}

// Tags returns every tag sorted by name.
func (d *Directory) Tags() []*Tag {
	d.mu.RLock()
	tags := make([]*Tag, 0, len(d.byName))
	for _, t := range d.byName {
		tags = append(tags, t)
	}
	d.mu.RUnlock()

	sort.Slice(tags, func(i, j int) bool { return fold(tags[i].name) < fold(tags[j].name) })
	return tags
}

// Len returns the number of tags.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.byName)
}

// SetHidden marks t as the hidden tag. Photos carrying it are excluded from
// results unless a query names the tag itself.
func (d *Directory) SetHidden(t *Tag) {
	d.mu.Lock()
	d.hidden = t
	d.mu.Unlock()
}

// Hidden returns the hidden tag, or nil.
func (d *Directory) Hidden() *Tag {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.hidden
}

func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
