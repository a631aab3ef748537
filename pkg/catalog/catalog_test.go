// ABOUTME: Tests for the tag directory and photo collection
// ABOUTME: Verifies case-folded lookup, categories and the hidden tag filter

package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nainya/photoquery/pkg/query"
	"github.com/nainya/photoquery/pkg/term"
)

func TestDirectoryLookup(t *testing.T) {
	dir := NewDirectory()
	paris, err := dir.Add("Paris", nil)
	require.NoError(t, err)

	got, ok := dir.LookupTagByName("PARIS")
	require.True(t, ok)
	assert.Equal(t, term.Tag(paris), got)

	_, ok = dir.LookupTagByName("Par")
	assert.False(t, ok, "lookups are exact")

	_, err = dir.Add(" paris ", nil)
	assert.ErrorIs(t, err, ErrDuplicateTag)

	_, err = dir.Add("  ", nil)
	assert.ErrorIs(t, err, ErrEmptyTagName)

	byID, ok := dir.ByID(paris.ID())
	require.True(t, ok)
	assert.Same(t, paris, byID)
}

func TestDirectoryTagsSorted(t *testing.T) {
	dir := NewDirectory()
	for _, n := range []string{"rome", "Berlin", "athens"} {
		_, err := dir.Add(n, nil)
		require.NoError(t, err)
	}

	var names []string
	for _, tag := range dir.Tags() {
		names = append(names, tag.Name())
	}
	assert.Equal(t, []string{"athens", "Berlin", "rome"}, names)
	assert.Equal(t, 3, dir.Len())
}

func TestCategories(t *testing.T) {
	dir := NewDirectory()
	places, _ := dir.Add("Places", nil)
	france, _ := dir.Add("France", places)
	paris, _ := dir.Add("Paris", france)

	assert.True(t, paris.Within(places))
	assert.True(t, paris.Within(france))
	assert.False(t, places.Within(paris))

	assert.ErrorIs(t, dir.SetCategory(places, paris), ErrCategoryCycle)
	assert.ErrorIs(t, dir.SetCategory(places, places), ErrCategoryCycle)
	assert.NoError(t, dir.SetCategory(paris, places))
	assert.Same(t, places, paris.Category())

	photo := &Photo{Path: "a.jpg", Tags: []*Tag{paris}}
	assert.True(t, photo.HasTag(places), "a photo matches the categories of its tags")
	assert.False(t, photo.HasTag(france))
}

func TestPhotoContainsText(t *testing.T) {
	p := &Photo{Path: "/2019/Summer/IMG_001.jpg", Description: "Straße am Meer"}
	assert.True(t, p.ContainsText("summer"))
	assert.True(t, p.ContainsText("STRASSE"), "matching uses case folding")
	assert.False(t, p.ContainsText("winter"))
}

func newTestCollection(t *testing.T) *Collection {
	t.Helper()
	dir := NewDirectory()
	places, _ := dir.Add("Places", nil)
	paris, _ := dir.Add("Paris", places)
	rome, _ := dir.Add("Rome", places)
	family, _ := dir.Add("Family", nil)
	hidden, _ := dir.Add("Hidden", nil)
	dir.SetHidden(hidden)

	coll := NewCollection(dir)
	for _, p := range []*Photo{
		{Path: "/2019/eiffel.jpg", Tags: []*Tag{paris}},
		{Path: "/2019/louvre.jpg", Tags: []*Tag{paris, family}},
		{Path: "/2020/colosseum.jpg", Tags: []*Tag{rome}},
		{Path: "/2020/secret.jpg", Tags: []*Tag{rome, hidden}},
		{Path: "/2021/garden.jpg", Description: "family picnic", Tags: []*Tag{family}},
	} {
		require.NoError(t, coll.Add(p))
	}
	return coll
}

func paths(photos []*Photo) []string {
	var out []string
	for _, p := range photos {
		out = append(out, p.Path)
	}
	return out
}

func TestCollectionQuery(t *testing.T) {
	coll := newTestCollection(t)
	b := query.NewBuilder(coll.Directory())

	tests := []struct {
		text string
		want []string
	}{
		{"", []string{"/2019/eiffel.jpg", "/2019/louvre.jpg", "/2020/colosseum.jpg", "/2021/garden.jpg"}},
		{"paris", []string{"/2019/eiffel.jpg", "/2019/louvre.jpg"}},
		{"places and not family", []string{"/2019/eiffel.jpg", "/2020/colosseum.jpg"}},
		{"family", []string{"/2019/louvre.jpg", "/2021/garden.jpg"}},
		{"rome", []string{"/2020/colosseum.jpg"}},
		{"hidden", []string{"/2020/secret.jpg"}},
		{"rome and not hidden", []string{"/2020/colosseum.jpg"}},
		{"2020", []string{"/2020/colosseum.jpg"}},
		{"paris, rome", []string{"/2019/eiffel.jpg", "/2019/louvre.jpg", "/2020/colosseum.jpg"}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			res := b.Build(tt.text)
			require.NoError(t, res.Err)
			assert.Equal(t, tt.want, paths(coll.Query(res.Root)))
		})
	}
}

func TestEffectiveLeavesRootAlone(t *testing.T) {
	coll := newTestCollection(t)
	b := query.NewBuilder(coll.Directory())

	root := b.Build("Paris").Root
	before := term.Expression(root)
	cond := coll.Effective(root)

	assert.Equal(t, before, term.Expression(root))
	assert.Equal(t, 1, root.Len())
	assert.Equal(t, 2, cond.Len())
	assert.Equal(t, "Paris and not Hidden", term.Expression(cond))

	mentioned := b.Build("hidden").Root
	assert.Same(t, mentioned, coll.Effective(mentioned))
}

func TestApplyFilter(t *testing.T) {
	coll := newTestCollection(t)
	assert.Len(t, coll.Photos(), 4)

	root := query.NewBuilder(coll.Directory()).Build("family").Root
	coll.ApplyFilter(root)
	assert.Same(t, root, coll.Filter())
	assert.Equal(t, []string{"/2019/louvre.jpg", "/2021/garden.jpg"}, paths(coll.Photos()))

	coll.ApplyFilter(nil)
	assert.Len(t, coll.Photos(), 4)
	assert.Equal(t, 5, coll.Len())
}

func TestCollectionAddValidates(t *testing.T) {
	coll := newTestCollection(t)
	stranger := &Tag{name: "Stranger"}

	assert.ErrorIs(t, coll.Add(&Photo{Path: "x.jpg", Tags: []*Tag{stranger}}), ErrUnknownTag)
	assert.ErrorIs(t, coll.Add(&Photo{}), ErrEmptyPath)

	p := &Photo{Path: "new.jpg"}
	require.NoError(t, coll.Add(p))
	assert.NotEqual(t, uuid.Nil, p.ID)
}

func TestNoHiddenTag(t *testing.T) {
	coll := NewCollection(NewDirectory())
	require.NoError(t, coll.Add(&Photo{Path: "a.jpg"}))
	assert.Nil(t, coll.Effective(nil))
	assert.Len(t, coll.Photos(), 1)
}
