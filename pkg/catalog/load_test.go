package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `{
  "hidden_tag": "Hidden",
  "tags": [
    {"id": "6f1c2b8e-8a4e-4a53-9d0c-1f7f1b1f5a01", "name": "Places"},
    {"name": "Paris", "category": "Places"},
    {"name": "Family"}
  ],
  "photos": [
    {"path": "/2019/eiffel.jpg", "tags": ["paris"]},
    {"id": "0b7b5a3c-3f3e-4d4f-8a55-2a9b3c1d7e02", "path": "/2019/louvre.jpg", "description": "with grandma", "tags": ["Paris", "Family"]},
    {"path": "/2020/private.jpg", "tags": ["hidden"]}
  ]
}`

func TestLoad(t *testing.T) {
	coll, err := Load(strings.NewReader(sampleCatalog))
	require.NoError(t, err)

	dir := coll.Directory()
	assert.Equal(t, 4, dir.Len(), "the hidden tag is created when missing")
	require.NotNil(t, dir.Hidden())
	assert.Equal(t, "Hidden", dir.Hidden().Name())

	places, ok := dir.Tag("places")
	require.True(t, ok)
	assert.Equal(t, "6f1c2b8e-8a4e-4a53-9d0c-1f7f1b1f5a01", places.ID().String())

	paris, ok := dir.Tag("paris")
	require.True(t, ok)
	assert.Same(t, places, paris.Category())

	assert.Equal(t, 3, coll.Len())
	visible := coll.Photos()
	require.Len(t, visible, 2)
	assert.Equal(t, "/2019/louvre.jpg", visible[1].Path)
	assert.Equal(t, "with grandma", visible[1].Description)
	assert.Equal(t, "0b7b5a3c-3f3e-4d4f-8a55-2a9b3c1d7e02", visible[1].ID.String())
	assert.True(t, visible[0].HasTag(places))
}

func TestLoadReportsEveryError(t *testing.T) {
	bad := `{
  "tags": [
    {"name": ""},
    {"name": "A", "category": "Nowhere"},
    {"name": "a"},
    {"id": "not-a-uuid", "name": "B"}
  ],
  "photos": [
    {"path": "", "tags": []},
    {"path": "x.jpg", "tags": ["Missing"]}
  ]
}`
	_, err := Load(strings.NewReader(bad))
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 6)
	assert.ErrorIs(t, err, ErrEmptyTagName)
	assert.ErrorIs(t, err, ErrDuplicateTag)
	assert.ErrorIs(t, err, ErrUnknownTag)
	assert.ErrorIs(t, err, ErrEmptyPath)
}

func TestLoadInvalidJSON(t *testing.T) {
	_, err := Load(strings.NewReader(`{"tags": [`))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(plain, []byte(sampleCatalog), 0o644))

	compressed := filepath.Join(dir, "catalog.json.zst")
	f, err := os.Create(compressed)
	require.NoError(t, err)
	enc, err := zstd.NewWriter(f)
	require.NoError(t, err)
	_, err = enc.Write([]byte(sampleCatalog))
	require.NoError(t, err)
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	for _, path := range []string{plain, compressed} {
		coll, err := LoadFile(path)
		require.NoError(t, err, path)
		assert.Equal(t, 3, coll.Len(), path)
	}

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
