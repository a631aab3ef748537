// ABOUTME: JSON catalog loader for tags and photos
// ABOUTME: Reads plain or zstd compressed files and reports every problem found

package catalog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/klauspost/compress/zstd"
	"github.com/valyala/fastjson"
)

// Load reads a JSON catalog:
//
//	{
//	  "hidden_tag": "Hidden",
//	  "tags":   [{"id": "...", "name": "Paris", "category": "Places"}],
//	  "photos": [{"id": "...", "path": "...", "description": "...", "tags": ["Paris"]}]
//	}
//
// IDs are optional. Every problem found is reported, not just the first.
func Load(r io.Reader) (*Collection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("catalog: read: %w", err)
	}

	var p fastjson.Parser
	v, err := p.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("catalog: parse: %w", err)
	}

	var errs *multierror.Error
	dir := NewDirectory()

	type link struct {
		tag      *Tag
		category string
	}
	var links []link
	for i, tv := range v.GetArray("tags") {
		id, err := parseID(tv)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("tag %d: %w", i, err))
			continue
		}
		t, err := dir.AddWithID(id, string(tv.GetStringBytes("name")), nil)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("tag %d: %w", i, err))
			continue
		}
		if category := string(tv.GetStringBytes("category")); category != "" {
			links = append(links, link{tag: t, category: category})
		}
	}

	for _, l := range links {
		category, ok := dir.Tag(l.category)
		if !ok {
			errs = multierror.Append(errs, fmt.Errorf("tag %q: %w: category %q", l.tag.Name(), ErrUnknownTag, l.category))
			continue
		}
		if err := dir.SetCategory(l.tag, category); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	if name := string(v.GetStringBytes("hidden_tag")); name != "" {
		hidden, ok := dir.Tag(name)
		if !ok {
			if hidden, err = dir.Add(name, nil); err != nil {
				errs = multierror.Append(errs, err)
			}
		}
		dir.SetHidden(hidden)
	}

	coll := NewCollection(dir)
	for i, pv := range v.GetArray("photos") {
		id, err := parseID(pv)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("photo %d: %w", i, err))
			continue
		}
		photo := &Photo{
			ID:          id,
			Path:        string(pv.GetStringBytes("path")),
			Description: string(pv.GetStringBytes("description")),
		}
		for _, nv := range pv.GetArray("tags") {
			name := string(nv.GetStringBytes())
			t, ok := dir.Tag(name)
			if !ok {
				errs = multierror.Append(errs, fmt.Errorf("photo %d: %w: %q", i, ErrUnknownTag, name))
				continue
			}
			photo.Tags = append(photo.Tags, t)
		}
		if err := coll.Add(photo); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("photo %d: %w", i, err))
		}
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return coll, nil
}

// LoadFile reads a catalog from path. Files ending in .zst are zstd
// compressed.
func LoadFile(path string) (*Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	defer f.Close()

	if !strings.HasSuffix(path, ".zst") {
		return Load(f)
	}

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("catalog: zstd: %w", err)
	}
	defer dec.Close()
	return Load(dec)
}

func parseID(v *fastjson.Value) (uuid.UUID, error) {
	raw := v.GetStringBytes("id")
	if len(raw) == 0 {
		return uuid.New(), nil
	}
	return uuid.ParseBytes(raw)
}
