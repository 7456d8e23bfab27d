package content

import (
	"fmt"
	"path"
	"sort"

	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/storage"
)

// Index maps note identity to its published record. It is rebuilt from the
// content tree once per run and mutated in place as bundles are written, so
// later notes in the same run see earlier writes.
type Index struct {
	byID map[string]models.PostRecord
}

// LoadIndex scans every bundle's index.md under the content root and keys
// the recoverable records by identity. Bundles without a note_id, or with
// unparseable front matter, are ignored (not indexed, never deleted).
func LoadIndex(store storage.Provider) (*Index, error) {
	idx := &Index{byID: make(map[string]models.PostRecord)}

	dirs, err := store.Dirs("")
	if err != nil {
		return nil, fmt.Errorf("content: scan tree: %w", err)
	}
	for _, slug := range dirs {
		data, err := store.Read(path.Join(slug, IndexFile))
		if err != nil {
			continue
		}
		h, err := decodeHeader(data)
		if err != nil || h.NoteID == "" {
			continue
		}
		idx.byID[h.NoteID] = models.PostRecord{
			Slug:         slug,
			Identity:     h.NoteID,
			Title:        h.Title,
			PublishDate:  h.Date,
			LastModified: parseTime(h.LastMod),
		}
	}
	return idx, nil
}

// Lookup returns the record for a note identity, if one is published.
func (x *Index) Lookup(identity string) (models.PostRecord, bool) {
	rec, ok := x.byID[identity]
	return rec, ok
}

// Put records a freshly written (or renamed) bundle.
func (x *Index) Put(rec models.PostRecord) {
	x.byID[rec.Identity] = rec
}

// Records returns all indexed records ordered by slug.
func (x *Index) Records() []models.PostRecord {
	out := make([]models.PostRecord, 0, len(x.byID))
	for _, rec := range x.byID {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}
