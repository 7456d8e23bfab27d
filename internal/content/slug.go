package content

import (
	"path"

	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/parser"
	"github.com/starford/ansuz/internal/storage"
)

// Resolver assigns each note a slug guaranteed unique in the content tree.
// It consults the tree itself, so within one run the first writer keeps an
// unqualified slug and later colliders are disambiguated.
type Resolver struct {
	store storage.Provider
}

// NewResolver creates a Resolver over the content tree.
func NewResolver(store storage.Provider) *Resolver {
	return &Resolver{store: store}
}

// Resolve picks the desired slug by precedence (explicit override, the
// prior record's slug, the normalized title, the raw identity as last
// resort) and then guarantees uniqueness against the tree.
func (r *Resolver) Resolve(note *models.Note, prior *models.PostRecord) string {
	var desired string
	switch {
	case note.SlugOverride != "":
		desired = parser.Slugify(note.SlugOverride)
	case prior != nil:
		desired = prior.Slug
	default:
		desired = parser.Slugify(note.Title)
	}
	if desired == "" {
		desired = note.Identity
	}
	return r.ensureUnique(desired, note.Identity)
}

// ensureUnique returns slug unless an existing bundle with a different
// identity already occupies it, in which case a short fragment of the
// note's identity is appended.
func (r *Resolver) ensureUnique(slug, identity string) string {
	data, err := r.store.Read(path.Join(slug, IndexFile))
	if err != nil {
		return slug
	}
	h, err := decodeHeader(data)
	if err != nil {
		return slug
	}
	if h.NoteID != "" && h.NoteID != identity {
		return slug + "-" + shortID(identity)
	}
	return slug
}

func shortID(identity string) string {
	if len(identity) > 6 {
		return identity[:6]
	}
	return identity
}
