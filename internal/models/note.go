// Package models defines the domain types for Ansuz.
package models

import "time"

// Control tags carry pipeline meaning and are stripped from published posts.
const (
	TagBlog      = "blog"
	TagPublish   = "publish"
	TagPublished = "published"
)

// IsControlTag reports whether tag has pipeline-specific meaning.
func IsControlTag(tag string) bool {
	return tag == TagBlog || tag == TagPublish || tag == TagPublished
}

// Note is one exported source document, parsed fresh each run.
type Note struct {
	// Identity is the stable key derived from the source filename. It stays
	// constant across runs even when the title or tags change.
	Identity     string
	Title        string
	Tags         []string
	SlugOverride string
	Body         string
	// SourcePath is relative to the export root.
	SourcePath   string
	ModifiedAt   time.Time
	HasPublish   bool
	HasPublished bool
}

// Eligible reports whether the note is in scope for publishing: it must be
// tagged as blog content and be either ready to publish or already published.
func (n *Note) Eligible() bool {
	blog := false
	for _, t := range n.Tags {
		if t == TagBlog {
			blog = true
			break
		}
	}
	return blog && (n.HasPublish || n.HasPublished)
}

// PublicTags returns the note's tags with control tags filtered out.
func (n *Note) PublicTags() []string {
	var out []string
	for _, t := range n.Tags {
		if !IsControlTag(t) {
			out = append(out, t)
		}
	}
	return out
}

// PostRecord describes one published bundle as recovered from the content tree.
type PostRecord struct {
	Slug     string
	Identity string
	Title    string
	// PublishDate is the raw front matter value, preserved verbatim so that
	// re-publishing never rewrites the original date.
	PublishDate  string
	LastModified time.Time
}

// Attachment is one local file referenced by a note body, queued for copy
// into the bundle's attachments directory.
type Attachment struct {
	// Source is relative to the export root.
	Source string
	// Name is the flat basename inside the bundle's attachments directory.
	Name string
}

// RunStats aggregates the outcome of one reconciliation pass.
type RunStats struct {
	// Processed counts notes written (changed or not).
	Processed int
	// Skipped counts notes passed over by the freshness rule.
	Skipped int
	// Changed counts writes whose serialized content differed byte-for-byte
	// from the previous bundle.
	Changed int
	// PendingTitles are titles of notes that were in "ready to publish"
	// state, reported back to the originating note store.
	PendingTitles []string
}
