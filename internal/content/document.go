// Package content manages the published content tree: the canonical
// document format, the identity index rebuilt each run, and slug resolution.
package content

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

const (
	// IndexFile is the canonical document name inside each bundle directory.
	IndexFile = "index.md"
	// AttachmentsDir is the bundle subdirectory holding copied local files.
	AttachmentsDir = "attachments"
	// TimeLayout is the ISO-8601 second-precision format written to front matter.
	TimeLayout = "2006-01-02T15:04:05-07:00"
)

// Document is the canonical serialized form of a published post.
type Document struct {
	Title   string
	Date    string // verbatim ISO-8601 datetime
	LastMod string
	Tags    []string
	NoteID  string
	Body    string
}

// Encode serializes the document: header block, blank line, trimmed body,
// single trailing newline. The output is deterministic so an unchanged note
// produces a byte-identical bundle on every run. The tags block is omitted
// entirely when no tags remain.
func (d *Document) Encode() []byte {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %q\n", d.Title)
	fmt.Fprintf(&b, "date: %s\n", d.Date)
	fmt.Fprintf(&b, "lastmod: %s\n", d.LastMod)
	if len(d.Tags) > 0 {
		b.WriteString("tags:\n")
		for _, t := range d.Tags {
			fmt.Fprintf(&b, "  - %s\n", t)
		}
	}
	fmt.Fprintf(&b, "note_id: %q\n", d.NoteID)
	b.WriteString("---\n\n")
	b.WriteString(strings.TrimSpace(d.Body))
	b.WriteString("\n")
	return []byte(b.String())
}

// header mirrors the front matter fields the pipeline reads back from a
// published bundle. Dates stay raw strings so they can be re-emitted verbatim.
type header struct {
	Title   string   `yaml:"title"`
	Date    string   `yaml:"date"`
	LastMod string   `yaml:"lastmod"`
	Tags    []string `yaml:"tags"`
	NoteID  string   `yaml:"note_id"`
}

func decodeHeader(data []byte) (*header, error) {
	var h header
	if _, err := frontmatter.Parse(bytes.NewReader(data), &h); err != nil {
		return nil, fmt.Errorf("content: parse front matter: %w", err)
	}
	return &h, nil
}

// FormatTime renders a timestamp in the canonical front matter layout.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// parseTime accepts the layouts previous runs (and hand edits) have written.
// Unparseable values yield the zero time, which disables the freshness skip.
func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{TimeLayout, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
