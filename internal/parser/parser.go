// Package parser turns one raw exported note into a structured Note:
// title line, optional tags/slug header lines, free-form body, and a stable
// identity derived from the source filename.
package parser

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/goliatone/go-slug"

	"github.com/starford/ansuz/internal/models"
)

const (
	tagLinePrefix  = "tags:"
	slugLinePrefix = "slug:"

	// headerWindow is how many lines after the title are scanned for the
	// tags/slug marker lines.
	headerWindow = 7
)

var (
	idSuffixRe = regexp.MustCompile(`^.+-([A-Za-z0-9]+)$`)
	tagRe      = regexp.MustCompile(`#([A-Za-z0-9][A-Za-z0-9_-]*)`)
)

// Parse builds a Note from the raw bytes of an exported file. path is the
// file's location relative to the export root; modifiedAt is its mtime.
// A file with no non-blank content yields nil (skipped, not an error).
func Parse(path string, data []byte, modifiedAt time.Time) *models.Note {
	lines := strings.Split(string(data), "\n")

	titleIdx := -1
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			titleIdx = i
			break
		}
	}
	if titleIdx < 0 {
		return nil
	}
	title := cleanTitle(lines[titleIdx])

	// Scan the header window for tags:/slug: marker lines. Both are
	// optional, may appear in either order, and the last match wins.
	tagIdx, slugIdx := -1, -1
	var tags []string
	slugOverride := ""
	end := titleIdx + 1 + headerWindow
	if end > len(lines) {
		end = len(lines)
	}
	for i := titleIdx + 1; i < end; i++ {
		stripped := strings.TrimSpace(lines[i])
		lower := strings.ToLower(stripped)
		if strings.HasPrefix(lower, tagLinePrefix) {
			tagIdx = i
			tags = parseTags(stripped)
		}
		if strings.HasPrefix(lower, slugLinePrefix) {
			slugIdx = i
			slugOverride = parseSlugOverride(stripped)
		}
	}

	var bodyLines []string
	for i, line := range lines {
		if i == titleIdx || i == tagIdx || i == slugIdx {
			continue
		}
		bodyLines = append(bodyLines, line)
	}
	body := strings.TrimSpace(strings.Join(bodyLines, "\n"))
	if body != "" {
		body += "\n"
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if title == "" {
		title = stem
	}

	hasPublish, hasPublished := false, false
	for _, t := range tags {
		switch t {
		case models.TagPublish:
			hasPublish = true
		case models.TagPublished:
			hasPublished = true
		}
	}

	return &models.Note{
		Identity:     Identity(stem),
		Title:        title,
		Tags:         tags,
		SlugOverride: slugOverride,
		Body:         body,
		SourcePath:   path,
		ModifiedAt:   modifiedAt,
		HasPublish:   hasPublish,
		HasPublished: hasPublished,
	}
}

// Identity derives the stable note key from a filename stem. A trailing
// "-<alphanumeric>" suffix (the exporter's "&title-&id" format) is the
// identity; otherwise the slugified stem, falling back to the raw stem.
func Identity(stem string) string {
	if m := idSuffixRe.FindStringSubmatch(stem); m != nil {
		return m[1]
	}
	if s := Slugify(stem); s != "" {
		return s
	}
	return stem
}

// Slugify normalizes text into a URL-safe slug. It returns "" when no
// usable slug remains.
func Slugify(text string) string {
	out, err := slug.Normalize(text)
	if err != nil {
		return ""
	}
	return out
}

// cleanTitle strips leading Markdown heading markers and whitespace.
func cleanTitle(line string) string {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "#") {
		line = strings.TrimSpace(strings.TrimLeft(line, "#"))
	}
	return line
}

// parseTags extracts hashtag tokens from the text after the first colon,
// lowercased, order-preserving.
func parseTags(line string) []string {
	text := ""
	if i := strings.Index(line, ":"); i >= 0 {
		text = line[i+1:]
	}
	var out []string
	for _, m := range tagRe.FindAllStringSubmatch(text, -1) {
		out = append(out, strings.ToLower(m[1]))
	}
	return out
}

// parseSlugOverride extracts the trimmed text after the first colon; empty
// is treated as absent.
func parseSlugOverride(line string) string {
	i := strings.Index(line, ":")
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(line[i+1:])
}
