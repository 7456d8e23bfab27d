// Package links rewrites local link and image targets in a note body so the
// published bundle is self-contained, and produces the attachment copy plan.
package links

import (
	"path"
	"regexp"
	"strings"

	"github.com/starford/ansuz/internal/models"
)

// Matches [text](target) and ![text](target).
var linkRe = regexp.MustCompile(`(!?\[[^\]]*\]\()([^)]+)(\))`)

// ExistsFunc reports whether a path relative to the export root resolves to
// an existing file.
type ExistsFunc func(rel string) bool

// Rewrite scans body for Markdown link/image syntax, rewrites local targets
// to attachments/<basename>, and returns the rewritten body plus the list of
// source files to copy into the bundle. noteDir is the note's directory
// relative to the export root. External URLs, in-page anchors, absolute
// paths, and targets that do not resolve to an existing file are left
// untouched.
func Rewrite(body, noteDir string, exists ExistsFunc) (string, []models.Attachment) {
	var attachments []models.Attachment

	out := linkRe.ReplaceAllStringFunc(body, func(m string) string {
		sub := linkRe.FindStringSubmatch(m)
		prefix, target, suffix := sub[1], sub[2], sub[3]

		p, tail := splitTarget(target)
		if !isLocal(p) || strings.HasPrefix(p, "/") {
			return m
		}
		resolved := path.Join(noteDir, p)
		if strings.HasPrefix(resolved, "..") || !exists(resolved) {
			return m
		}
		name := path.Base(resolved)
		attachments = append(attachments, models.Attachment{Source: resolved, Name: name})
		return prefix + "attachments/" + name + tail + suffix
	})

	return out, attachments
}

// splitTarget separates the path from an optional trailing title annotation.
// Angle-bracket-wrapped targets are unwrapped and the brackets dropped.
func splitTarget(raw string) (string, string) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "<") && strings.HasSuffix(raw, ">") {
		return raw[1 : len(raw)-1], ""
	}
	if i := strings.Index(raw, " "); i >= 0 {
		return raw[:i], " " + raw[i+1:]
	}
	return raw, ""
}

// isLocal reports whether target is a candidate for bundling: anything that
// is not an absolute URL scheme or an in-page anchor.
func isLocal(target string) bool {
	lowered := strings.ToLower(strings.TrimSpace(target))
	for _, prefix := range []string{"http://", "https://", "mailto:", "data:", "#"} {
		if strings.HasPrefix(lowered, prefix) {
			return false
		}
	}
	return true
}
