// Package publisher implements the per-run reconciliation between the
// export tree and the published content tree.
package publisher

import (
	"fmt"
	"log/slog"
	"path"

	"github.com/starford/ansuz/internal/checksum"
	"github.com/starford/ansuz/internal/content"
	"github.com/starford/ansuz/internal/links"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/parser"
	"github.com/starford/ansuz/internal/storage"
)

// Reconciler applies the publish decision to every exported note in scan
// order: eligibility filter, freshness skip, slug resolution, bundle rename,
// bundle write. Notes are independent, but they share the slug namespace:
// the first writer in scan order keeps an unqualified slug.
type Reconciler struct {
	export storage.Provider
	tree   storage.Provider
	index  *content.Index
	slugs  *content.Resolver
	logger *slog.Logger
}

// New creates a Reconciler over the export tree and the content tree.
func New(export, tree storage.Provider, idx *content.Index, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		export: export,
		tree:   tree,
		index:  idx,
		slugs:  content.NewResolver(tree),
		logger: logger,
	}
}

// Run processes every exported note and returns aggregate stats. When the
// export tree holds no markdown files at all it returns (nil, nil).
func (r *Reconciler) Run() (*models.RunStats, error) {
	metas, err := r.export.List("")
	if err != nil {
		return nil, fmt.Errorf("publisher: scan export: %w", err)
	}
	if len(metas) == 0 {
		return nil, nil
	}

	stats := &models.RunStats{}
	for _, meta := range metas {
		data, err := r.export.Read(meta.Path)
		if err != nil {
			return nil, fmt.Errorf("publisher: read note: %w", err)
		}
		note := parser.Parse(meta.Path, data, meta.ModTime)
		if note == nil || !note.Eligible() {
			continue
		}
		if err := r.process(note, stats); err != nil {
			return nil, err
		}
	}
	return stats, nil
}

func (r *Reconciler) process(note *models.Note, stats *models.RunStats) error {
	var prior *models.PostRecord
	if rec, ok := r.index.Lookup(note.Identity); ok {
		prior = &rec
	}

	// Freshness skip: already published, not re-flagged for publishing,
	// and the source has not changed since the last write.
	if note.HasPublished && !note.HasPublish && prior != nil &&
		!prior.LastModified.IsZero() && !note.ModifiedAt.After(prior.LastModified) {
		stats.Skipped++
		r.logger.Debug("skipped: up to date",
			slog.String("identity", note.Identity),
			slog.String("slug", prior.Slug))
		return nil
	}

	slug := r.slugs.Resolve(note, prior)

	// An explicit override that changes the slug moves the whole bundle,
	// unless the destination is already taken.
	if prior != nil && note.SlugOverride != "" && slug != prior.Slug {
		if r.tree.Exists(prior.Slug) && !r.tree.Exists(slug) {
			if err := r.tree.Move(prior.Slug, slug); err != nil {
				return fmt.Errorf("publisher: rename bundle: %w", err)
			}
			r.logger.Info("bundle renamed",
				slog.String("from", prior.Slug),
				slog.String("to", slug))
		}
	}

	changed, err := r.write(note, slug, prior)
	if err != nil {
		return err
	}
	stats.Processed++
	if changed {
		stats.Changed++
	}
	if note.HasPublish {
		stats.PendingTitles = append(stats.PendingTitles, note.Title)
	}
	return nil
}

// write merges the note into the target bundle: attachments are fully
// regenerated, links rewritten, and the canonical document serialized.
// changed reports whether the serialized content differs byte-for-byte from
// the previous bundle (or no bundle existed).
func (r *Reconciler) write(note *models.Note, slug string, prior *models.PostRecord) (bool, error) {
	attDir := path.Join(slug, content.AttachmentsDir)
	if err := r.tree.RemoveTree(attDir); err != nil {
		return false, fmt.Errorf("publisher: purge attachments: %w", err)
	}

	body, atts := links.Rewrite(note.Body, path.Dir(note.SourcePath), r.export.Exists)
	for _, att := range atts {
		data, err := r.export.Read(att.Source)
		if err != nil {
			return false, fmt.Errorf("publisher: read attachment %s: %w", att.Source, err)
		}
		if err := r.tree.Write(path.Join(attDir, att.Name), data); err != nil {
			return false, fmt.Errorf("publisher: copy attachment %s: %w", att.Name, err)
		}
	}

	// The original publish date survives every re-publish.
	date := ""
	if prior != nil {
		date = prior.PublishDate
	}
	if date == "" {
		date = content.FormatTime(note.ModifiedAt)
	}

	doc := content.Document{
		Title:   note.Title,
		Date:    date,
		LastMod: content.FormatTime(note.ModifiedAt),
		Tags:    note.PublicTags(),
		NoteID:  note.Identity,
		Body:    body,
	}
	encoded := doc.Encode()

	indexPath := path.Join(slug, content.IndexFile)
	previous, readErr := r.tree.Read(indexPath)
	changed := readErr != nil || !checksum.Equal(previous, encoded)

	if err := r.tree.Write(indexPath, encoded); err != nil {
		return false, fmt.Errorf("publisher: write bundle: %w", err)
	}

	r.index.Put(models.PostRecord{
		Slug:         slug,
		Identity:     note.Identity,
		Title:        note.Title,
		PublishDate:  date,
		LastModified: note.ModifiedAt,
	})

	r.logger.Info("published",
		slog.String("slug", slug),
		slog.String("identity", note.Identity),
		slog.Int("attachments", len(atts)),
		slog.Bool("changed", changed))
	return changed, nil
}
