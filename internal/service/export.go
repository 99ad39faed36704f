package service

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkordes/doodle-diary/internal/domain"
)

// bundlePrefix is the fixed filename prefix of every export bundle; the ISO
// calendar date of the export is appended.
const bundlePrefix = "doodle-diary-export-"

// ExportService assembles the full history into one downloadable zip bundle.
//
// Bundle layout:
//
//	doodles/doodle-<id>.png      decoded image content
//	transcripts/doodle-<id>.txt  raw transcript
//	index.json                   manifest: {entries:[{id,date,style,prompt}], exportedAt}
//
// Both per-entry files share a base name derived from the entry id so they
// can be correlated by filename alone.
type ExportService struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewExportService constructs an ExportService.
// The logger records skipped images; pass nil to use the default logger.
func NewExportService(logger *slog.Logger) *ExportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportService{logger: logger, now: time.Now}
}

// Export builds the bundle for the given entries, processed sequentially in
// iteration order (the history's current order, newest first).
//
// An empty history is a no-op: Export returns a zero Bundle and no error, and
// no file is produced. An entry whose image payload is malformed or missing
// is skipped for the image file but still contributes its transcript file and
// manifest row. Any failure during assembly aborts the entire export; no
// partial bundle is ever returned and the history is never mutated.
func (s *ExportService) Export(ctx context.Context, entries []domain.DoodleEntry) (domain.Bundle, error) {
	if len(entries) == 0 {
		return domain.Bundle{}, nil
	}

	exportedAt := s.now().UTC()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	manifest := domain.Manifest{
		Entries:    make([]domain.ManifestEntry, 0, len(entries)),
		ExportedAt: exportedAt.Format(time.RFC3339),
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return domain.Bundle{}, fmt.Errorf("service.ExportService.Export: %w", err)
		}

		base := "doodle-" + e.ID.String()

		if image, err := domain.DecodeDataURI(e.ImageURL); err != nil {
			s.logger.Warn("export: skipping image with unusable payload",
				"id", e.ID,
				"error", err,
			)
		} else if err := writeZipFile(zw, "doodles/"+base+".png", image); err != nil {
			return domain.Bundle{}, fmt.Errorf("service.ExportService.Export: %w", err)
		}

		if err := writeZipFile(zw, "transcripts/"+base+".txt", []byte(e.Transcript)); err != nil {
			return domain.Bundle{}, fmt.Errorf("service.ExportService.Export: %w", err)
		}

		manifest.Entries = append(manifest.Entries, domain.ManifestEntry{
			ID:     e.ID.String(),
			Date:   e.Date,
			Style:  e.Style,
			Prompt: e.Prompt,
		})
	}

	manifestJSON, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return domain.Bundle{}, fmt.Errorf("service.ExportService.Export: marshal manifest: %w", err)
	}
	if err := writeZipFile(zw, "index.json", manifestJSON); err != nil {
		return domain.Bundle{}, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	if err := zw.Close(); err != nil {
		return domain.Bundle{}, fmt.Errorf("service.ExportService.Export: close archive: %w", err)
	}

	return domain.Bundle{
		Filename: bundlePrefix + exportedAt.Format("2006-01-02") + ".zip",
		Data:     buf.Bytes(),
	}, nil
}

// writeZipFile adds one file to the archive with the given content.
func writeZipFile(zw *zip.Writer, name string, content []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := w.Write(content); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
