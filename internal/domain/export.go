package domain

// Bundle is the single downloadable artifact produced by an export: a zip
// archive containing every entry's image and transcript plus a manifest.
// A zero Bundle (empty Filename, nil Data) means "nothing to export".
type Bundle struct {
	// Filename is the suggested download name, a fixed prefix plus the
	// ISO calendar date of the export (e.g. "doodle-diary-export-2026-08-23.zip").
	Filename string
	// Data is the complete zip archive.
	Data []byte
}

// Empty reports whether the bundle carries no archive (empty-history export).
func (b Bundle) Empty() bool {
	return len(b.Data) == 0
}

// Manifest is the index.json file inside an export bundle. It is the
// canonical cross-reference between entry metadata and the per-entry files:
// it carries id, date, style, and prompt for every entry, but never the raw
// transcript or image; those live only in the per-entry files.
type Manifest struct {
	Entries []ManifestEntry `json:"entries"`
	// ExportedAt is the single export timestamp, RFC 3339 in UTC.
	ExportedAt string `json:"exportedAt"`
}

// ManifestEntry is one entry's metadata row in the manifest.
type ManifestEntry struct {
	ID     string      `json:"id"`
	Date   string      `json:"date"`
	Style  DoodleStyle `json:"style"`
	Prompt string      `json:"prompt"`
}
