// Package domain contains the core data types for the Doodle Diary application.
// This package has zero external dependencies beyond the UUID type and is
// imported by every other internal package (repo, service, handler).
package domain

import "github.com/google/uuid"

// Thickness selects the line weight used when a doodle is drawn.
type Thickness string

// Line weight options offered by the UI.
const (
	ThicknessFine   Thickness = "Fine"
	ThicknessMedium Thickness = "Medium"
	ThicknessBold   Thickness = "Bold"
)

// ArtStyle selects the overall rendering style of a doodle.
type ArtStyle string

// Art style options offered by the UI.
const (
	ArtStyleMinimalist ArtStyle = "Minimalist"
	ArtStyleCrayon     ArtStyle = "Crayon"
	ArtStyleFeltTip    ArtStyle = "Felt Tip"
	ArtStyleCharcoal   ArtStyle = "Charcoal"
	ArtStyleAbstract   ArtStyle = "Abstract"
)

// DoodleStyle describes the rendering preferences in effect when a doodle is
// generated. It is immutable per entry: the style is copied into the entry at
// creation time and never changes afterwards.
//
// Color is a free-form accent color name. It is intentionally not validated;
// the display palette resolves known names and falls back to black for
// anything else (see PaletteHex).
type DoodleStyle struct {
	Thickness Thickness `json:"thickness"`
	Color     string    `json:"color"`
	ArtStyle  ArtStyle  `json:"artStyle"`
}

// DefaultStyle returns the style preselected for a new session.
func DefaultStyle() DoodleStyle {
	return DoodleStyle{
		Thickness: ThicknessMedium,
		Color:     "Black",
		ArtStyle:  ArtStyleMinimalist,
	}
}

// palette maps the accent color names offered by the UI to display hex values.
var palette = map[string]string{
	"Black":  "#1a1a1a",
	"Red":    "#d94f4f",
	"Blue":   "#4f6bd9",
	"Green":  "#4fa96b",
	"Orange": "#e08a3c",
	"Purple": "#8a5bc7",
}

// PaletteHex resolves an accent color name to its display hex value.
// Unknown names resolve to black rather than erroring; the stored color
// string is preserved as-is, so an unknown name survives round-trips even
// though it renders as black.
func PaletteHex(color string) string {
	if hex, ok := palette[color]; ok {
		return hex
	}
	return palette["Black"]
}

// DoodleEntry is one persisted journal record: the transcript that was
// narrated or typed, the generated image, and the metadata around it.
// Entries are immutable once created; they are only ever destroyed by
// explicit user deletion.
type DoodleEntry struct {
	// ID is assigned once at creation time.
	ID uuid.UUID `json:"id"`
	// Date is the human-readable creation timestamp, fixed at creation.
	// It is display metadata and is stored as the exact string shown to
	// the user, so it survives serialization byte-for-byte.
	Date string `json:"date"`
	// Transcript is the journal text that produced this entry.
	Transcript string `json:"transcript"`
	// ImageURL holds the generated image as a self-contained data URI
	// (base64-encoded PNG).
	ImageURL string `json:"imageUrl"`
	// Prompt is the intermediate visual prompt derived from the transcript,
	// retained for traceability.
	Prompt string `json:"prompt"`
	// Style is the DoodleStyle in effect when this entry was generated.
	Style DoodleStyle `json:"style"`
}

// ImageData carries raw generated image content from the AI gateway.
type ImageData struct {
	Data     []byte
	MIMEType string
}
