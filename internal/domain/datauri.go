package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// pngDataURIPrefix is the prefix used when encoding generated PNGs.
const pngDataURIPrefix = "data:image/png;base64,"

// base64Marker separates the media type from the payload in a data URI.
const base64Marker = ";base64,"

// EncodePNGDataURI wraps raw PNG bytes in a self-contained data URI.
func EncodePNGDataURI(data []byte) string {
	return pngDataURIPrefix + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI extracts and decodes the base64 payload of a data URI.
// It accepts any "data:<mediatype>;base64,<payload>" form, not just PNG,
// so entries produced by older builds still decode.
//
// Returns an error for a missing scheme, a missing base64 marker, an empty
// payload, or undecodable base64. Callers that tolerate malformed images
// (the exporter) treat the error as "skip this image".
func DecodeDataURI(uri string) ([]byte, error) {
	if !strings.HasPrefix(uri, "data:") {
		return nil, fmt.Errorf("domain.DecodeDataURI: not a data URI")
	}
	idx := strings.Index(uri, base64Marker)
	if idx < 0 {
		return nil, fmt.Errorf("domain.DecodeDataURI: missing base64 payload marker")
	}
	payload := uri[idx+len(base64Marker):]
	if payload == "" {
		return nil, fmt.Errorf("domain.DecodeDataURI: empty payload")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("domain.DecodeDataURI: decode payload: %w", err)
	}
	return data, nil
}
