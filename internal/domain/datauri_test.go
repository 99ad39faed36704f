package domain_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/doodle-diary/internal/domain"
)

// TestEncodeDecode_RoundTrip verifies that encoding PNG bytes and decoding
// the resulting URI yields the original bytes.
func TestEncodeDecode_RoundTrip(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 1, 2, 3}

	uri := domain.EncodePNGDataURI(payload)
	require.Contains(t, uri, "data:image/png;base64,")

	got, err := domain.DecodeDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

// TestDecodeDataURI_PayloadMatchesURI verifies the decoded bytes equal the
// payload portion of a well-formed URI exactly.
func TestDecodeDataURI_PayloadMatchesURI(t *testing.T) {
	payload := []byte("not really a png, but bytes are bytes")
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

	got, err := domain.DecodeDataURI(uri)

	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

// TestDecodeDataURI_NonPNGMediaType verifies that other media types still
// decode; entries from older builds may carry them.
func TestDecodeDataURI_NonPNGMediaType(t *testing.T) {
	payload := []byte{1, 2, 3, 4}
	uri := "data:image/webp;base64," + base64.StdEncoding.EncodeToString(payload)

	got, err := domain.DecodeDataURI(uri)

	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

// TestDecodeDataURI_Malformed covers the payload shapes the exporter must
// treat as "skip this image".
func TestDecodeDataURI_Malformed(t *testing.T) {
	cases := map[string]string{
		"empty string":     "",
		"not a data URI":   "https://example.com/doodle.png",
		"no base64 marker": "data:image/png,rawdata",
		"empty payload":    "data:image/png;base64,",
		"invalid base64":   "data:image/png;base64,!!!not-base64!!!",
	}

	for name, uri := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := domain.DecodeDataURI(uri)
			assert.Error(t, err)
		})
	}
}
