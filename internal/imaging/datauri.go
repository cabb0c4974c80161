// Package imaging handles the inline image transport format: binary image
// bytes encoded as a self-describing data URI (data:<mime>;base64,<payload>).
package imaging

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/musekit/muse/internal/llm"
)

// MaxImageBytes caps the decoded size of an inline image. Model endpoints
// reject payloads around this size anyway; failing early keeps the error
// attributable to the input rather than the provider.
const MaxImageBytes = 20 << 20 // 20 MiB

const prefix = "data:"

// DataURI is an image inlined as data:<mime>;base64,<payload>.
type DataURI string

// Encode builds a data URI from raw image bytes and their media type.
func Encode(data []byte, mediaType string) (DataURI, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("imaging: %w: empty image data", llm.ErrValidation)
	}
	if len(data) > MaxImageBytes {
		return "", fmt.Errorf("imaging: %w: image is %d bytes, limit %d", llm.ErrValidation, len(data), MaxImageBytes)
	}
	if mediaType == "" {
		mediaType = http.DetectContentType(data)
	}
	return DataURI(prefix + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)), nil
}

// EncodeFile reads an image file and encodes it. The media type is sniffed
// from the file contents, not the extension.
func EncodeFile(path string) (DataURI, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("imaging: read %s: %w", path, err)
	}
	return Encode(data, "")
}

// Split separates a data URI into its media type and base64 payload without
// decoding. Useful for APIs that want the two fields separately.
func (u DataURI) Split() (mediaType, payload string, err error) {
	s := string(u)
	if !strings.HasPrefix(s, prefix) {
		return "", "", fmt.Errorf("imaging: %w: missing %q prefix", llm.ErrValidation, prefix)
	}
	rest := s[len(prefix):]
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", "", fmt.Errorf("imaging: %w: no payload separator", llm.ErrValidation)
	}
	mediaType, enc, ok := strings.Cut(meta, ";")
	if !ok || enc != "base64" || mediaType == "" {
		return "", "", fmt.Errorf("imaging: %w: want data:<mime>;base64, got %q", llm.ErrValidation, prefix+meta)
	}
	return mediaType, payload, nil
}

// Decode returns the original image bytes and their media type.
// Round-trips byte-identically with Encode.
func (u DataURI) Decode() ([]byte, string, error) {
	mediaType, payload, err := u.Split()
	if err != nil {
		return nil, "", err
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("imaging: %w: undecodable payload: %v", llm.ErrValidation, err)
	}
	if len(data) > MaxImageBytes {
		return nil, "", fmt.Errorf("imaging: %w: image is %d bytes, limit %d", llm.ErrValidation, len(data), MaxImageBytes)
	}
	return data, mediaType, nil
}

// String implements fmt.Stringer.
func (u DataURI) String() string { return string(u) }
