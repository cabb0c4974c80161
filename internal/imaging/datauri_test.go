package imaging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/musekit/muse/internal/llm"
)

// jpegHeader is enough of a JPEG for content sniffing to identify it.
var jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	data := append([]byte{}, jpegHeader...)
	data = append(data, []byte("hedgehog pixels")...)

	uri, err := Encode(data, "image/jpeg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(uri.String(), "data:image/jpeg;base64,") {
		t.Fatalf("unexpected prefix: %q", uri.String()[:40])
	}

	decoded, mediaType, err := uri.Decode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mediaType != "image/jpeg" {
		t.Errorf("media type = %q, want image/jpeg", mediaType)
	}
	if !bytes.Equal(decoded, data) {
		t.Error("round trip is not byte-identical")
	}
}

func TestEncode_SniffsMediaType(t *testing.T) {
	uri, err := Encode(jpegHeader, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mediaType, _, err := uri.Split()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mediaType != "image/jpeg" {
		t.Errorf("sniffed media type = %q, want image/jpeg", mediaType)
	}
}

func TestEncode_EmptyData(t *testing.T) {
	_, err := Encode(nil, "image/png")
	if !errors.Is(err, llm.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestEncode_Oversized(t *testing.T) {
	_, err := Encode(make([]byte, MaxImageBytes+1), "image/png")
	if !errors.Is(err, llm.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestEncodeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hedgehog.jpg")
	if err := os.WriteFile(path, jpegHeader, 0o644); err != nil {
		t.Fatal(err)
	}

	uri, err := EncodeFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decoded, mediaType, err := uri.Decode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mediaType != "image/jpeg" {
		t.Errorf("media type = %q, want image/jpeg", mediaType)
	}
	if !bytes.Equal(decoded, jpegHeader) {
		t.Error("decoded bytes differ from file contents")
	}
}

func TestEncodeFile_Missing(t *testing.T) {
	if _, err := EncodeFile(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDecode_Malformed(t *testing.T) {
	cases := []struct {
		name string
		uri  DataURI
	}{
		{"no_prefix", "image/jpeg;base64,AAAA"},
		{"no_separator", "data:image/jpeg;base64"},
		{"not_base64_encoding", "data:image/jpeg;hex,FFD8"},
		{"missing_media_type", "data:;base64,AAAA"},
		{"undecodable_payload", "data:image/jpeg;base64,!!!not-base64!!!"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := tc.uri.Decode()
			if !errors.Is(err, llm.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}
