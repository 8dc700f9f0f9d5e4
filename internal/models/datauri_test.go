// ABOUTME: Tests for data URI encoding.

package models

import (
	"bytes"
	"errors"
	"testing"
)

func TestDataURIRoundTrip(t *testing.T) {
	data := []byte("hello, journal")
	uri := EncodeDataURI("text/plain", data)

	if uri != "data:text/plain;base64,aGVsbG8sIGpvdXJuYWw=" {
		t.Errorf("unexpected data URI %q", uri)
	}

	mimeType, got, err := DecodeDataURI(uri)
	if err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if mimeType != "text/plain" || !bytes.Equal(got, data) {
		t.Errorf("round trip mismatch: %q %q", mimeType, got)
	}
}

func TestEncodeDataURIDefaultsMimeType(t *testing.T) {
	uri := EncodeDataURI("", []byte{1})
	mimeType, _, err := DecodeDataURI(uri)
	if err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if mimeType != "application/octet-stream" {
		t.Errorf("expected octet-stream default, got %q", mimeType)
	}
}

func TestDecodeDataURIInvalid(t *testing.T) {
	cases := []string{
		"",
		"https://example.com/a.png",
		"data:image/png,rawtext",
		"data:image/png;base64",
		"data:image/png;base64,***",
	}
	for _, c := range cases {
		if _, _, err := DecodeDataURI(c); !errors.Is(err, ErrInvalidDataURI) {
			t.Errorf("%q: expected ErrInvalidDataURI, got %v", c, err)
		}
	}
}
