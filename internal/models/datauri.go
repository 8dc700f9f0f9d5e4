// ABOUTME: Data URI encoding for inline attachment bytes.
// ABOUTME: Produces and parses data:<mime>;base64,<payload> strings.

package models

import (
	"encoding/base64"
	"errors"
	"strings"
)

const defaultMimeType = "application/octet-stream"

var ErrInvalidDataURI = errors.New("invalid data URI")

func EncodeDataURI(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = defaultMimeType
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI returns the media type and raw bytes of a base64 data URI.
func DecodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}
	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}
	if mimeType == "" {
		mimeType = defaultMimeType
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, errors.Join(ErrInvalidDataURI, err)
	}
	return mimeType, data, nil
}

// Bytes returns the raw content behind a file attachment. Links have none.
func Bytes(a Attachment) (string, []byte, error) {
	return Visit(a, Visitor[dataResult]{
		Image:    func(i *Image) dataResult { return decodeResult(i.DataURI) },
		Document: func(d *Document) dataResult { return decodeResult(d.DataURI) },
		Link:     func(*Link) dataResult { return dataResult{err: ErrNoContent} },
	}).unpack()
}

var ErrNoContent = errors.New("attachment has no inline content")

type dataResult struct {
	mimeType string
	data     []byte
	err      error
}

func decodeResult(uri string) dataResult {
	m, d, err := DecodeDataURI(uri)
	return dataResult{mimeType: m, data: d, err: err}
}

func (r dataResult) unpack() (string, []byte, error) {
	return r.mimeType, r.data, r.err
}
