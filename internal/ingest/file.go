// ABOUTME: Builds File values from paths on disk.
// ABOUTME: Declared type comes from the extension, then content sniffing.

package ingest

import (
	"bytes"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

const sniffLen = 512

// Extensions the platform MIME table may lack.
var fallbackTypes = map[string]string{
	".doc":  MimeDOC,
	".docx": MimeDOCX,
	".pdf":  MimePDF,
}

// OpenFile reads the file at path and declares its content type.
func OpenFile(path string) (File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-specified file path is expected CLI behavior
	if err != nil {
		return File{}, goerr.Wrap(err, "failed to read file", goerr.V("path", path))
	}
	return File{
		Name:        filepath.Base(path),
		ContentType: DetectType(path, data),
		Reader:      bytes.NewReader(data),
	}, nil
}

// OpenFiles opens each path. Files that cannot be read come back as
// rejections instead of aborting the batch.
func OpenFiles(paths []string) ([]File, []Rejection) {
	var files []File
	var rejected []Rejection
	for _, p := range paths {
		f, err := OpenFile(p)
		if err != nil {
			rejected = append(rejected, Rejection{Name: filepath.Base(p), Err: err})
			continue
		}
		files = append(files, f)
	}
	return files, rejected
}

func DetectType(name string, data []byte) string {
	ext := strings.ToLower(filepath.Ext(name))
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	if t, ok := fallbackTypes[ext]; ok {
		return t
	}
	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	if len(head) > 0 {
		return http.DetectContentType(head)
	}
	return "application/octet-stream"
}

// NewFile wraps in-memory bytes, e.g. a base64 payload from an MCP call.
func NewFile(name, contentType string, data []byte) File {
	return File{Name: name, ContentType: contentType, Reader: bytes.NewReader(data)}
}
