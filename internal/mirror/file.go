// ABOUTME: File slot storing each key as <dir>/<key>.json.
// ABOUTME: Writes go through a temp file and rename so readers never see a torn value.

package mirror

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

type FileSlot struct {
	dir string
}

func NewFileSlot(dir string) *FileSlot {
	return &FileSlot{dir: dir}
}

func (s *FileSlot) path(key string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(s.dir, safe+".json")
}

func (s *FileSlot) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read slot file", goerr.V("path", s.path(key)))
	}
	return data, nil
}

func (s *FileSlot) Put(_ context.Context, key string, value []byte) error {
	if err := os.MkdirAll(s.dir, 0750); err != nil {
		return goerr.Wrap(err, "failed to create data dir", goerr.V("dir", s.dir))
	}

	tmp, err := os.CreateTemp(s.dir, ".journl-*.tmp")
	if err != nil {
		return goerr.Wrap(err, "failed to create temp file", goerr.V("dir", s.dir))
	}
	defer func() {
		_ = os.Remove(tmp.Name()) // no-op after a successful rename
	}()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return goerr.Wrap(err, "failed to write temp file")
	}
	if err := tmp.Close(); err != nil {
		return goerr.Wrap(err, "failed to close temp file")
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		return goerr.Wrap(err, "failed to replace slot file", goerr.V("path", s.path(key)))
	}
	return nil
}

func (s *FileSlot) Delete(_ context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return goerr.Wrap(err, "failed to remove slot file", goerr.V("path", s.path(key)))
	}
	return nil
}

func NewFile(dir, key string) *JSONMirror {
	return New(NewFileSlot(dir), key)
}
