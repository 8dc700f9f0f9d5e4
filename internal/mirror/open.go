// ABOUTME: Builds the configured mirror backend.
// ABOUTME: Maps config.Backend to a slot and returns a closer for its resources.

package mirror

import (
	"io"
	"log/slog"

	"github.com/harper/journl/internal/charm"
	"github.com/harper/journl/internal/config"
	"github.com/harper/journl/internal/db"
	"github.com/harper/journl/internal/logging"
	"github.com/m-mizutani/goerr/v2"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open returns the mirror selected by cfg and a closer for its resources.
func Open(cfg *config.Config) (*JSONMirror, io.Closer, error) {
	switch cfg.Backend {
	case config.BackendFile:
		return NewFile(cfg.ResolvedDataPath(), cfg.StorageKey), nopCloser{}, nil

	case config.BackendSQLite:
		conn, err := db.Open(cfg.ResolvedDataPath())
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to open sqlite backend", goerr.V("path", cfg.ResolvedDataPath()))
		}
		return New(NewSQLiteSlot(conn), cfg.StorageKey), conn, nil

	case config.BackendCharm:
		client := charm.NewClient(charm.WithDBName(cfg.CharmDB))
		logging.Default().Debug("using local charm kv", slog.String("db", client.DBName()))
		return New(NewCharmSlot(client), cfg.StorageKey), nopCloser{}, nil

	default:
		return nil, nil, goerr.New("unknown backend", goerr.V("backend", cfg.Backend))
	}
}
