package blobstore

import (
	"context"
	"fmt"
	"log/slog"
)

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendDir    = "dir"
	BackendMemory = "memory"
)

// Open builds the named backend at path and wraps it in a Store.
func Open(ctx context.Context, backend, driver, path string, logger *slog.Logger) (*Store, error) {
	var (
		b   Backend
		err error
	)
	switch backend {
	case BackendSQLite, "":
		b, err = OpenSQLite(ctx, path, SQLiteOptions{Driver: driver, Logger: logger})
	case BackendDir:
		b, err = OpenDir(path)
	case BackendMemory:
		b = NewMemory()
	default:
		err = fmt.Errorf("unknown storage backend %q", backend)
	}
	if err != nil {
		return nil, err
	}
	return New(b, logger), nil
}
