// Package file stores one JSON document per user book on a filesystem.
package file

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/afero"

	"github.com/zeppelin-cash/internal/data/snapshot"
	"github.com/zeppelin-cash/internal/domain/book"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type document struct {
	Version int64               `json:"version"`
	Book    jsoniter.RawMessage `json:"book"`
}

// BookRepository implements book.Repository with a file per user under dir. It
// serializes access within one process only.
type BookRepository struct {
	mu     sync.Mutex
	fs     afero.Fs
	dir    string
	logger *slog.Logger
}

var _ book.Repository = (*BookRepository)(nil)

// NewBookRepository creates dir on fs if needed.
func NewBookRepository(logger *slog.Logger, fs afero.Fs, dir string) (*BookRepository, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create book directory %s: %w", dir, err)
	}
	return &BookRepository{fs: fs, dir: dir, logger: logger}, nil
}

func (r *BookRepository) path(userID string) string {
	return filepath.Join(r.dir, url.PathEscape(userID)+".json")
}

func (r *BookRepository) read(userID string) (document, error) {
	raw, err := afero.ReadFile(r.fs, r.path(userID))
	if err != nil {
		if os.IsNotExist(err) {
			return document{}, book.ErrBookNotFound{UserID: userID}
		}
		return document{}, fmt.Errorf("failed to read book of user %s: %w", userID, err)
	}
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return document{}, fmt.Errorf("%w: %w", snapshot.ErrDecodingSnapshotFailed, err)
	}
	return doc, nil
}

// write replaces the user's file through a rename so readers never see a partial document.
func (r *BookRepository) write(userID string, b *book.Book, version int64) error {
	data, err := snapshot.Encode(b)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(document{Version: version, Book: data})
	if err != nil {
		return fmt.Errorf("failed to encode book of user %s: %w", userID, err)
	}

	target := r.path(userID)
	tmp := target + ".tmp"
	if err := afero.WriteFile(r.fs, tmp, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write book of user %s: %w", userID, err)
	}
	if err := r.fs.Rename(tmp, target); err != nil {
		_ = r.fs.Remove(tmp)
		return fmt.Errorf("failed to replace book of user %s: %w", userID, err)
	}
	return nil
}

func (r *BookRepository) Book(_ context.Context, userID string) (*book.Book, int64, error) {
	r.mu.Lock()
	doc, err := r.read(userID)
	r.mu.Unlock()
	if err != nil {
		return nil, 0, err
	}

	b, err := snapshot.Decode(doc.Book)
	if err != nil {
		r.logger.Error("Failed to decode stored book", "user_id", userID, "error", err)
		return nil, 0, err
	}
	return b, doc.Version, nil
}

func (r *BookRepository) Create(_ context.Context, userID string, b *book.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	exists, err := afero.Exists(r.fs, r.path(userID))
	if err != nil {
		return fmt.Errorf("failed to check book of user %s: %w", userID, err)
	}
	if exists {
		return book.ErrBookExists{UserID: userID}
	}
	if err := r.write(userID, b, 1); err != nil {
		return err
	}
	r.logger.Info("Book created", "user_id", userID, "path", r.path(userID))
	return nil
}

func (r *BookRepository) Save(_ context.Context, userID string, b *book.Book, version int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.read(userID)
	if err != nil {
		return err
	}
	if doc.Version != version {
		return book.ErrConcurrentModification{UserID: userID}
	}
	return r.write(userID, b, version+1)
}
