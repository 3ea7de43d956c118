// Package memory keeps books in process memory, for tests and single-process deployments.
package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/zeppelin-cash/internal/data/snapshot"
	"github.com/zeppelin-cash/internal/domain/book"
)

type storedBook struct {
	data    []byte
	version int64
}

// BookRepository implements book.Repository over encoded snapshots held in a map
type BookRepository struct {
	mu     sync.RWMutex
	books  map[string]storedBook
	logger *slog.Logger
}

var _ book.Repository = (*BookRepository)(nil)

func NewBookRepository(logger *slog.Logger) *BookRepository {
	return &BookRepository{
		books:  make(map[string]storedBook),
		logger: logger,
	}
}

// Book decodes a fresh copy of the user's book.
func (r *BookRepository) Book(_ context.Context, userID string) (*book.Book, int64, error) {
	r.mu.RLock()
	stored, ok := r.books[userID]
	r.mu.RUnlock()
	if !ok {
		return nil, 0, book.ErrBookNotFound{UserID: userID}
	}

	b, err := snapshot.Decode(stored.data)
	if err != nil {
		r.logger.Error("Failed to decode stored book", "user_id", userID, "error", err)
		return nil, 0, err
	}
	return b, stored.version, nil
}

func (r *BookRepository) Create(_ context.Context, userID string, b *book.Book) error {
	data, err := snapshot.Encode(b)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.books[userID]; exists {
		return book.ErrBookExists{UserID: userID}
	}
	r.books[userID] = storedBook{data: data, version: 1}
	return nil
}

// Save replaces the stored book when version still matches, then bumps the version.
func (r *BookRepository) Save(_ context.Context, userID string, b *book.Book, version int64) error {
	data, err := snapshot.Encode(b)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.books[userID]
	if !ok {
		return book.ErrBookNotFound{UserID: userID}
	}
	if stored.version != version {
		return book.ErrConcurrentModification{UserID: userID}
	}
	r.books[userID] = storedBook{data: data, version: version + 1}
	return nil
}
