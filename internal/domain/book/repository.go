package book

import "context"

// Repository persists whole books, one per user. Every book it returns is an independent
// copy: changes reach the store only through Save.
type Repository interface {
	// Book returns the user's book and the version it was stored at.
	Book(ctx context.Context, userID string) (*Book, int64, error)
	Create(ctx context.Context, userID string, b *Book) error
	// Save replaces the stored book if it is still at version.
	Save(ctx context.Context, userID string, b *Book, version int64) error
}

// ErrBookNotFound indicates the user has no book
type ErrBookNotFound struct {
	UserID string
}

func (e ErrBookNotFound) Error() string {
	return "book not found for user: " + e.UserID
}

// Is implements the errors.Is interface for ErrBookNotFound
func (e ErrBookNotFound) Is(target error) bool {
	t, ok := target.(ErrBookNotFound)
	if !ok {
		return false
	}
	return t.UserID == "" || e.UserID == t.UserID
}

// ErrBookExists indicates the user already has a book
type ErrBookExists struct {
	UserID string
}

func (e ErrBookExists) Error() string {
	return "book already exists for user: " + e.UserID
}

// Is implements the errors.Is interface for ErrBookExists
func (e ErrBookExists) Is(target error) bool {
	t, ok := target.(ErrBookExists)
	if !ok {
		return false
	}
	return t.UserID == "" || e.UserID == t.UserID
}

// ErrConcurrentModification indicates optimistic lock failure
type ErrConcurrentModification struct {
	UserID string
}

func (e ErrConcurrentModification) Error() string {
	return "concurrent modification detected for book of user: " + e.UserID
}

// Is implements the errors.Is interface for ErrConcurrentModification
func (e ErrConcurrentModification) Is(target error) bool {
	t, ok := target.(ErrConcurrentModification)
	if !ok {
		return false
	}
	return t.UserID == "" || e.UserID == t.UserID
}
