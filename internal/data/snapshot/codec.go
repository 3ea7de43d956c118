// Package snapshot encodes whole books for the book stores.
package snapshot

import (
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/zeppelin-cash/internal/domain/book"
)

var (
	// ErrInvalidSnapshotJSON is returned when stored data is not valid JSON.
	ErrInvalidSnapshotJSON = errors.New("snapshot json is not valid")

	// ErrDecodingSnapshotFailed is returned when valid JSON does not describe a consistent book.
	ErrDecodingSnapshotFailed = errors.New("decoding snapshot failed")
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Encode serializes the full state of b.
func Encode(b *book.Book) ([]byte, error) {
	data, err := json.Marshal(b.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot failed: %w", err)
	}
	return data, nil
}

// Decode rebuilds a book from data produced by Encode. The result shares nothing with data.
func Decode(data []byte) (*book.Book, error) {
	if !jsoniter.ConfigFastest.Valid(data) {
		return nil, ErrInvalidSnapshotJSON
	}
	var s book.Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodingSnapshotFailed, err)
	}
	b, err := book.FromSnapshot(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodingSnapshotFailed, err)
	}
	return b, nil
}

// PushedCount reads how many journal transactions a snapshot has propagated, without
// rebuilding the book.
func PushedCount(data []byte) int {
	return json.Get(data, "pushed").ToInt()
}
