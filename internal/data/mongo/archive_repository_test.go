package mongo

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/zeppelin-cash/internal/domain/archive"
)

func sampleRecord(userID string, at time.Time) *archive.Record {
	return &archive.Record{
		UserID:        userID,
		TransactionID: uuid.New(),
		Time:          at,
		Description:   "Buy inventory",
		Entries: []archive.Entry{
			{AccountID: "inventory", IsDebit: true, Amount: "300", Currency: "USD"},
			{AccountID: "cash", IsDebit: false, Amount: "300", Currency: "USD"},
		},
		CreatedAt: at,
	}
}

func toDoc(t *testing.T, record *archive.Record) bson.D {
	raw, err := bson.Marshal(record)
	require.NoError(t, err)
	var doc bson.D
	require.NoError(t, bson.Unmarshal(raw, &doc))
	return doc
}

func namespace(mt *mtest.T) string {
	return mt.DB.Name() + "." + ArchiveCollectionName
}

func TestArchiveRepository_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	at := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

	mt.Run("Success", func(mt *mtest.T) {
		repo := NewArchiveRepository(slog.Default(), mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		record := sampleRecord("user-1", at)
		err := repo.Create(context.Background(), record)

		require.NoError(t, err)
		require.NotNil(t, record.ArchivedAt)
	})

	mt.Run("Duplicate", func(mt *mtest.T) {
		repo := NewArchiveRepository(slog.Default(), mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		record := sampleRecord("user-1", at)
		err := repo.Create(context.Background(), record)

		assert.ErrorIs(t, err, archive.ErrDuplicateRecord{TransactionID: record.TransactionID})
	})

	mt.Run("DatabaseError", func(mt *mtest.T) {
		repo := NewArchiveRepository(slog.Default(), mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad value",
		}))

		err := repo.Create(context.Background(), sampleRecord("user-1", at))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to archive transaction")
		assert.NotErrorIs(t, err, archive.ErrDuplicateRecord{})
	})
}

func TestArchiveRepository_GetByTransactionID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	at := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

	mt.Run("Found", func(mt *mtest.T) {
		repo := NewArchiveRepository(slog.Default(), mt.DB)
		record := sampleRecord("user-1", at)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, toDoc(t, record)))

		got, err := repo.GetByTransactionID(context.Background(), record.TransactionID)

		require.NoError(t, err)
		assert.Equal(t, record.TransactionID, got.TransactionID)
		assert.Equal(t, "user-1", got.UserID)
		assert.Equal(t, record.Entries, got.Entries)
		assert.True(t, at.Equal(got.Time))
	})

	mt.Run("NotFound", func(mt *mtest.T) {
		repo := NewArchiveRepository(slog.Default(), mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		id := uuid.New()
		got, err := repo.GetByTransactionID(context.Background(), id)

		assert.Nil(t, got)
		assert.ErrorIs(t, err, archive.ErrRecordNotFound{TransactionID: id})
	})
}

func TestArchiveRepository_Queries(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	first := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	second := first.Add(24 * time.Hour)

	mt.Run("GetByUser", func(mt *mtest.T) {
		repo := NewArchiveRepository(slog.Default(), mt.DB)
		newer, older := sampleRecord("user-1", second), sampleRecord("user-1", first)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, toDoc(t, newer), toDoc(t, older)))

		records, err := repo.GetByUser(context.Background(), "user-1", 10, 0)

		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, newer.TransactionID, records[0].TransactionID)
		assert.Equal(t, older.TransactionID, records[1].TransactionID)
	})

	mt.Run("GetByTimeRangeEmpty", func(mt *mtest.T) {
		repo := NewArchiveRepository(slog.Default(), mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		records, err := repo.GetByTimeRange(context.Background(), "user-1", first, second)

		require.NoError(t, err)
		assert.Empty(t, records)
	})

	mt.Run("CountByUser", func(mt *mtest.T) {
		repo := NewArchiveRepository(slog.Default(), mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, bson.D{{Key: "n", Value: int32(3)}}))

		count, err := repo.CountByUser(context.Background(), "user-1")

		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	mt.Run("QueryError", func(mt *mtest.T) {
		repo := NewArchiveRepository(slog.Default(), mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "bad query"}))

		_, err := repo.GetByUser(context.Background(), "user-1", 10, 0)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to query archived transactions")
	})
}
