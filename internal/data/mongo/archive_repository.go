package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/zeppelin-cash/internal/domain/archive"
)

const (
	// ArchiveCollectionName is the name of the archived transaction collection in MongoDB
	ArchiveCollectionName = "archived_transactions"
)

// ArchiveRepository implements the archive.Repository interface for MongoDB
type ArchiveRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewArchiveRepository creates a new MongoDB archive repository
func NewArchiveRepository(logger *slog.Logger, db *mongo.Database) *ArchiveRepository {
	return &ArchiveRepository{
		db:     db,
		logger: logger,
	}
}

var _ archive.Repository = (*ArchiveRepository)(nil)

func (r *ArchiveRepository) collection() *mongo.Collection {
	return r.db.Collection(ArchiveCollectionName)
}

// EnsureIndexes creates the unique transaction index and the per-user time index.
func (r *ArchiveRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "transaction_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "time", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create archive indexes: %w", err)
	}
	return nil
}

// Create stores a new record. Returns ErrDuplicateRecord if the transaction was already archived.
func (r *ArchiveRepository) Create(ctx context.Context, record *archive.Record) error {
	archivedAt := time.Now().UTC()
	record.ArchivedAt = &archivedAt

	_, err := r.collection().InsertOne(ctx, record)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return archive.ErrDuplicateRecord{TransactionID: record.TransactionID}
		}
		r.logger.Error("Failed to archive transaction",
			"user_id", record.UserID,
			"transaction_id", record.TransactionID.String(),
			"error", err)
		return fmt.Errorf("failed to archive transaction: %w", err)
	}

	return nil
}

// GetByTransactionID retrieves a record by its transaction ID.
// Returns ErrRecordNotFound if the transaction was never archived.
func (r *ArchiveRepository) GetByTransactionID(ctx context.Context, transactionID uuid.UUID) (*archive.Record, error) {
	filter := bson.M{"transaction_id": transactionID}
	var record archive.Record
	err := r.collection().FindOne(ctx, filter).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, archive.ErrRecordNotFound{TransactionID: transactionID}
		}
		r.logger.Error("Failed to get archived transaction",
			"transaction_id", transactionID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get archived transaction: %w", err)
	}

	return &record, nil
}

// GetByUser retrieves a page of a user's records, newest transaction first.
func (r *ArchiveRepository) GetByUser(ctx context.Context, userID string, limit, offset int) ([]*archive.Record, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "time", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	return r.find(ctx, bson.M{"user_id": userID}, opts, "user_id", userID)
}

// CountByUser counts the archived transactions of a user
func (r *ArchiveRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	count, err := r.collection().CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		r.logger.Error("Failed to count archived transactions",
			"user_id", userID,
			"error", err)
		return 0, fmt.Errorf("failed to count archived transactions: %w", err)
	}

	return count, nil
}

// GetByTimeRange retrieves a user's records with startTime <= time <= endTime, oldest first.
func (r *ArchiveRepository) GetByTimeRange(ctx context.Context, userID string, startTime, endTime time.Time) ([]*archive.Record, error) {
	filter := bson.M{
		"user_id": userID,
		"time": bson.M{
			"$gte": startTime,
			"$lte": endTime,
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "time", Value: 1}})

	return r.find(ctx, filter, opts, "user_id", userID, "start_time", startTime, "end_time", endTime)
}

func (r *ArchiveRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions, logArgs ...any) ([]*archive.Record, error) {
	cursor, err := r.collection().Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to query archived transactions", append(logArgs, "error", err)...)
		return nil, fmt.Errorf("failed to query archived transactions: %w", err)
	}
	defer cursor.Close(ctx)

	records := []*archive.Record{}
	if err := cursor.All(ctx, &records); err != nil {
		r.logger.Error("Failed to decode archived transactions", append(logArgs, "error", err)...)
		return nil, fmt.Errorf("failed to decode archived transactions: %w", err)
	}

	return records, nil
}
