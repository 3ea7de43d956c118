package outbox_poller

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/zeppelin-cash/internal/domain/archive"
	"github.com/zeppelin-cash/internal/domain/outbox"
	"github.com/zeppelin-cash/internal/domain/shared"
)

func TestArchivePublisher_PublishToArchive(t *testing.T) {
	archivedAt := time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		message     func(t *testing.T) *outbox.Message
		setupMocks  func(o *MockOutboxRepo, a *MockArchiveRepo, msg *outbox.Message)
		expectedErr error
		anyErr      bool
	}{
		{
			name:    "archives new record",
			message: func(t *testing.T) *outbox.Message { return sampleMessage(t, 1, 0) },
			setupMocks: func(o *MockOutboxRepo, a *MockArchiveRepo, msg *outbox.Message) {
				a.On("GetByTransactionID", mock.Anything, msg.TransactionID).Return(nil, archive.ErrRecordNotFound{TransactionID: msg.TransactionID}).Once()
				a.On("Create", mock.Anything, mock.MatchedBy(func(r *archive.Record) bool {
					return r.TransactionID == msg.TransactionID && r.UserID == "alice" &&
						r.ArchivedAt != nil && r.ArchivedAt.Equal(archivedAt)
				})).Return(nil).Once()
				o.On("UpdateStatus", mock.Anything, int64(1), shared.OutboxStatusProcessed).Return(nil).Once()
			},
		},
		{
			name:    "already archived",
			message: func(t *testing.T) *outbox.Message { return sampleMessage(t, 2, 0) },
			setupMocks: func(o *MockOutboxRepo, a *MockArchiveRepo, msg *outbox.Message) {
				a.On("GetByTransactionID", mock.Anything, msg.TransactionID).Return(&archive.Record{}, nil).Once()
				o.On("UpdateStatus", mock.Anything, int64(2), shared.OutboxStatusProcessed).Return(nil).Once()
			},
		},
		{
			name:    "lost race on insert",
			message: func(t *testing.T) *outbox.Message { return sampleMessage(t, 3, 0) },
			setupMocks: func(o *MockOutboxRepo, a *MockArchiveRepo, msg *outbox.Message) {
				a.On("GetByTransactionID", mock.Anything, msg.TransactionID).Return(nil, archive.ErrRecordNotFound{}).Once()
				a.On("Create", mock.Anything, mock.Anything).Return(archive.ErrDuplicateRecord{TransactionID: msg.TransactionID}).Once()
				o.On("UpdateStatus", mock.Anything, int64(3), shared.OutboxStatusProcessed).Return(nil).Once()
			},
		},
		{
			name:    "archive down",
			message: func(t *testing.T) *outbox.Message { return sampleMessage(t, 4, 0) },
			setupMocks: func(o *MockOutboxRepo, a *MockArchiveRepo, msg *outbox.Message) {
				a.On("GetByTransactionID", mock.Anything, msg.TransactionID).Return(nil, errors.New("server selection timeout")).Once()
			},
			anyErr: true,
		},
		{
			name: "undecodable payload",
			message: func(t *testing.T) *outbox.Message {
				msg := sampleMessage(t, 5, 0)
				msg.Payload = []byte(`"not a record"`)
				return msg
			},
			setupMocks: func(o *MockOutboxRepo, a *MockArchiveRepo, msg *outbox.Message) {
				o.On("UpdateStatus", mock.Anything, int64(5), shared.OutboxStatusFailedToPublish).Return(nil).Once()
			},
			expectedErr: ErrUndecodablePayload,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outboxRepo := &MockOutboxRepo{}
			archiveRepo := &MockArchiveRepo{}
			msg := tt.message(t)
			tt.setupMocks(outboxRepo, archiveRepo, msg)

			publisher := NewArchivePublisher(outboxRepo, archiveRepo, slog.Default())
			publisher.now = func() time.Time { return archivedAt }

			err := publisher.PublishToArchive(context.Background(), msg)
			switch {
			case tt.expectedErr != nil:
				assert.ErrorIs(t, err, tt.expectedErr)
			case tt.anyErr:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
			outboxRepo.AssertExpectations(t)
			archiveRepo.AssertExpectations(t)
		})
	}
}
