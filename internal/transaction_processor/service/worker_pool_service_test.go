package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zeppelin-cash/internal/domain/shared"
)

// MockProcessingService mocks the ProcessingService interface
type MockProcessingService struct {
	mock.Mock
}

func (m *MockProcessingService) ProcessTransaction(ctx context.Context, request *shared.TransactionRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func TestWorkerPoolProcessingService_ProcessTransaction(t *testing.T) {
	logger := slog.Default()
	request := &shared.TransactionRequest{
		RequestID:     uuid.New(),
		UserID:        "alice",
		CorrelationID: "corr1",
	}

	tests := []struct {
		name          string
		setupMocks    func(m *MockProcessingService)
		expectedError error
	}{
		{
			name: "successful processing",
			setupMocks: func(m *MockProcessingService) {
				m.On("ProcessTransaction", mock.Anything, request).Return(nil).Once()
			},
		},
		{
			name: "processing error",
			setupMocks: func(m *MockProcessingService) {
				m.On("ProcessTransaction", mock.Anything, request).Return(errors.New("processing error")).Once()
			},
			expectedError: errors.New("processing error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockBaseService := &MockProcessingService{}
			workerPoolService, err := NewWorkerPoolProcessingService(mockBaseService, WorkerPoolConfig{Size: 2}, logger)
			require.NoError(t, err)
			defer workerPoolService.Shutdown()

			tt.setupMocks(mockBaseService)

			err = workerPoolService.ProcessTransaction(context.Background(), request)

			if tt.expectedError != nil {
				assert.EqualError(t, err, tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
			}
			mockBaseService.AssertExpectations(t)
		})
	}
}

func TestWorkerPoolProcessingService_CanceledWhileWaiting(t *testing.T) {
	release := make(chan struct{})
	mockBaseService := &MockProcessingService{}
	mockBaseService.On("ProcessTransaction", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		<-release
	}).Return(nil)

	workerPoolService, err := NewWorkerPoolProcessingService(mockBaseService, WorkerPoolConfig{Size: 1}, slog.Default())
	require.NoError(t, err)
	defer workerPoolService.Shutdown()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err = workerPoolService.ProcessTransaction(ctx, &shared.TransactionRequest{RequestID: uuid.New(), UserID: "alice"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWorkerPoolProcessingService_Concurrency(t *testing.T) {
	mockBaseService := &MockProcessingService{}
	workerPoolService, err := NewWorkerPoolProcessingService(mockBaseService, WorkerPoolConfig{Size: 5}, slog.Default())
	require.NoError(t, err)
	defer workerPoolService.Shutdown()

	var counter, inFlight, peak int32
	mockBaseService.On("ProcessTransaction", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		atomic.AddInt32(&counter, 1)
	}).Return(nil)

	const numRequests = 20
	var wg sync.WaitGroup
	wg.Add(numRequests)
	for i := 0; i < numRequests; i++ {
		go func() {
			defer wg.Done()
			err := workerPoolService.ProcessTransaction(context.Background(), &shared.TransactionRequest{
				RequestID: uuid.New(),
				UserID:    "alice",
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(numRequests), atomic.LoadInt32(&counter))
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(5))
	assert.Equal(t, 5, workerPoolService.Capacity())
}
