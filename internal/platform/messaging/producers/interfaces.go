package producers

import (
	"context"

	"github.com/segmentio/kafka-go"

	"github.com/zeppelin-cash/internal/domain/shared"
)

// CorrelationHeader carries the correlation id of the request that produced a message
const CorrelationHeader = "correlation-id"

// TransactionPublisher queues transaction requests for the processor
type TransactionPublisher interface {
	PublishTransaction(ctx context.Context, req *shared.TransactionRequest) error
	Close() error
}

// DeadLetterPublisher handles publishing messages to a Dead Letter Queue
type DeadLetterPublisher interface {
	PublishToDLQ(ctx context.Context, key string, originalMessageValue []byte, reason shared.FailureReason, cause error) error
	Close() error
}

// KafkaWriter wraps kafka.Writer methods for testing
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// topicAdmin is the part of kafka.Conn used to provision topics
type topicAdmin interface {
	ReadPartitions(topics ...string) ([]kafka.Partition, error)
	CreateTopics(topics ...kafka.TopicConfig) error
}
