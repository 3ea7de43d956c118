package producers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/zeppelin-cash/internal/config"
	"github.com/zeppelin-cash/internal/domain/shared"
)

// TransactionRequestProducer publishes transaction requests keyed by user id. The hash
// balancer keeps every request of one user on one partition, so the processor sees them
// in submission order.
type TransactionRequestProducer struct {
	logger *slog.Logger
	writer KafkaWriter
	topic  string
}

var _ TransactionPublisher = (*TransactionRequestProducer)(nil)

// NewTransactionRequestProducer ensures the transaction topic exists and opens an async writer on it
func NewTransactionRequestProducer(_ context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*TransactionRequestProducer, error) {
	if cfg.TransactionTopic == "" {
		return nil, fmt.Errorf("kafka transaction topic is not configured")
	}

	if err := dialAndEnsureTopic(cfg.Brokers, cfg.TransactionTopic, cfg.NumPartitions, cfg.ReplicationFactor, logger); err != nil {
		return nil, fmt.Errorf("failed to ensure transaction topic %s exists: %w", cfg.TransactionTopic, err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        cfg.TransactionTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		WriteTimeout: cfg.MaxWait,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("Failed to write transaction requests", "topic", cfg.TransactionTopic, "error", err, "count", len(messages))
			} else {
				logger.Debug("Wrote transaction requests", "topic", cfg.TransactionTopic, "count", len(messages))
			}
		},
	}

	return newTransactionRequestProducer(logger, writer, cfg.TransactionTopic), nil
}

func newTransactionRequestProducer(logger *slog.Logger, writer KafkaWriter, topic string) *TransactionRequestProducer {
	return &TransactionRequestProducer{logger: logger, writer: writer, topic: topic}
}

func (p *TransactionRequestProducer) PublishTransaction(ctx context.Context, req *shared.TransactionRequest) error {
	value, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction request %s: %w", req.RequestID, err)
	}

	msg := kafka.Message{
		Key:   []byte(req.UserID),
		Value: value,
	}
	if req.CorrelationID != "" {
		msg.Headers = append(msg.Headers, kafka.Header{Key: CorrelationHeader, Value: []byte(req.CorrelationID)})
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish transaction request",
			"topic", p.topic,
			"user_id", req.UserID,
			"request_id", req.RequestID,
			"error", err,
		)
		return fmt.Errorf("failed to publish transaction request to %s: %w", p.topic, err)
	}

	p.logger.Debug("Published transaction request",
		"topic", p.topic,
		"user_id", req.UserID,
		"request_id", req.RequestID,
	)
	return nil
}

func (p *TransactionRequestProducer) Close() error {
	p.logger.Info("Closing transaction request producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}
