package consumers

import (
	"context"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/zeppelin-cash/internal/config"
	"github.com/zeppelin-cash/internal/logger"
)

// CorrelationHeader matches the header written by the transaction request producer
const CorrelationHeader = "correlation-id"

type MessageHandler func(ctx context.Context, key []byte, value []byte) error

// Consumer defines the message queue consumer interface
type Consumer interface {
	Subscribe(ctx context.Context, handler MessageHandler) error
	Close() error
}

// messageReader is the part of kafka.Reader the consumer loop needs
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaConsumer implements Consumer using Kafka
type KafkaConsumer struct {
	reader       messageReader
	logger       *slog.Logger
	topic        string
	groupID      string
	fetchBackoff time.Duration
}

func NewKafkaConsumer(_ context.Context, logger *slog.Logger, cfg *config.KafkaConfig) *KafkaConsumer {
	startOffset := kafka.FirstOffset
	if cfg.StartOffset == kafka.LastOffset {
		startOffset = kafka.LastOffset
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     []string{cfg.Brokers},
		Topic:       cfg.TransactionTopic,
		GroupID:     cfg.ConsumerGroup,
		MinBytes:    cfg.MinBytes,
		MaxBytes:    cfg.MaxBytes,
		MaxWait:     cfg.MaxWait,
		StartOffset: startOffset,
	})
	return newKafkaConsumer(logger, reader, cfg.TransactionTopic, cfg.ConsumerGroup)
}

func newKafkaConsumer(logger *slog.Logger, reader messageReader, topic, groupID string) *KafkaConsumer {
	return &KafkaConsumer{
		reader:       reader,
		logger:       logger,
		topic:        topic,
		groupID:      groupID,
		fetchBackoff: time.Second,
	}
}

// Subscribe starts a goroutine that hands every message of the configured topic to
// handler. Offsets are committed only for messages the handler accepted. The goroutine
// exits when ctx is canceled.
func (c *KafkaConsumer) Subscribe(ctx context.Context, handler MessageHandler) error {
	c.logger.Info("Subscribed to Kafka topic",
		"topic", c.topic,
		"group_id", c.groupID,
	)

	go c.run(ctx, handler)
	return nil
}

func (c *KafkaConsumer) run(ctx context.Context, handler MessageHandler) {
	for {
		if ctx.Err() != nil {
			c.logger.Info("Context canceled, stopping consumer", "topic", c.topic, "group_id", c.groupID)
			return
		}

		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			c.logger.Error("Failed to fetch message from Kafka",
				"topic", c.topic,
				"group_id", c.groupID,
				"error", err,
			)
			time.Sleep(c.fetchBackoff)
			continue
		}

		c.handle(ctx, msg, handler)
	}
}

func (c *KafkaConsumer) handle(ctx context.Context, msg kafka.Message, handler MessageHandler) {
	msgCtx := ctx
	for _, h := range msg.Headers {
		if h.Key == CorrelationHeader {
			msgCtx = logger.WithCorrelationID(ctx, string(h.Value))
			break
		}
	}
	log := logger.FromContext(msgCtx, c.logger).With(
		"topic", msg.Topic,
		"partition", msg.Partition,
		"offset", msg.Offset,
		"key", string(msg.Key),
	)
	log.Debug("Received message from Kafka")

	if err := handler(msgCtx, msg.Key, msg.Value); err != nil {
		// Uncommitted messages are redelivered after a rebalance or restart
		log.Error("Failed to process message, will not commit offset", "error", err)
		return
	}

	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		log.Error("Failed to commit message after successful processing", "error", err)
		return
	}
	log.Debug("Message committed successfully")
}

func (c *KafkaConsumer) Close() error {
	if c.reader != nil {
		return c.reader.Close()
	}
	return nil
}
