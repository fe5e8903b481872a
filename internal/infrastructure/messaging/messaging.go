package messaging

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"amat_hosting/internal/config"
)

// Client is the pluggable publishing abstraction.
type Client interface {
	Publish(ctx context.Context, key []byte, value []byte) error
	Topic() string
	Close() error
}

// noopClient is used when messaging is disabled.
type noopClient struct {
	topic string
}

func (n noopClient) Publish(context.Context, []byte, []byte) error { return nil }
func (n noopClient) Topic() string                                 { return n.topic }
func (n noopClient) Close() error                                  { return nil }

// kafkaClient implements the Client via kafka-go.
type kafkaClient struct {
	writer *kafka.Writer
	topic  string
	logger *zap.Logger
}

func (k *kafkaClient) Publish(ctx context.Context, key []byte, value []byte) error {
	return k.writer.WriteMessages(ctx, kafka.Message{Key: key, Value: value})
}

func (k *kafkaClient) Topic() string { return k.topic }

func (k *kafkaClient) Close() error {
	k.logger.Info("closing kafka client")
	return k.writer.Close()
}

// NewClient builds a messaging client based on configuration.
func NewClient(cfg config.Messaging, logger *zap.Logger) (Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch cfg.Driver {
	case config.MessagingDriverNoop, "":
		logger.Info("messaging disabled; using noop client")
		return noopClient{topic: cfg.Topic}, nil
	case config.MessagingDriverKafka:
		writer := &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
			Transport:    &kafka.Transport{ClientID: cfg.ClientID},
			Logger:       kafkaLogger{logger: logger},
			ErrorLogger:  kafkaLogger{logger: logger},
		}
		logger.Info("kafka publisher configured", zap.Strings("brokers", cfg.Brokers), zap.String("topic", cfg.Topic))
		return &kafkaClient{writer: writer, topic: cfg.Topic, logger: logger}, nil
	default:
		return nil, fmt.Errorf("unsupported messaging driver: %s", cfg.Driver)
	}
}

type kafkaLogger struct {
	logger *zap.Logger
}

func (k kafkaLogger) Printf(msg string, args ...interface{}) {
	k.logger.Sugar().Debugf(msg, args...)
}
