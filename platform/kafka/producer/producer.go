package producer

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"

	"github.com/you-humble/course-storefront/platform/logger"
)

type Logger interface {
	Info(ctx context.Context, msg string, fields ...logger.Field)
	Error(ctx context.Context, msg string, fields ...logger.Field)
}

type Option func(p *producer)

// WithHeader stamps every record with a static header.
func WithHeader(key, value string) Option {
	return func(p *producer) {
		p.headers = append(p.headers, sarama.RecordHeader{Key: []byte(key), Value: []byte(value)})
	}
}

type producer struct {
	syncProducer sarama.SyncProducer
	topic        string
	headers      []sarama.RecordHeader
	logger       Logger
}

func NewProducer(syncProducer sarama.SyncProducer, topic string, logger Logger, opts ...Option) *producer {
	p := &producer{
		syncProducer: syncProducer,
		topic:        topic,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Send blocks until the broker acknowledges the record. The payload is not logged.
func (p *producer) Send(ctx context.Context, key, value []byte) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("send to %s: %w", p.topic, err)
	}

	msg := &sarama.ProducerMessage{
		Topic:   p.topic,
		Key:     sarama.ByteEncoder(key),
		Value:   sarama.ByteEncoder(value),
		Headers: p.headers,
	}

	partition, offset, err := p.syncProducer.SendMessage(msg)
	if err != nil {
		p.logger.Error(ctx, "failed to send message",
			logger.String("topic", p.topic),
			logger.String("key", string(key)),
			logger.ErrorF(err),
		)
		return fmt.Errorf("send to %s: %w", p.topic, err)
	}

	p.logger.Info(ctx, "message sent",
		logger.String("topic", p.topic),
		logger.Int32("partition", partition),
		logger.Int64("offset", offset),
		logger.String("key", string(key)),
		logger.Int("bytes", len(value)),
	)

	return nil
}
