package mq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"agrosense.io/field-alerts-service/pkg/agro"
	"agrosense.io/field-alerts-service/pkg/common"
	"agrosense.io/field-alerts-service/pkg/models"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Consumer delivers reading events to the engine with at-least-once
// semantics: a message's offset is committed only after the engine's
// persistence transaction has committed. Unprocessable payloads are
// logged and committed anyway (the nack-without-requeue equivalent) so a
// poison message cannot loop forever.
type Consumer struct {
	cfg    ConsumerConfig
	reader *kafka.Reader
	engine agro.IEngine
}

type ConsumerConfig struct {
	Brokers []string
	Topic   string
	GroupID string
	Engine  agro.IEngine
}

func NewConsumer(cfg ConsumerConfig) (*Consumer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("at least one broker is required")
	}
	if cfg.Topic == "" {
		return nil, errors.New("topic is required")
	}
	if cfg.Engine == nil {
		return nil, errors.New("engine is required")
	}

	return &Consumer{cfg: cfg, reader: newReader(cfg), engine: cfg.Engine}, nil
}

func newReader(cfg ConsumerConfig) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.Topic,
		GroupID:  cfg.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}

// Run consumes until the context is cancelled. A transient failure
// returns the error with the offset uncommitted, so the caller can
// restart the consumer and the broker redelivers from the last commit.
func (c *Consumer) Run(ctx context.Context) error {
	logger := common.GetLoggerWith(common.LoggerNameConsumer)
	logger.Info("Reading consumer started")

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				logger.Info("Reading consumer stopped")
				return nil
			}
			return fmt.Errorf("fetch message: %w", err)
		}

		if err := c.handleMessage(ctx, msg.Value); err != nil {
			if errors.Is(err, agro.ErrInvalidEvent) {
				logger.Warn("Discarding unprocessable message",
					zap.Int64("offset", msg.Offset),
					zap.Error(err))
			} else {
				logger.Error("Processing failed, message will be redelivered",
					zap.Int64("offset", msg.Offset),
					zap.Error(err))
				return err
			}
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return fmt.Errorf("commit offset: %w", err)
		}
	}
}

func (c *Consumer) handleMessage(ctx context.Context, payload []byte) error {
	var evt models.SensorReadingReceivedEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		return fmt.Errorf("%w: %v", agro.ErrInvalidEvent, err)
	}
	return c.engine.ProcessReading(ctx, &evt)
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}

// RunLoop keeps the consumer alive across transient failures, restarting
// Run with a short backoff until the context is cancelled.
func (c *Consumer) RunLoop(ctx context.Context, backoff time.Duration) {
	logger := common.GetLoggerWith(common.LoggerNameConsumer)

	for {
		if err := c.Run(ctx); err != nil {
			logger.Error("Consumer run failed, restarting", zap.Error(err))
			// A group reader's fetch position lives in memory and has
			// already moved past the failed message. Restarting on the
			// same reader would skip it, so rejoin the group and resume
			// from the last committed offset instead.
			c.resetReader()
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
	}
}

func (c *Consumer) resetReader() {
	if err := c.reader.Close(); err != nil {
		common.GetLoggerWith(common.LoggerNameConsumer).
			Warn("Failed to close kafka reader", zap.Error(err))
	}
	c.reader = newReader(c.cfg)
}
