// Package consumer runs the Kafka consumer groups that react to outbox events.
package consumer

import (
	"context"
	"errors"
	"time"

	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the subset of *kafkago.Reader the consumers need.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type HandleFunc func(ctx context.Context, msg kafkago.Message) error

const maxAttempts = 3

var retryBackoff = 2 * time.Second

// errPermanent marks failures that a retry cannot fix, such as a payload
// that does not decode.
var errPermanent = errors.New("permanent failure")

func permanent(err error) error {
	return errors.Join(errPermanent, err)
}

// Run fetches messages until ctx is cancelled. Each message is handled with
// up to maxAttempts tries and committed afterwards, even when every try
// failed, so one poison message cannot stall the partition.
func Run(ctx context.Context, reader MessageReader, name string, handle HandleFunc, logger *zap.Logger) {
	log := logger.Named("kafka.consumer." + name)
	log.Info("consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("consumer stopped")
				return
			}
			log.Error("fetch message failed", zap.Error(err))
			continue
		}

		msgCtx := contextutil.WithRequestID(ctx, header(msg, "request_id"))
		if err := handleWithRetry(msgCtx, msg, handle, log); err != nil {
			if ctx.Err() != nil {
				log.Info("consumer stopped")
				return
			}
			log.Error("message dropped",
				zap.String("topic", msg.Topic),
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
				zap.String("key", string(msg.Key)),
				zap.Error(err),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message failed", zap.Int64("offset", msg.Offset), zap.Error(err))
		}
	}
}

func handleWithRetry(ctx context.Context, msg kafkago.Message, handle HandleFunc, log *zap.Logger) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = handle(ctx, msg); err == nil || !retryable(err) {
			return err
		}
		log.Warn("handle message failed, retrying",
			zap.Int("attempt", attempt),
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryBackoff * time.Duration(attempt)):
		}
	}
	return err
}

// retryable treats client errors from the services as final.
func retryable(err error) bool {
	if errors.Is(err, errPermanent) {
		return false
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.HTTPStatus > 0 && appErr.HTTPStatus < 500 {
		return false
	}
	return true
}

func header(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
