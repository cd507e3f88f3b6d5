// Package notifier delivers password reset requests to whatever sends the
// actual emails.
package notifier

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/nukuldhake/Meal-Mate/internal/domain"
	"github.com/nukuldhake/Meal-Mate/pkg/logger"
)

// EventTypePasswordResetRequested is the event_type header of reset records
const EventTypePasswordResetRequested = "password_reset.requested"

// JSONProducer writes JSON records to a topic. *kafka.Producer satisfies it.
type JSONProducer interface {
	ProduceJSON(ctx context.Context, topic, key string, value interface{}, headers map[string]string) error
}

// KafkaNotifier publishes password reset events to a Kafka topic
type KafkaNotifier struct {
	producer JSONProducer
	topic    string
	log      *logger.Logger
}

// NewKafkaNotifier creates a KafkaNotifier writing to topic
func NewKafkaNotifier(producer JSONProducer, topic string) *KafkaNotifier {
	return &KafkaNotifier{
		producer: producer,
		topic:    topic,
		log:      logger.Get().Named("notifier"),
	}
}

// NotifyPasswordReset publishes event keyed by user id so one user's
// requests stay ordered within a partition.
func (n *KafkaNotifier) NotifyPasswordReset(ctx context.Context, event *domain.PasswordResetRequested) error {
	headers := map[string]string{
		"event_type": EventTypePasswordResetRequested,
		"event_id":   event.EventID,
	}
	if err := n.producer.ProduceJSON(ctx, n.topic, strconv.FormatInt(event.UserID, 10), event, headers); err != nil {
		return err
	}

	n.log.Info("password reset event published",
		zap.String("event_id", event.EventID),
		zap.Int64("user_id", event.UserID),
		zap.String("topic", n.topic),
	)
	return nil
}

// LogNotifier only logs reset requests. It is used when Kafka is disabled.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier creates a LogNotifier
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	if log == nil {
		log = logger.Get()
	}
	return &LogNotifier{log: log.Named("notifier")}
}

// NotifyPasswordReset logs the request without the token itself
func (n *LogNotifier) NotifyPasswordReset(ctx context.Context, event *domain.PasswordResetRequested) error {
	n.log.Info("password reset requested",
		zap.String("event_id", event.EventID),
		zap.Int64("user_id", event.UserID),
		zap.Time("expires_at", event.ExpiresAt),
	)
	return nil
}
