package notifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nukuldhake/Meal-Mate/internal/domain"
	"github.com/nukuldhake/Meal-Mate/pkg/logger"
)

type recordedMessage struct {
	topic   string
	key     string
	value   interface{}
	headers map[string]string
}

type fakeProducer struct {
	messages []recordedMessage
	err      error
}

func (p *fakeProducer) ProduceJSON(ctx context.Context, topic, key string, value interface{}, headers map[string]string) error {
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, recordedMessage{topic, key, value, headers})
	return nil
}

func testEvent() *domain.PasswordResetRequested {
	return &domain.PasswordResetRequested{
		EventID:     "evt-1",
		UserID:      42,
		Email:       "cook@example.com",
		Username:    "cook",
		Token:       "signed-token",
		ExpiresAt:   time.Date(2025, 3, 1, 12, 15, 0, 0, time.UTC),
		RequestedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestKafkaNotifier_Publishes(t *testing.T) {
	producer := &fakeProducer{}
	n := NewKafkaNotifier(producer, "auth.password-reset")

	require.NoError(t, n.NotifyPasswordReset(context.Background(), testEvent()))
	require.Len(t, producer.messages, 1)

	msg := producer.messages[0]
	assert.Equal(t, "auth.password-reset", msg.topic)
	assert.Equal(t, "42", msg.key)
	assert.Equal(t, EventTypePasswordResetRequested, msg.headers["event_type"])
	assert.Equal(t, "evt-1", msg.headers["event_id"])
	assert.Equal(t, testEvent(), msg.value)
}

func TestKafkaNotifier_PropagatesErrors(t *testing.T) {
	errBroker := errors.New("broker down")
	n := NewKafkaNotifier(&fakeProducer{err: errBroker}, "topic")

	assert.ErrorIs(t, n.NotifyPasswordReset(context.Background(), testEvent()), errBroker)
}

func TestLogNotifier(t *testing.T) {
	n := NewLogNotifier(logger.NewNop())
	assert.NoError(t, n.NotifyPasswordReset(context.Background(), testEvent()))
}
