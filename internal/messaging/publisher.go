package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"ticket-server/internal/models"
)

// Queue carrying user lifecycle events for downstream consumers
// (notifications, analytics).
const UserEventsQueue = "user_events"

// Event kinds published to UserEventsQueue.
const (
	EventUserRegistered = "user.registered"
	EventUserBanned     = "user.banned"
	EventUserUnbanned   = "user.unbanned"
)

// UserEvent is the message body published to UserEventsQueue.
type UserEvent struct {
	Kind      string    `json:"kind"`
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// UserEventPublisher publishes user lifecycle events.
type UserEventPublisher interface {
	PublishUserRegistered(ctx context.Context, user *models.User) error
	PublishBanStatusChanged(ctx context.Context, userID int64, banned bool) error
	Close() error
}

// --- RabbitMQ implementation ---

type rabbitMQUserEventPublisher struct {
	channel   *amqp.Channel
	queueName string
	logger    *zap.Logger
}

// Compile-time check to ensure rabbitMQUserEventPublisher implements UserEventPublisher
var _ UserEventPublisher = (*rabbitMQUserEventPublisher)(nil)

// NewRabbitMQUserEventPublisher opens a channel on the given connection and
// declares the user events queue. Queue parameters must match any consumer
// (durable=true).
func NewRabbitMQUserEventPublisher(conn *amqp.Connection, logger *zap.Logger) (UserEventPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("user event publisher: failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		UserEventsQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("user event publisher: failed to declare queue %q: %w", UserEventsQueue, err)
	}

	return &rabbitMQUserEventPublisher{
		channel:   ch,
		queueName: UserEventsQueue,
		logger:    logger.Named("UserEventPublisher"),
	}, nil
}

func (p *rabbitMQUserEventPublisher) PublishUserRegistered(ctx context.Context, user *models.User) error {
	return p.publish(ctx, UserEvent{
		Kind:      EventUserRegistered,
		UserID:    user.ID,
		Email:     user.Email,
		Timestamp: time.Now().UTC(),
	})
}

func (p *rabbitMQUserEventPublisher) PublishBanStatusChanged(ctx context.Context, userID int64, banned bool) error {
	kind := EventUserUnbanned
	if banned {
		kind = EventUserBanned
	}
	return p.publish(ctx, UserEvent{
		Kind:      kind,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
	})
}

func (p *rabbitMQUserEventPublisher) publish(ctx context.Context, event UserEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("user event publisher: failed to marshal event: %w", err)
	}

	err = p.channel.PublishWithContext(ctx,
		"",          // exchange
		p.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.Timestamp,
			Body:         body,
		},
	)
	if err != nil {
		p.logger.Error("Failed to publish user event", zap.Error(err), zap.String("kind", event.Kind), zap.Int64("userID", event.UserID))
		return fmt.Errorf("user event publisher: failed to publish: %w", err)
	}

	p.logger.Debug("User event published", zap.String("kind", event.Kind), zap.Int64("userID", event.UserID))
	return nil
}

func (p *rabbitMQUserEventPublisher) Close() error {
	return p.channel.Close()
}

// --- No-op implementation ---

// NopPublisher is used when RabbitMQ is not configured; events are dropped.
type NopPublisher struct{}

var _ UserEventPublisher = (*NopPublisher)(nil)

func (NopPublisher) PublishUserRegistered(context.Context, *models.User) error { return nil }
func (NopPublisher) PublishBanStatusChanged(context.Context, int64, bool) error {
	return nil
}
func (NopPublisher) Close() error { return nil }
