package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"save-serve/internal/domain/notification"

	amqp "github.com/rabbitmq/amqp091-go"
)

const dialTimeout = 10 * time.Second

// Message is the body published for every event.
type Message struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	RecipientID string         `json:"recipient_id"`
	Payload     map[string]any `json:"payload,omitempty"`
	OccurredAt  time.Time      `json:"occurred_at"`
}

func NewMessage(ev notification.Event) Message {
	return Message{
		ID:          ev.ID.String(),
		Type:        string(ev.Type),
		RecipientID: ev.RecipientID.String(),
		Payload:     ev.Payload,
		OccurredAt:  ev.OccurredAt,
	}
}

// AMQPNotifier publishes events to a durable topic exchange, routed by
// event type. The connection is opened lazily and reopened after a failure.
type AMQPNotifier struct {
	url      string
	exchange string
	logger   *slog.Logger

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewAMQPNotifier(rawURL, exchange string, logger *slog.Logger) (*AMQPNotifier, error) {
	clean, err := sanitizeAMQPURL(rawURL)
	if err != nil {
		return nil, err
	}
	return &AMQPNotifier{url: clean, exchange: exchange, logger: logger}, nil
}

func (n *AMQPNotifier) Publish(ctx context.Context, ev notification.Event) error {
	body, err := json.Marshal(NewMessage(ev))
	if err != nil {
		return err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if err := n.ensureChannel(); err != nil {
		return err
	}
	err = n.channel.PublishWithContext(ctx, n.exchange, ev.Type.RoutingKey(), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.ID.String(),
		Timestamp:    ev.OccurredAt,
		Type:         string(ev.Type),
		Body:         body,
	})
	if err != nil {
		n.logger.Warn("amqp publish failed, dropping channel",
			"exchange", n.exchange,
			"routing_key", ev.Type.RoutingKey(),
			"error", err.Error())
		n.closeLocked()
		return err
	}
	return nil
}

func (n *AMQPNotifier) ensureChannel() error {
	if n.channel != nil && !n.channel.IsClosed() {
		return nil
	}
	if n.conn == nil || n.conn.IsClosed() {
		conn, err := amqp.DialConfig(n.url, amqp.Config{Dial: amqp.DefaultDial(dialTimeout)})
		if err != nil {
			return err
		}
		n.conn = conn
	}
	ch, err := n.conn.Channel()
	if err != nil {
		n.closeLocked()
		return err
	}
	if err := ch.ExchangeDeclare(n.exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		n.closeLocked()
		return err
	}
	n.channel = ch
	return nil
}

func (n *AMQPNotifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closeLocked()
}

func (n *AMQPNotifier) closeLocked() {
	if n.channel != nil {
		_ = n.channel.Close()
		n.channel = nil
	}
	if n.conn != nil {
		_ = n.conn.Close()
		n.conn = nil
	}
}

// LogNotifier is used when no broker is configured. It logs events instead
// of publishing them and always succeeds.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Publish(_ context.Context, ev notification.Event) error {
	n.logger.Info("notification (no broker configured)",
		"routing_key", ev.Type.RoutingKey(),
		"recipient_id", ev.RecipientID.String(),
		"event_id", ev.ID.String())
	return nil
}

func sanitizeAMQPURL(raw string) (string, error) {
	clean := strings.Trim(strings.TrimSpace(raw), "\"'")
	if idx := strings.Index(strings.ToLower(clean), "amqp"); idx > 0 {
		clean = clean[idx:]
	}
	u, err := url.Parse(clean)
	if err != nil {
		return "", err
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return "", errors.New("AMQP scheme must be either 'amqp://' or 'amqps://'")
	}
	return clean, nil
}
