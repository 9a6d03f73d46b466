package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"parametric-service/internal/config"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitMQConnection holds the RabbitMQ connection and channel
type RabbitMQConnection struct {
	Connection *amqp.Connection
	Channel    *amqp.Channel
}

// ConnectRabbitMQ establishes a connection to RabbitMQ
func ConnectRabbitMQ(cfg config.RabbitMQConfig) (*RabbitMQConnection, error) {
	connStr := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.Username,
		cfg.Password,
		cfg.Host,
		cfg.Port,
	)

	conn, err := amqp.Dial(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	slog.Info("Connected to RabbitMQ", "host", cfg.Host, "port", cfg.Port)

	return &RabbitMQConnection{
		Connection: conn,
		Channel:    ch,
	}, nil
}

// Close closes the RabbitMQ connection and channel
func (r *RabbitMQConnection) Close() error {
	if r.Channel != nil {
		if err := r.Channel.Close(); err != nil {
			slog.Error("failed to close RabbitMQ channel", "error", err)
		}
	}
	if r.Connection != nil {
		return r.Connection.Close()
	}
	return nil
}

// NotificationPublisher pushes holder-facing notifications onto the
// push_noti_events queue when a settlement or deactivation happens.
type NotificationPublisher struct {
	conn *RabbitMQConnection
}

func NewNotificationPublisher(conn *RabbitMQConnection) *NotificationPublisher {
	return &NotificationPublisher{conn: conn}
}

func (p *NotificationPublisher) PublishNotification(ctx context.Context, event NotificationEventPushModel) error {
	_, err := p.conn.Channel.QueueDeclare(
		PushNotiQueue, // queue name
		true,          // durable
		false,         // delete when unused
		false,         // exclusive
		false,         // no-wait
		nil,           // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal notification event: %w", err)
	}

	err = p.conn.Channel.PublishWithContext(
		ctx,
		"",            // exchange
		PushNotiQueue, // routing key (queue name)
		false,         // mandatory
		false,         // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}

// NotifySettlement tells the holder a payout went through. Best effort: a
// nil publisher or a broker error only logs.
func (p *NotificationPublisher) NotifySettlement(ctx context.Context, holderID string, policyID int64, amount int64) {
	if p == nil {
		return
	}
	err := p.PublishNotification(ctx, NotificationEventPushModel{
		LstUserIds: []string{holderID},
		Title:      "Claim settled",
		Body:       fmt.Sprintf("Your policy #%d paid out %d.", policyID, amount),
		Data: map[string]any{
			"policy_id": policyID,
			"amount":    amount,
		},
	})
	if err != nil {
		slog.Error("failed to publish settlement notification", "policy_id", policyID, "error", err)
	}
}
