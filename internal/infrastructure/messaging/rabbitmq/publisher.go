// internal/infrastructure/messaging/rabbitmq/publisher.go
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/your-org/storefront-backend/internal/domain/checkout"
)

const eventOrderPlaced = "order.placed"

// channel is the subset of *amqp.Channel used for publishing
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// OrderEvent is the message body published for a placed order
type OrderEvent struct {
	Type  string               `json:"type"`
	Order checkout.PlacedOrder `json:"order"`
}

// Publisher sends placed orders to a durable queue
type Publisher struct {
	conn      *amqp.Connection
	mu        sync.Mutex
	ch        channel
	queueName string
	logger    *logrus.Logger
}

// Dial connects to RabbitMQ and declares the order queue
func Dial(url, queueName string, logger *logrus.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	p := NewPublisher(ch, queueName, logger)
	p.conn = conn
	logger.WithField("queue", queueName).Info("RabbitMQ publisher ready")
	return p, nil
}

// NewPublisher creates a publisher over an open channel
func NewPublisher(ch channel, queueName string, logger *logrus.Logger) *Publisher {
	return &Publisher{
		ch:        ch,
		queueName: queueName,
		logger:    logger,
	}
}

// NotifyOrderPlaced publishes the order as a persistent JSON message
func (p *Publisher) NotifyOrderPlaced(ctx context.Context, order checkout.PlacedOrder) error {
	body, err := json.Marshal(OrderEvent{Type: eventOrderPlaced, Order: order})
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p.mu.Lock()
	err = p.ch.PublishWithContext(ctx,
		"",          // exchange
		p.queueName, // routing key (queue name)
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			MessageId:    order.OrderNumber,
			Type:         eventOrderPlaced,
			Timestamp:    order.PlacedAt,
			Body:         body,
		})
	p.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to publish order: %w", err)
	}

	p.logger.WithField("order_number", order.OrderNumber).Debug("Published order event")
	return nil
}

// Close closes the channel and the connection
func (p *Publisher) Close() error {
	err := p.ch.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
