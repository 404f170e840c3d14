package events

import (
	"context"
	"encoding/json"
	"microblog/internal/observability"
	"microblog/internal/queue"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// QueueName is the durable queue the worker binary consumes.
const QueueName = "blog_events"

const (
	UserRegistered = "user.registered"
	PostCreated    = "post.created"
)

// Event is the JSON payload published for every domain event. Fields
// not relevant to an event type stay zero and are omitted on the wire.
type Event struct {
	Type     string `json:"type"`
	UserID   int    `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	PostID   int    `json:"post_id,omitempty"`
	Title    string `json:"title,omitempty"`
}

type PublisherInterface interface {
	Publish(event *Event) error
}

type Publisher struct {
	conn *amqp.Connection
}

func NewPublisher(conn *amqp.Connection) PublisherInterface {
	return &Publisher{conn: conn}
}

// Publish sends the event as a persistent message to the blog_events
// queue. Callers treat failures as non-fatal: the originating request
// already committed.
func (p *Publisher) Publish(event *Event) error {
	ch, err := queue.CreateChannel(p.conn)
	if err != nil {
		return err
	}
	defer ch.Close()

	if _, err := queue.DeclareQueue(ch, QueueName); err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := ch.PublishWithContext(
		ctx,
		"",        // exchange
		QueueName, // routing key
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	); err != nil {
		return err
	}

	if observability.GlobalMetrics != nil {
		observability.GlobalMetrics.QueueMessagesPublished.WithLabelValues(QueueName).Inc()
	}
	return nil
}
