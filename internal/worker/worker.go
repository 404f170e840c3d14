package worker

import (
	"context"
	"encoding/json"
	"time"

	"microblog/internal/events"
	"microblog/internal/observability"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

const maxRetries = 3

func republishWithRetry(ch *amqp.Channel, msg *amqp.Delivery, retryCount int32) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Create new headers with incremented retry count
	headers := amqp.Table{}
	if msg.Headers != nil {
		headers = msg.Headers
	}
	headers["x-retry-count"] = retryCount

	return ch.PublishWithContext(
		ctx,
		"",             // exchange
		msg.RoutingKey, // routing key (queue name)
		false,          // mandatory
		false,          // immediate
		amqp.Publishing{
			ContentType: msg.ContentType,
			Body:        msg.Body,
			Headers:     headers,
		},
	)
}

// StartWorker consumes domain events from the blog_events queue and
// dispatches them per event type. Blocks until the channel closes.
func StartWorker(conn *amqp.Connection, id int) {
	ch, err := conn.Channel()
	if err != nil {
		logrus.Fatalf("Worker %d failed to open channel: %v", id, err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(events.QueueName, true, false, false, false, nil); err != nil {
		logrus.Fatalf("Worker %d failed to declare queue: %v", id, err)
	}

	if err := ch.Qos(1, 0, false); err != nil {
		logrus.Fatalf("Worker %d failed to set QoS: %v", id, err)
	}

	msgs, err := ch.Consume(
		events.QueueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logrus.Fatalf("Worker %d failed to start consuming messages: %v", id, err)
		return
	}

	logrus.Infof("Worker %d started", id)

	for msg := range msgs {
		observability.GlobalMetrics.QueueMessagesConsumed.WithLabelValues(events.QueueName).Inc()

		var event events.Event
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			logrus.Error("invalid event payload")
			msg.Nack(false, false)
			continue
		}

		retryCount := int32(0)
		if msg.Headers != nil {
			if count, ok := msg.Headers["x-retry-count"].(int32); ok {
				retryCount = count
			}
		}

		logrus.Infof(
			"Worker %d processing event=%s for user=%d (retry: %d)",
			id,
			event.Type,
			event.UserID,
			retryCount,
		)

		if err := handleEvent(&event, id); err != nil {
			logrus.WithError(err).Errorf("Worker %d failed to handle event %s", id, event.Type)

			if retryCount >= maxRetries {
				logrus.Errorf("Worker %d dropping event %s after %d retries", id, event.Type, retryCount)
				msg.Nack(false, false)
				continue
			}

			if err := republishWithRetry(ch, &msg, retryCount+1); err != nil {
				logrus.WithError(err).Error("Failed to republish event")
				msg.Nack(false, false)
				continue
			}

			observability.GlobalMetrics.QueueMessagesPublished.WithLabelValues(events.QueueName).Inc()
			msg.Ack(false)
			continue
		}

		msg.Ack(false)
	}
}
