package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const batchQueueName = "evaluation_batches"

// BatchMessage asks the worker to run one batch. API keys are deliberately
// absent: the worker resolves credentials from its own configuration, so keys
// are never persisted or put on the wire.
type BatchMessage struct {
	BatchID   string   `json:"batch_id"`
	JobID     string   `json:"job_id"`
	UploadIDs []string `json:"upload_ids"`
	Provider  string   `json:"provider"`
	Model     string   `json:"model"`
}

// BatchQueue is the RabbitMQ transport between the HTTP surface and the
// batch worker.
type BatchQueue struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
	logger  *zap.Logger
}

func NewBatchQueue(url string, logger *zap.Logger) (*BatchQueue, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	q, err := ch.QueueDeclare(
		batchQueueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	logger.Info("connected to RabbitMQ", zap.String("queue", q.Name))
	return &BatchQueue{conn: conn, channel: ch, queue: q, logger: logger}, nil
}

// Publish enqueues one batch message.
func (q *BatchQueue) Publish(msg BatchMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return q.channel.PublishWithContext(
		ctx,
		"",           // exchange
		q.queue.Name, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// Consume delivers batch messages to the handler on a background goroutine.
// Malformed messages are logged and dropped.
func (q *BatchQueue) Consume(handler func(BatchMessage)) error {
	msgs, err := q.channel.Consume(
		q.queue.Name,
		"",
		true,  // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("register consumer: %w", err)
	}

	go func() {
		for d := range msgs {
			var msg BatchMessage
			if err := json.Unmarshal(d.Body, &msg); err != nil {
				q.logger.Warn("invalid batch message", zap.Error(err))
				continue
			}
			handler(msg)
		}
	}()
	return nil
}

func (q *BatchQueue) Close() error {
	if err := q.channel.Close(); err != nil {
		q.conn.Close()
		return err
	}
	return q.conn.Close()
}
