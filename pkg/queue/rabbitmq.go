package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"carhive/pkg/config"
	"carhive/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EngagementQueueName = "engagement_queue"
	EngagementExchange  = "engagements"
	engagementRoutingKey = "engagement"
)

// Client publishes engagement events (likes, saves, views) for downstream
// notification delivery. Delivery itself is owned by a separate consumer.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	url := cfg.RabbitMQURL()
	if url == "" {
		return nil, fmt.Errorf("rabbitmq is not configured")
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		EngagementExchange, // name
		"direct",           // type
		true,               // durable
		false,              // auto-deleted
		false,              // internal
		false,              // no-wait
		nil,                // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		EngagementQueueName, // name
		true,                // durable
		false,               // delete when unused
		false,               // exclusive
		false,               // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	err = channel.QueueBind(
		EngagementQueueName,
		engagementRoutingKey,
		EngagementExchange,
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// PublishEngagementTask publishes one engagement event to the queue.
func (c *Client) PublishEngagementTask(task map[string]interface{}) error {
	taskJSON, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	err = c.channel.Publish(
		EngagementExchange,
		engagementRoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         taskJSON,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		c.logger.Error("[RABBITMQ] Failed to publish message to exchange=%s: %v", EngagementExchange, err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}

// ConsumeEngagementTasks registers a handler for queued engagement events.
func (c *Client) ConsumeEngagementTasks(handler func(task map[string]interface{}) error) error {
	msgs, err := c.channel.Consume(
		EngagementQueueName,
		"",    // consumer
		false, // auto-ack, acked manually after processing
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			var task map[string]interface{}
			if err := json.Unmarshal(msg.Body, &task); err != nil {
				c.logger.Error("[RABBITMQ] Failed to unmarshal engagement task: %v, body=%s", err, string(msg.Body))
				msg.Nack(false, false)
				continue
			}

			if err := handler(task); err != nil {
				c.logger.Error("[RABBITMQ] Handler failed to process engagement task: %v, task=%+v", err, task)
				msg.Nack(false, true)
				continue
			}

			msg.Ack(false)
		}
	}()

	return nil
}
