package notification

import (
	"context"

	"blog/internal/core/domain/common"
	e "blog/internal/core/domain/errors"
	"blog/internal/core/domain/logging"
	"blog/internal/core/domain/user"
	"blog/internal/rabbitmq"
	"blog/internal/rabbitmq/schema"

	amqp "github.com/rabbitmq/amqp091-go"
)

type source interface {
	Consume(consumerTag string) (<-chan amqp.Delivery, error)
	Topology() rabbitmq.Topology
}

// Consumer delivers queued notifications with the given sender.
type Consumer struct {
	log    logging.Logger
	source source
	sender user.NotificationSender
}

func New(log logging.Logger, source source, sender user.NotificationSender) *Consumer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if source == nil {
		panic(e.NewNilArgumentError("source"))
	}
	if source.Topology().Queue == "" {
		panic("queue name must not be empty")
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	return &Consumer{log: log, source: source, sender: sender}
}

func (c *Consumer) Queue() string {
	return c.source.Topology().Queue
}

// Consume handles deliveries in the background until the source is closed.
func (c *Consumer) Consume() error {
	deliveries, err := c.source.Consume("")
	if err != nil {
		c.log.Error(
			context.Background(),
			"Could not start consuming.",
			logging.Entry("err", err),
			logging.Entry("queue", c.Queue()),
		)
		return err
	}

	go c.drain(deliveries)
	return nil
}

func (c *Consumer) drain(deliveries <-chan amqp.Delivery) {
	for delivery := range deliveries {
		c.Handle(context.Background(), delivery)
	}
	c.log.Info(context.Background(), "Deliveries closed, consumer stopped.", logging.Entry("queue", c.Queue()))
}

// Handle sends one notification. Malformed messages are dropped, failed sends are requeued once.
func (c *Consumer) Handle(ctx context.Context, delivery amqp.Delivery) {
	message := schema.Notification{}
	if err := message.Unmarshal(delivery.Body); err != nil {
		c.log.Error(
			ctx,
			"Could not unmarshal notification.",
			logging.Entry("err", err),
			logging.Entry("body", string(delivery.Body)),
		)
		c.ack(ctx, delivery)
		return
	}

	err := c.sender.Send(ctx, user.Notification{
		Purpose:   user.TokenPurpose(message.Purpose),
		To:        common.Email(message.To),
		Name:      message.Username,
		ActionURL: message.ActionURL,
	})
	if err != nil {
		c.log.Error(
			ctx,
			"Could not send notification.",
			logging.Entry("purpose", message.Purpose),
			logging.Entry("redelivered", delivery.Redelivered),
			logging.Entry("err", err),
		)
		if !delivery.Redelivered {
			c.nack(ctx, delivery)
			return
		}
		c.ack(ctx, delivery)
		return
	}

	c.log.Info(ctx, "Notification has been sent.", logging.Entry("purpose", message.Purpose))
	c.ack(ctx, delivery)
}

func (c *Consumer) ack(ctx context.Context, delivery amqp.Delivery) {
	if err := delivery.Ack(false); err != nil {
		c.log.Error(ctx, "Could not ACK AMQP message.", logging.Entry("err", err))
	}
}

func (c *Consumer) nack(ctx context.Context, delivery amqp.Delivery) {
	if err := delivery.Nack(false, true); err != nil {
		c.log.Error(ctx, "Could not NACK AMQP message.", logging.Entry("err", err))
	}
}
