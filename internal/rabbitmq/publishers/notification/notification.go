package notification

import (
	"context"

	e "blog/internal/core/domain/errors"
	"blog/internal/core/domain/logging"
	"blog/internal/core/domain/user"
	"blog/internal/rabbitmq"
	"blog/internal/rabbitmq/schema"

	amqp "github.com/rabbitmq/amqp091-go"
)

type publisher interface {
	Publish(ctx context.Context, msg amqp.Publishing) error
	Topology() rabbitmq.Topology
}

// RabbitMQ hands notifications over to the mailer instead of sending them inline.
type RabbitMQ struct {
	log     logging.Logger
	channel publisher
}

func NewRabbitMQ(log logging.Logger, channel publisher) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	return &RabbitMQ{log: log, channel: channel}
}

func (s *RabbitMQ) Send(ctx context.Context, n user.Notification) error {
	message := schema.Notification{
		Purpose:   string(n.Purpose),
		To:        string(n.To),
		Username:  n.Name,
		ActionURL: n.ActionURL,
	}
	body, err := message.Marshal()
	if err != nil {
		return err
	}

	err = s.channel.Publish(ctx, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		logging.Error(ctx, s.log, err)
		return err
	}
	topology := s.channel.Topology()
	s.log.Info(
		ctx,
		"AMQP message has been successfully published.",
		logging.Entry("exchange", topology.Exchange),
		logging.Entry("RK", topology.RoutingKey),
		logging.Entry("purpose", n.Purpose),
	)
	return nil
}
