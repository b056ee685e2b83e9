package notification

import (
	"context"
	"errors"
	"testing"

	"blog/internal/core/domain/logging"
	"blog/internal/core/domain/user"
	"blog/internal/rabbitmq"
	"blog/internal/rabbitmq/schema"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/suite"
)

type fakeAcknowledger struct {
	acked   int
	nacked  int
	requeue bool
}

func (a *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	a.acked++
	return nil
}

func (a *fakeAcknowledger) Nack(tag uint64, multiple bool, requeue bool) error {
	a.nacked++
	a.requeue = requeue
	return nil
}

func (a *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return errors.New("not expected")
}

type fakeSource struct {
	deliveries  chan amqp.Delivery
	returnError bool
}

func (s *fakeSource) Consume(consumerTag string) (<-chan amqp.Delivery, error) {
	if s.returnError {
		return nil, errors.New("channel closed")
	}
	return s.deliveries, nil
}

func (s *fakeSource) Topology() rabbitmq.Topology {
	return rabbitmq.Topology{Exchange: "notifications", Queue: "notifications.email", RoutingKey: "email"}
}

type testSuite struct {
	suite.Suite
	ctx      context.Context
	log      *logging.FakeLogger
	sender   *user.FakeNotificationSender
	consumer *Consumer
	ack      *fakeAcknowledger
	source   *fakeSource
}

func (suite *testSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.log = logging.NewFakeLogger()
	suite.sender = user.NewFakeNotificationSender()
	suite.ack = &fakeAcknowledger{}
	suite.source = &fakeSource{deliveries: make(chan amqp.Delivery, 2)}
	suite.consumer = New(suite.log, suite.source, suite.sender)
}

func TestConsumerSuite(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) delivery(body []byte, redelivered bool) amqp.Delivery {
	return amqp.Delivery{Acknowledger: suite.ack, Body: body, Redelivered: redelivered}
}

func (suite *testSuite) message() []byte {
	n := schema.Notification{
		Purpose:   "reset-password",
		To:        "a@x.com",
		Username:  "alice",
		ActionURL: "https://blog.test/account/resetpassword?token=t&userId=1",
	}
	body, err := n.Marshal()
	suite.Require().Nil(err)
	return body
}

func (suite *testSuite) TestMessageIsSentAndAcked() {
	suite.consumer.Handle(suite.ctx, suite.delivery(suite.message(), false))

	suite.Equal(1, suite.ack.acked)
	suite.Equal(0, suite.ack.nacked)
	suite.Equal(1, suite.sender.SentCount())
	suite.Equal(user.Notification{
		Purpose:   user.PurposeResetPassword,
		To:        "a@x.com",
		Name:      "alice",
		ActionURL: "https://blog.test/account/resetpassword?token=t&userId=1",
	}, suite.sender.LastSent())
}

func (suite *testSuite) TestMalformedMessageIsDropped() {
	suite.consumer.Handle(suite.ctx, suite.delivery([]byte("{"), false))

	suite.Equal(1, suite.ack.acked)
	suite.Equal(0, suite.sender.SentCount())
	suite.Equal(1, suite.log.CountByLevel(logging.ERROR))
}

func (suite *testSuite) TestMessageWithoutRecipientIsDropped() {
	suite.consumer.Handle(suite.ctx, suite.delivery([]byte(`{"purpose":"confirm-email"}`), false))

	suite.Equal(1, suite.ack.acked)
	suite.Equal(0, suite.sender.SentCount())
}

func (suite *testSuite) TestFailedSendIsRequeuedOnce() {
	suite.sender.ReturnError = true

	suite.consumer.Handle(suite.ctx, suite.delivery(suite.message(), false))
	suite.Equal(0, suite.ack.acked)
	suite.Equal(1, suite.ack.nacked)
	suite.True(suite.ack.requeue)

	suite.consumer.Handle(suite.ctx, suite.delivery(suite.message(), true))
	suite.Equal(1, suite.ack.acked)
	suite.Equal(1, suite.ack.nacked)
}

func (suite *testSuite) TestDrainHandlesEveryDeliveryUntilClosed() {
	suite.source.deliveries <- suite.delivery(suite.message(), false)
	suite.source.deliveries <- suite.delivery([]byte("{"), false)
	close(suite.source.deliveries)

	suite.consumer.drain(suite.source.deliveries)

	suite.Equal(2, suite.ack.acked)
	suite.Equal(1, suite.sender.SentCount())
	suite.Equal(2, suite.log.CountByLevel(logging.INFO))
}

func (suite *testSuite) TestConsumeError() {
	suite.source.returnError = true

	suite.NotNil(suite.consumer.Consume())
	suite.Equal(1, suite.log.CountByLevel(logging.ERROR))
}

func (suite *testSuite) TestNewRequiresQueue() {
	suite.Panics(func() {
		New(suite.log, &emptySource{}, suite.sender)
	})
}

type emptySource struct{ fakeSource }

func (s *emptySource) Topology() rabbitmq.Topology {
	return rabbitmq.Topology{}
}
