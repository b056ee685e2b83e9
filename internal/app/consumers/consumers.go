package consumers

import (
	"context"

	"blog/internal/app/deps"
	dl "blog/internal/core/domain/logging"
	"blog/internal/rabbitmq/consumers/notification"
)

func initNotificationConsumer(deps *deps.Deps) func() {
	rabbitmqChannel := deps.InitNotificationChannel()

	notificationConsumer := notification.New(deps.Logger, rabbitmqChannel, deps.EmailSender)
	if err := notificationConsumer.Consume(); err != nil {
		panic(err)
	}

	deps.Logger.Info(context.Background(), "Consumer has started.", dl.Entry("queue", notificationConsumer.Queue()))
	return func() { rabbitmqChannel.Close() }
}

func InitConsumers(deps *deps.Deps) func() {
	shutdownNotificationConsumer := initNotificationConsumer(deps)

	return func() {
		shutdownNotificationConsumer()
	}
}
