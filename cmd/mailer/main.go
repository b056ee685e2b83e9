package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"blog/internal/app/consumers"
	"blog/internal/app/deps"
	"blog/internal/core/domain/logging"
)

func main() {
	deps, shutdownDeps := deps.InitMailerDeps()
	log := deps.Logger
	defer shutdownDeps()

	stopConsumers := consumers.InitConsumers(deps)
	defer stopConsumers()

	stopCh, closeCh := createChannel()
	defer closeCh()

	log.Info(
		context.Background(),
		"Mailer is waiting for account emails.",
		logging.Entry("queue", deps.Config.RabbitmqNotificationQueue),
	)
	<-stopCh
	log.Info(context.Background(), "Stopping mailer.")
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}
