package backgroundsender

import (
	"context"
	"sync"
	"time"

	e "blog/internal/core/domain/errors"
	"blog/internal/core/domain/logging"
	"blog/internal/core/domain/user"
)

// Sender hands notifications to the inner sender in a separate goroutine,
// so the caller's response time does not depend on the delivery.
type Sender struct {
	log     logging.Logger
	inner   user.NotificationSender
	timeout time.Duration
	wg      sync.WaitGroup
}

func New(log logging.Logger, inner user.NotificationSender, timeout time.Duration) *Sender {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &Sender{log: log, inner: inner, timeout: timeout}
}

// Send always returns nil. Delivery errors are only logged.
func (s *Sender) Send(ctx context.Context, n user.Notification) error {
	// The request context is canceled as soon as the response is written.
	sendCtx := context.Background()
	if requestID, ok := logging.RequestID(ctx); ok {
		sendCtx = logging.WithRequestID(sendCtx, requestID)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		sendCtx, cancel := context.WithTimeout(sendCtx, s.timeout)
		defer cancel()

		if err := s.inner.Send(sendCtx, n); err != nil {
			s.log.Error(
				sendCtx,
				"Could not send notification.",
				logging.Entry("purpose", n.Purpose),
				logging.Entry("err", err),
			)
			return
		}
		s.log.Info(sendCtx, "Notification has been sent.", logging.Entry("purpose", n.Purpose))
	}()
	return nil
}

// Wait blocks until every started delivery has finished.
func (s *Sender) Wait() {
	s.wg.Wait()
}
