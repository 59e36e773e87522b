package notification

import (
	"context"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerSender stops calling the wrapped sender after repeated
// failures, so a dead SMTP server does not add its dial timeout to
// every request.
type BreakerSender struct {
	next Sender
	cb   *gobreaker.CircuitBreaker[struct{}]
}

func NewBreakerSender(next Sender) *BreakerSender {
	return &BreakerSender{
		next: next,
		cb: gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
			Name:        "smtp",
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

func (s *BreakerSender) Send(ctx context.Context, to, subject, html string) error {
	_, err := s.cb.Execute(func() (struct{}, error) {
		return struct{}{}, s.next.Send(ctx, to, subject, html)
	})
	return err
}

func (s *BreakerSender) State() gobreaker.State {
	return s.cb.State()
}
