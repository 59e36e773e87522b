package notification

import (
	"context"

	"go.uber.org/zap"
)

// Sender delivers one rendered HTML message.
type Sender interface {
	Send(ctx context.Context, to, subject, html string) error
}

// LogSender only logs. Used in test environments and when SMTP is not
// configured.
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, to, subject, _ string) error {
	s.log.Info("mail skipped",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}
