package notify

import (
	"context"

	"go.uber.org/zap"
)

// Logbook writes messages to the log instead of delivering them. Test
// mode swaps it in for the live channels so a run stays side-effect free.
type Logbook struct {
	Logger  *zap.Logger
	Channel string // label carried into the log line, e.g. "slack"
}

func (l *Logbook) Send(_ context.Context, subject, body string) error {
	l.Logger.Info("notification_suppressed",
		zap.String("channel", l.Channel),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}
