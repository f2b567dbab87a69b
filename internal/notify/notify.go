package notify

import (
	"context"

	"go.uber.org/multierr"
)

// Notifier delivers one rendered report to a channel. Implementations
// decide what to do with the subject; Slack ignores it, mail uses it.
type Notifier interface {
	Send(ctx context.Context, subject, body string) error
}

// Multi fans out to several channels, attempting every one and combining
// the failures.
type Multi []Notifier

func (m Multi) Send(ctx context.Context, subject, body string) error {
	var err error
	for _, n := range m {
		if n == nil {
			continue
		}
		err = multierr.Append(err, n.Send(ctx, subject, body))
	}
	return err
}
