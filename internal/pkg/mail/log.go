package mail

import (
	"context"
	"log/slog"
)

// Log is a Mail that writes messages to slog instead of sending them.
type Log struct {
	defaultFrom string
	logger      *slog.Logger
}

// NewLog returns a Log mailer. A nil logger uses slog.Default.
func NewLog(from string, logger *slog.Logger) *Log {
	return &Log{defaultFrom: from, logger: logger}
}

func (l *Log) Send(ctx context.Context, msg Message) error {
	from, err := resolveSender(msg, l.defaultFrom)
	if err != nil {
		return err
	}

	logger := l.logger
	if logger == nil {
		logger = slog.Default()
	}

	logger.InfoContext(ctx, "mail delivered to log",
		"from", from,
		"to", msg.To,
		"subject", msg.Subject,
		"text_body", msg.TextBody,
	)
	return nil
}

func (*Log) Close() error {
	return nil
}
