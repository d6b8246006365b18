package notify

import (
	"context"
	"net/mail"

	"go.uber.org/zap"
)

// ConsoleMailer writes messages to the log instead of sending them.
type ConsoleMailer struct {
	from mail.Address
}

func NewConsoleMailer(from mail.Address) *ConsoleMailer {
	return &ConsoleMailer{from: from}
}

func (m *ConsoleMailer) Send(_ context.Context, msg Message) error {
	zap.L().Info("email",
		zap.String("from", m.from.String()),
		zap.String("to", msg.To.String()),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Text),
	)
	return nil
}
