package notify

import (
	"context"
	"net/mail"

	"github.com/hubicito/hubicito-api/internal/config"
)

type Message struct {
	To      mail.Address
	Subject string
	Text    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// NewMailer picks the mailer named by conf.Driver.
func NewMailer(conf *config.MailConfig) Mailer {
	from := mail.Address{Name: conf.FromName, Address: conf.FromAddress}
	if conf.Driver == "sendgrid" {
		return NewSendgridMailer(conf.SendgridKey, from)
	}
	return NewConsoleMailer(from)
}
