package notify

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hubicito/hubicito-api/internal/domain"
)

type ProfileFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (domain.Profile, error)
}

// Notifier tells owners and presenters about review decisions. Delivery
// problems are logged and never reach the caller.
type Notifier struct {
	mailer   Mailer
	profiles ProfileFinder
}

func NewNotifier(mailer Mailer, profiles ProfileFinder) *Notifier {
	return &Notifier{
		mailer:   mailer,
		profiles: profiles,
	}
}

func (n *Notifier) ProjectReviewed(ctx context.Context, project domain.Project) {
	text := fmt.Sprintf("Your project %q is now %s.", project.Name, project.Status)
	if project.AdminFeedback != nil && *project.AdminFeedback != "" {
		text += "\n\nFeedback: " + *project.AdminFeedback
	}
	if project.PresentationDate != nil {
		text += "\n\nPresentation date: " + project.PresentationDate.Format("Monday 02 January 2006 15:04")
	}

	n.send(ctx, project.OwnerID, "Project "+string(project.Status), text)
}

func (n *Notifier) PresentationReviewed(ctx context.Context, event domain.Event) {
	text := fmt.Sprintf("Your presentation %q was %s.", event.Title, event.Status)
	if event.AdminFeedback != nil {
		text += "\n\nFeedback: " + *event.AdminFeedback
	}

	n.send(ctx, event.PresenterID, "Presentation "+string(event.Status), text)
}

func (n *Notifier) send(ctx context.Context, to uuid.UUID, subject, text string) {
	profile, err := n.profiles.FindByID(ctx, to)
	if err != nil {
		zap.L().Warn("notify: recipient lookup failed", zap.Stringer("user_id", to), zap.Error(err))
		return
	}

	msg := Message{
		To:      mail.Address{Name: profile.FullName, Address: profile.Email},
		Subject: subject,
		Text:    text,
	}
	if err = n.mailer.Send(ctx, msg); err != nil {
		zap.L().Warn("notify: send failed", zap.Stringer("user_id", to), zap.String("subject", subject), zap.Error(err))
	}
}
