package notify

import (
	"context"
	"errors"
	"net/mail"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubicito/hubicito-api/internal/domain"
)

type recordingMailer struct {
	sent []Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg Message) error {
	m.sent = append(m.sent, msg)
	return m.err
}

type profileMap map[uuid.UUID]domain.Profile

func (p profileMap) FindByID(_ context.Context, id uuid.UUID) (domain.Profile, error) {
	profile, ok := p[id]
	if !ok {
		return domain.Profile{}, errors.New("not found")
	}
	return profile, nil
}

func TestNotifier_ProjectReviewed(t *testing.T) {
	owner := domain.Profile{ID: uuid.New(), Email: "ada@hubicito.dev", FullName: "Ada"}
	mailer := &recordingMailer{}
	n := NewNotifier(mailer, profileMap{owner.ID: owner})

	feedback := "Scope is too wide"
	n.ProjectReviewed(context.Background(), domain.Project{
		OwnerID:       owner.ID,
		Name:          "Hubicito",
		Status:        domain.ProjectRejected,
		AdminFeedback: &feedback,
	})

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "ada@hubicito.dev", mailer.sent[0].To.Address)
	assert.Equal(t, "Project rejected", mailer.sent[0].Subject)
	assert.Contains(t, mailer.sent[0].Text, "Scope is too wide")
}

func TestNotifier_SwallowsFailures(t *testing.T) {
	presenter := domain.Profile{ID: uuid.New(), Email: "bob@hubicito.dev"}
	mailer := &recordingMailer{err: errors.New("smtp down")}
	n := NewNotifier(mailer, profileMap{presenter.ID: presenter})

	assert.NotPanics(t, func() {
		n.PresentationReviewed(context.Background(), domain.Event{PresenterID: presenter.ID, Title: "Go", Status: domain.EventApproved})
		n.PresentationReviewed(context.Background(), domain.Event{PresenterID: uuid.New(), Title: "Ghost"})
	})
	assert.Len(t, mailer.sent, 1)
}

func TestSendgridMailer_Prepare(t *testing.T) {
	m := NewSendgridMailer("key", mailAddress("Hubicito", "noreply@hubicito.dev"))
	v3 := m.prepare(Message{To: mailAddress("Ada", "ada@hubicito.dev"), Subject: "Hi", Text: "body"})

	require.Len(t, v3.Personalizations, 1)
	assert.Equal(t, "[Hubicito] Hi", v3.Personalizations[0].Subject)
	assert.Equal(t, "noreply@hubicito.dev", v3.From.Address)
	require.Len(t, v3.Content, 1)
	assert.Equal(t, "body", v3.Content[0].Value)
}

func mailAddress(name, address string) mail.Address {
	return mail.Address{Name: name, Address: address}
}
