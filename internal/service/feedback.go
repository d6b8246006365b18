package service

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"

	"github.com/hubicito/hubicito-api/internal/domain"
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback domain.Feedback) (domain.Feedback, error)
	FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]domain.Feedback, error)
}

type ProjectFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (domain.Project, error)
}

// FeedbackPublisher is told about every message once it is stored.
type FeedbackPublisher interface {
	Publish(feedback domain.Feedback)
}

type FeedbackService struct {
	repo      FeedbackRepository
	projects  ProjectFinder
	publisher FeedbackPublisher
}

func NewFeedbackService(repo FeedbackRepository, projects ProjectFinder, publisher FeedbackPublisher) *FeedbackService {
	return &FeedbackService{
		repo:      repo,
		projects:  projects,
		publisher: publisher,
	}
}

// Authorize checks that actor may read and write the feedback thread of a
// project: its owner and the admins.
func (s *FeedbackService) Authorize(ctx context.Context, actor domain.Actor, projectID uuid.UUID) error {
	if !actor.IsAuthenticated() {
		return domain.ErrUnauthenticated
	}

	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return fmt.Errorf("s.projects.FindByID -> %w", err)
	}
	if !actor.IsAdmin() && !project.IsOwnedBy(actor) {
		return domain.ErrForbidden
	}

	return nil
}

func (s *FeedbackService) Post(ctx context.Context, actor domain.Actor, projectID uuid.UUID, message string) (domain.Feedback, error) {
	message = strings.TrimSpace(message)
	if err := validation.Validate(message, validation.Required, validation.Length(1, 5000)); err != nil {
		return domain.Feedback{}, domain.NewValidationError(fmt.Errorf("message: %w", err))
	}

	if err := s.Authorize(ctx, actor, projectID); err != nil {
		return domain.Feedback{}, err
	}

	created, err := s.repo.Create(ctx, domain.Feedback{
		ProjectID:  projectID,
		SenderID:   actor.ID,
		SenderName: actor.FullName,
		Message:    message,
	})
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	s.publisher.Publish(created)

	return created, nil
}

func (s *FeedbackService) List(ctx context.Context, actor domain.Actor, projectID uuid.UUID) ([]domain.Feedback, error) {
	if err := s.Authorize(ctx, actor, projectID); err != nil {
		return nil, err
	}

	thread, err := s.repo.FindByProjectID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByProjectID -> %w", err)
	}

	return thread, nil
}

// NopPublisher drops every message.
type NopPublisher struct{}

func (NopPublisher) Publish(domain.Feedback) {}
