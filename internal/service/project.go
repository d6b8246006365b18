package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hubicito/hubicito-api/internal/domain"
	"github.com/hubicito/hubicito-api/internal/repository"
)

var (
	ErrProjectNotFound = repository.ErrProjectNotFound
)

type ProjectRepository interface {
	Create(ctx context.Context, project domain.Project) (domain.Project, error)
	Update(ctx context.Context, project domain.Project) (domain.Project, error)
	UpdateReview(ctx context.Context, id uuid.UUID, status domain.ProjectStatus, feedback *string, presentationDate *time.Time) (domain.Project, error)
	FindByID(ctx context.Context, id uuid.UUID) (domain.Project, error)
	Find(ctx context.Context, q repository.ProjectQuery) ([]domain.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ToggleLike(ctx context.Context, projectID, userID uuid.UUID) (domain.LikeResult, error)
	IsLiked(ctx context.Context, projectID, userID uuid.UUID) (bool, error)
}

type ReviewNotifier interface {
	ProjectReviewed(ctx context.Context, project domain.Project)
	PresentationReviewed(ctx context.Context, event domain.Event)
}

type ProjectListFilter struct {
	Statuses []domain.ProjectStatus
	OwnerID  *uuid.UUID
}

// ProjectReview is an admin decision on a project.
type ProjectReview struct {
	Status           domain.ProjectStatus
	Feedback         *string
	PresentationDate *time.Time
}

type ProjectService struct {
	repo     ProjectRepository
	notifier ReviewNotifier
}

func NewProjectService(repo ProjectRepository, notifier ReviewNotifier) *ProjectService {
	return &ProjectService{
		repo:     repo,
		notifier: notifier,
	}
}

// Save writes project on behalf of its owner with the given status. A project
// without an id is inserted, otherwise the stored one is updated in place.
func (s *ProjectService) Save(ctx context.Context, actor domain.Actor, project domain.Project, status domain.ProjectStatus) (domain.Project, error) {
	if !actor.IsAuthenticated() {
		return domain.Project{}, domain.ErrUnauthenticated
	}

	project.Status = status

	if project.ID == uuid.Nil {
		if !domain.CanOwnerSave("", status) {
			return domain.Project{}, domain.ErrInvalidTransition
		}

		project.OwnerID = actor.ID
		project.AdminFeedback = nil
		project.PresentationDate = nil
		project.Recompute(false)
		if err := project.Validate(); err != nil {
			return domain.Project{}, err
		}

		created, err := s.repo.Create(ctx, project)
		if err != nil {
			return domain.Project{}, fmt.Errorf("s.repo.Create -> %w", err)
		}

		return created, nil
	}

	existing, err := s.repo.FindByID(ctx, project.ID)
	if err != nil {
		return domain.Project{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if !existing.IsOwnedBy(actor) {
		return domain.Project{}, domain.ErrForbidden
	}
	if !domain.CanOwnerSave(existing.Status, status) {
		return domain.Project{}, domain.ErrInvalidTransition
	}

	project.OwnerID = existing.OwnerID
	project.AdminFeedback = existing.AdminFeedback
	project.PresentationDate = existing.PresentationDate
	project.CreatedAt = existing.CreatedAt
	project.Recompute(len(existing.Deliverables) > 0)
	if err = project.Validate(); err != nil {
		return domain.Project{}, err
	}

	updated, err := s.repo.Update(ctx, project)
	if err != nil {
		return domain.Project{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// OpenForEdit loads a project its owner may still change.
func (s *ProjectService) OpenForEdit(ctx context.Context, actor domain.Actor, id uuid.UUID) (domain.Project, error) {
	if !actor.IsAuthenticated() {
		return domain.Project{}, domain.ErrUnauthenticated
	}

	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Project{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if !project.IsOwnedBy(actor) {
		return domain.Project{}, domain.ErrForbidden
	}
	if !project.Status.IsEditableByOwner() {
		return domain.Project{}, domain.ErrLocked
	}

	return project, nil
}

func (s *ProjectService) Review(ctx context.Context, actor domain.Actor, id uuid.UUID, review ProjectReview) (domain.Project, error) {
	if !actor.IsAuthenticated() {
		return domain.Project{}, domain.ErrUnauthenticated
	}
	if !actor.IsAdmin() {
		return domain.Project{}, domain.ErrForbidden
	}

	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Project{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if !domain.CanReview(project.Status, review.Status) {
		return domain.Project{}, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, project.Status, review.Status)
	}

	updated, err := s.repo.UpdateReview(ctx, id, review.Status, review.Feedback, review.PresentationDate)
	if err != nil {
		return domain.Project{}, fmt.Errorf("s.repo.UpdateReview -> %w", err)
	}

	s.notifier.ProjectReviewed(ctx, updated)

	return updated, nil
}

// Get returns one project with Liked set for actor.
func (s *ProjectService) Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (domain.Project, error) {
	if !actor.IsAuthenticated() {
		return domain.Project{}, domain.ErrUnauthenticated
	}

	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Project{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if !project.CanBeReadBy(actor) {
		return domain.Project{}, domain.ErrForbidden
	}

	project.Liked, err = s.repo.IsLiked(ctx, id, actor.ID)
	if err != nil {
		return domain.Project{}, fmt.Errorf("s.repo.IsLiked -> %w", err)
	}

	return project, nil
}

func (s *ProjectService) List(ctx context.Context, actor domain.Actor, filter ProjectListFilter) ([]domain.Project, error) {
	if !actor.IsAuthenticated() {
		return nil, domain.ErrUnauthenticated
	}

	q := repository.ProjectQuery{
		Statuses: filter.Statuses,
		OwnerID:  filter.OwnerID,
	}
	if !actor.IsAdmin() {
		q.VisibleTo = &actor.ID
	}

	projects, err := s.repo.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Find -> %w", err)
	}

	return projects, nil
}

func (s *ProjectService) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	if !actor.IsAuthenticated() {
		return domain.ErrUnauthenticated
	}

	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if !project.IsOwnedBy(actor) {
		return domain.ErrForbidden
	}
	if !project.Status.IsDeletable() {
		return domain.ErrLocked
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// ToggleLike likes the project for actor, or removes the like if there is
// one already.
func (s *ProjectService) ToggleLike(ctx context.Context, actor domain.Actor, id uuid.UUID) (domain.LikeResult, error) {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return domain.LikeResult{}, err
	}

	result, err := s.repo.ToggleLike(ctx, id, actor.ID)
	if err != nil {
		return domain.LikeResult{}, fmt.Errorf("s.repo.ToggleLike -> %w", err)
	}

	return result, nil
}
