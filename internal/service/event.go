package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hubicito/hubicito-api/internal/domain"
	"github.com/hubicito/hubicito-api/internal/repository"
	"github.com/hubicito/hubicito-api/internal/storage"
)

var (
	ErrEventNotFound = repository.ErrEventNotFound
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	Update(ctx context.Context, event domain.Event) (domain.Event, error)
	FindByID(ctx context.Context, id uuid.UUID) (domain.Event, error)
	Find(ctx context.Context, q repository.EventQuery) ([]domain.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type EventListFilter struct {
	Statuses    []domain.EventStatus
	Types       []domain.EventType
	PresenterID *uuid.UUID
}

// EventDetails holds the presenter editable fields of a presentation.
type EventDetails struct {
	Title       string
	Description string
	Type        domain.EventType
	StartTime   time.Time
	EndTime     time.Time
	Location    string
}

// Upload is a presentation file on its way to the bucket.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

type EventService struct {
	repo     EventRepository
	bucket   storage.Bucket
	notifier ReviewNotifier
	now      func() time.Time
}

func NewEventService(repo EventRepository, bucket storage.Bucket, notifier ReviewNotifier) *EventService {
	return &EventService{
		repo:     repo,
		bucket:   bucket,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *EventService) Create(ctx context.Context, actor domain.Actor, details EventDetails) (domain.Event, error) {
	if !actor.IsAuthenticated() {
		return domain.Event{}, domain.ErrUnauthenticated
	}

	event := domain.Event{
		PresenterID:   actor.ID,
		PresenterName: actor.FullName,
		Status:        domain.EventPending,
	}
	applyDetails(&event, details)
	if err := event.Validate(); err != nil {
		return domain.Event{}, err
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// Update changes a pending or rejected presentation. Editing a rejected one
// sends it back to the review queue.
func (s *EventService) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, details EventDetails) (domain.Event, error) {
	event, err := s.findOwned(ctx, actor, id)
	if err != nil {
		return domain.Event{}, err
	}
	if !event.IsEditable() {
		return domain.Event{}, domain.ErrLocked
	}

	applyDetails(&event, details)
	event.Status = domain.EventPending
	if err = event.Validate(); err != nil {
		return domain.Event{}, err
	}

	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *EventService) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	event, err := s.findOwned(ctx, actor, id)
	if err != nil {
		return err
	}
	if !event.IsDeletable() {
		return domain.ErrLocked
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	if event.FilePath != nil {
		s.removeObject(ctx, *event.FilePath)
	}

	return nil
}

// AttachFile stores a presentation file for the event and links it. A file
// that was attached before is removed once the new one is in place.
func (s *EventService) AttachFile(ctx context.Context, actor domain.Actor, id uuid.UUID, upload Upload) (domain.Event, error) {
	event, err := s.findOwned(ctx, actor, id)
	if err != nil {
		return domain.Event{}, err
	}
	if !event.IsEditable() {
		return domain.Event{}, domain.ErrLocked
	}

	objectPath := storage.ObjectPath(actor.ID, upload.Filename, s.now())
	if err = s.bucket.Upload(ctx, objectPath, upload.Body, upload.ContentType); err != nil {
		return domain.Event{}, fmt.Errorf("s.bucket.Upload -> %w", err)
	}

	previous := event.FilePath
	url := s.bucket.PublicURL(objectPath)
	event.FileURL = &url
	event.FilePath = &objectPath

	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		s.removeObject(ctx, objectPath)
		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	if previous != nil && *previous != objectPath {
		s.removeObject(ctx, *previous)
	}

	return updated, nil
}

// Approve accepts a pending presentation. Without feedback the stock
// approval message is stored.
func (s *EventService) Approve(ctx context.Context, actor domain.Actor, id uuid.UUID, feedback string) (domain.Event, error) {
	if err := requireAdmin(actor); err != nil {
		return domain.Event{}, err
	}

	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if err = event.Approve(feedback); err != nil {
		return domain.Event{}, err
	}

	return s.saveReview(ctx, event)
}

// Reject turns down a pending presentation. The feedback check happens before
// anything is read from storage.
func (s *EventService) Reject(ctx context.Context, actor domain.Actor, id uuid.UUID, feedback string) (domain.Event, error) {
	if err := requireAdmin(actor); err != nil {
		return domain.Event{}, err
	}
	if err := domain.ValidateRejectionFeedback(feedback); err != nil {
		return domain.Event{}, err
	}

	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if err = event.Reject(feedback); err != nil {
		return domain.Event{}, err
	}

	return s.saveReview(ctx, event)
}

func (s *EventService) Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (domain.Event, error) {
	if !actor.IsAuthenticated() {
		return domain.Event{}, domain.ErrUnauthenticated
	}

	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if !event.CanBeReadBy(actor) {
		return domain.Event{}, domain.ErrForbidden
	}

	return event, nil
}

func (s *EventService) List(ctx context.Context, actor domain.Actor, filter EventListFilter) ([]domain.Event, error) {
	if !actor.IsAuthenticated() {
		return nil, domain.ErrUnauthenticated
	}

	q := repository.EventQuery{
		Statuses:    filter.Statuses,
		Types:       filter.Types,
		PresenterID: filter.PresenterID,
	}
	if !actor.IsAdmin() {
		q.VisibleTo = &actor.ID
	}

	events, err := s.repo.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Find -> %w", err)
	}

	return events, nil
}

func (s *EventService) saveReview(ctx context.Context, event domain.Event) (domain.Event, error) {
	if _, err := s.repo.Update(ctx, event); err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	refreshed, err := s.repo.FindByID(ctx, event.ID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	s.notifier.PresentationReviewed(ctx, refreshed)

	return refreshed, nil
}

func (s *EventService) findOwned(ctx context.Context, actor domain.Actor, id uuid.UUID) (domain.Event, error) {
	if !actor.IsAuthenticated() {
		return domain.Event{}, domain.ErrUnauthenticated
	}

	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if !event.IsPresentedBy(actor) {
		return domain.Event{}, domain.ErrForbidden
	}

	return event, nil
}

func (s *EventService) removeObject(ctx context.Context, objectPath string) {
	if err := s.bucket.Remove(ctx, objectPath); err != nil {
		zap.L().Warn("could not remove presentation file", zap.String("path", objectPath), zap.Error(err))
	}
}

func applyDetails(event *domain.Event, d EventDetails) {
	event.Title = d.Title
	event.Description = d.Description
	event.Type = d.Type
	event.StartTime = d.StartTime
	event.EndTime = d.EndTime
	event.Location = d.Location
}

func requireAdmin(actor domain.Actor) error {
	if !actor.IsAuthenticated() {
		return domain.ErrUnauthenticated
	}
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}
