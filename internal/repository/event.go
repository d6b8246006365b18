package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hubicito/hubicito-api/internal/domain"
	"github.com/hubicito/hubicito-api/internal/repository/dao"
)

var (
	ErrEventNotFound = dao.ErrEventNotFound
)

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	Update(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uuid.UUID) (dao.Event, error)
	Find(ctx context.Context, filter dao.EventFilter) ([]dao.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type EventQuery struct {
	Statuses    []domain.EventStatus
	Types       []domain.EventType
	PresenterID *uuid.UUID
	VisibleTo   *uuid.UUID
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EventRepository) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *EventRepository) Find(ctx context.Context, q EventQuery) ([]domain.Event, error) {
	filter := dao.EventFilter{
		PresenterID: q.PresenterID,
		VisibleTo:   q.VisibleTo,
	}
	for _, s := range q.Statuses {
		filter.Statuses = append(filter.Statuses, string(s))
	}
	for _, t := range q.Types {
		filter.Types = append(filter.Types, string(t))
	}
	if q.VisibleTo != nil {
		filter.PublicStatuses = []string{string(domain.EventApproved)}
	}

	found, err := r.dao.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Find -> %w", err)
	}

	events := make([]domain.Event, len(found))
	for i, e := range found {
		events[i] = r.daoToDomain(e)
	}

	return events, nil
}

func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *EventRepository) CountByStatus(ctx context.Context) (map[domain.EventStatus]int64, error) {
	counts, err := r.dao.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.CountByStatus -> %w", err)
	}

	out := make(map[domain.EventStatus]int64, len(domain.EventStatuses))
	for _, s := range domain.EventStatuses {
		out[s] = counts[string(s)]
	}

	return out, nil
}

func (r *EventRepository) domainToDao(e domain.Event) dao.Event {
	return dao.Event{
		ID:            e.ID,
		Title:         e.Title,
		Description:   e.Description,
		Type:          string(e.Type),
		StartTime:     e.StartTime,
		EndTime:       e.EndTime,
		Location:      e.Location,
		PresenterID:   e.PresenterID,
		PresenterName: e.PresenterName,
		Status:        string(e.Status),
		FileURL:       e.FileURL,
		FilePath:      e.FilePath,
		AdminFeedback: e.AdminFeedback,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func (r *EventRepository) daoToDomain(e dao.Event) domain.Event {
	return domain.Event{
		ID:            e.ID,
		Title:         e.Title,
		Description:   e.Description,
		Type:          domain.EventType(e.Type),
		StartTime:     e.StartTime,
		EndTime:       e.EndTime,
		Location:      e.Location,
		PresenterID:   e.PresenterID,
		PresenterName: e.PresenterName,
		Status:        domain.EventStatus(e.Status),
		FileURL:       e.FileURL,
		FilePath:      e.FilePath,
		AdminFeedback: e.AdminFeedback,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}
