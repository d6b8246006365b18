package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hubicito/hubicito-api/internal/domain"
	"github.com/hubicito/hubicito-api/internal/repository/dao"
)

type FeedbackDAO interface {
	Insert(ctx context.Context, feedback dao.ProjectFeedback) (dao.ProjectFeedback, error)
	FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]dao.ProjectFeedback, error)
}

type FeedbackRepository struct {
	dao FeedbackDAO
}

func NewFeedbackRepository(dao FeedbackDAO) *FeedbackRepository {
	return &FeedbackRepository{
		dao: dao,
	}
}

func (r *FeedbackRepository) Create(ctx context.Context, feedback domain.Feedback) (domain.Feedback, error) {
	created, err := r.dao.Insert(ctx, dao.ProjectFeedback{
		ProjectID: feedback.ProjectID,
		SenderID:  feedback.SenderID,
		Message:   feedback.Message,
	})
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	out := r.daoToDomain(created)
	out.SenderName = feedback.SenderName

	return out, nil
}

func (r *FeedbackRepository) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]domain.Feedback, error) {
	found, err := r.dao.FindByProjectID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByProjectID -> %w", err)
	}

	thread := make([]domain.Feedback, len(found))
	for i, f := range found {
		thread[i] = r.daoToDomain(f)
	}

	return thread, nil
}

func (r *FeedbackRepository) daoToDomain(f dao.ProjectFeedback) domain.Feedback {
	return domain.Feedback{
		ID:         f.ID,
		ProjectID:  f.ProjectID,
		SenderID:   f.SenderID,
		SenderName: f.SenderName,
		Message:    f.Message,
		CreatedAt:  f.CreatedAt,
	}
}
