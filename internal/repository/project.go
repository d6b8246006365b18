package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hubicito/hubicito-api/internal/domain"
	"github.com/hubicito/hubicito-api/internal/repository/dao"
)

var (
	ErrProjectNotFound = dao.ErrProjectNotFound
)

type ProjectDAO interface {
	Insert(ctx context.Context, project dao.Project) (dao.Project, error)
	Update(ctx context.Context, project dao.Project) (dao.Project, error)
	UpdateReview(ctx context.Context, id uuid.UUID, status string, feedback *string, presentationDate *time.Time) (dao.Project, error)
	FindByID(ctx context.Context, id uuid.UUID) (dao.Project, error)
	Find(ctx context.Context, filter dao.ProjectFilter) ([]dao.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type LikeDAO interface {
	Toggle(ctx context.Context, projectID, userID uuid.UUID) (bool, int, error)
	Exists(ctx context.Context, projectID, userID uuid.UUID) (bool, error)
	CountAll(ctx context.Context) (int64, error)
}

// ProjectQuery selects projects. VisibleTo restricts the result to what that
// user is allowed to see: their own projects plus the public ones.
type ProjectQuery struct {
	Statuses  []domain.ProjectStatus
	OwnerID   *uuid.UUID
	VisibleTo *uuid.UUID
}

type ProjectRepository struct {
	dao     ProjectDAO
	likeDAO LikeDAO
}

func NewProjectRepository(dao ProjectDAO, likeDAO LikeDAO) *ProjectRepository {
	return &ProjectRepository{
		dao:     dao,
		likeDAO: likeDAO,
	}
}

func (r *ProjectRepository) Create(ctx context.Context, project domain.Project) (domain.Project, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(project))
	if err != nil {
		return domain.Project{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ProjectRepository) Update(ctx context.Context, project domain.Project) (domain.Project, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(project))
	if err != nil {
		return domain.Project{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *ProjectRepository) UpdateReview(ctx context.Context, id uuid.UUID, status domain.ProjectStatus, feedback *string, presentationDate *time.Time) (domain.Project, error) {
	updated, err := r.dao.UpdateReview(ctx, id, string(status), feedback, presentationDate)
	if err != nil {
		return domain.Project{}, fmt.Errorf("r.dao.UpdateReview -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Project, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Project{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ProjectRepository) Find(ctx context.Context, q ProjectQuery) ([]domain.Project, error) {
	filter := dao.ProjectFilter{
		Statuses:  projectStatusNames(q.Statuses),
		OwnerID:   q.OwnerID,
		VisibleTo: q.VisibleTo,
	}
	if q.VisibleTo != nil {
		var public []domain.ProjectStatus
		for _, s := range domain.ProjectStatuses {
			if s.IsPublic() {
				public = append(public, s)
			}
		}
		filter.PublicStatuses = projectStatusNames(public)
	}

	found, err := r.dao.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Find -> %w", err)
	}

	projects := make([]domain.Project, len(found))
	for i, p := range found {
		projects[i] = r.daoToDomain(p)
	}

	return projects, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *ProjectRepository) CountByStatus(ctx context.Context) (map[domain.ProjectStatus]int64, error) {
	counts, err := r.dao.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.CountByStatus -> %w", err)
	}

	out := make(map[domain.ProjectStatus]int64, len(domain.ProjectStatuses))
	for _, s := range domain.ProjectStatuses {
		out[s] = counts[string(s)]
	}

	return out, nil
}

func (r *ProjectRepository) ToggleLike(ctx context.Context, projectID, userID uuid.UUID) (domain.LikeResult, error) {
	liked, count, err := r.likeDAO.Toggle(ctx, projectID, userID)
	if err != nil {
		return domain.LikeResult{}, fmt.Errorf("r.likeDAO.Toggle -> %w", err)
	}

	return domain.LikeResult{ProjectID: projectID, Liked: liked, LikesCount: count}, nil
}

func (r *ProjectRepository) IsLiked(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	liked, err := r.likeDAO.Exists(ctx, projectID, userID)
	if err != nil {
		return false, fmt.Errorf("r.likeDAO.Exists -> %w", err)
	}

	return liked, nil
}

func (r *ProjectRepository) CountLikes(ctx context.Context) (int64, error) {
	n, err := r.likeDAO.CountAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.likeDAO.CountAll -> %w", err)
	}

	return n, nil
}

func projectStatusNames(statuses []domain.ProjectStatus) []string {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	return names
}

func (r *ProjectRepository) domainToDao(p domain.Project) dao.Project {
	deliverables := make([]dao.Deliverable, len(p.Deliverables))
	for i, d := range p.Deliverables {
		deliverables[i] = dao.Deliverable{Name: d.Name, Detail: d.Detail, Days: d.Days}
	}

	releases := make([]dao.Release, len(p.Releases))
	for i, rel := range p.Releases {
		releases[i] = dao.Release{Name: rel.Name, Date: rel.Date, Detail: rel.Detail}
	}

	return dao.Project{
		ID:                 p.ID,
		OwnerID:            p.OwnerID,
		Name:               p.Name,
		Summary:            p.Summary,
		Description:        p.Description,
		FunctionalPurposes: p.FunctionalPurposes,
		Languages:          p.Languages,
		Resources:          p.Resources,
		Deliverables:       deliverables,
		Releases:           releases,
		TotalEstimatedDays: p.TotalEstimatedDays,
		Credits:            p.Credits,
		Status:             string(p.Status),
		AdminFeedback:      p.AdminFeedback,
		PresentationDate:   p.PresentationDate,
		LikesCount:         p.LikesCount,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func (r *ProjectRepository) daoToDomain(p dao.Project) domain.Project {
	deliverables := make([]domain.Deliverable, len(p.Deliverables))
	for i, d := range p.Deliverables {
		deliverables[i] = domain.Deliverable{Name: d.Name, Detail: d.Detail, Days: d.Days}
	}

	releases := make([]domain.Release, len(p.Releases))
	for i, rel := range p.Releases {
		releases[i] = domain.Release{Name: rel.Name, Date: rel.Date, Detail: rel.Detail}
	}

	return domain.Project{
		ID:                 p.ID,
		OwnerID:            p.OwnerID,
		Name:               p.Name,
		Summary:            p.Summary,
		Description:        p.Description,
		FunctionalPurposes: []string(p.FunctionalPurposes),
		Languages:          []string(p.Languages),
		Resources:          []string(p.Resources),
		Deliverables:       deliverables,
		Releases:           releases,
		TotalEstimatedDays: p.TotalEstimatedDays,
		Credits:            p.Credits,
		Status:             domain.ProjectStatus(p.Status),
		AdminFeedback:      p.AdminFeedback,
		PresentationDate:   p.PresentationDate,
		LikesCount:         p.LikesCount,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
