package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hubicito/hubicito-api/internal/domain"
	"github.com/hubicito/hubicito-api/internal/repository/dao"
)

var (
	ErrProfileEmailExists = dao.ErrProfileEmailExists
	ErrProfileNotFound    = dao.ErrProfileNotFound
)

type ProfileDAO interface {
	Insert(ctx context.Context, profile dao.Profile) (dao.Profile, error)
	FindByID(ctx context.Context, id uuid.UUID) (dao.Profile, error)
	FindByEmail(ctx context.Context, email string) (dao.Profile, error)
	FindByRoles(ctx context.Context, roles []string) ([]dao.Profile, error)
	Update(ctx context.Context, profile dao.Profile) (dao.Profile, error)
	CountByRole(ctx context.Context) (map[string]int64, error)
}

type ProfileRepository struct {
	dao ProfileDAO
}

func NewProfileRepository(dao ProfileDAO) *ProfileRepository {
	return &ProfileRepository{
		dao: dao,
	}
}

func (r *ProfileRepository) Create(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(profile))
	if err != nil {
		return domain.Profile{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Profile, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ProfileRepository) FindByEmail(ctx context.Context, email string) (domain.Profile, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ProfileRepository) FindByRoles(ctx context.Context, roles ...domain.Role) ([]domain.Profile, error) {
	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = string(role)
	}

	found, err := r.dao.FindByRoles(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByRoles -> %w", err)
	}

	profiles := make([]domain.Profile, len(found))
	for i, p := range found {
		profiles[i] = r.daoToDomain(p)
	}

	return profiles, nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(profile))
	if err != nil {
		return domain.Profile{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *ProfileRepository) CountByRole(ctx context.Context) (map[domain.Role]int64, error) {
	counts, err := r.dao.CountByRole(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.CountByRole -> %w", err)
	}

	out := make(map[domain.Role]int64, len(counts))
	for role, n := range counts {
		out[domain.Role(role)] = n
	}

	return out, nil
}

func (r *ProfileRepository) domainToDao(p domain.Profile) dao.Profile {
	var position *string
	if p.TekxPosition != nil {
		s := string(*p.TekxPosition)
		position = &s
	}

	return dao.Profile{
		ID:           p.ID,
		Email:        p.Email,
		Password:     p.Password,
		FullName:     p.FullName,
		Role:         string(p.Role),
		TekxPosition: position,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (r *ProfileRepository) daoToDomain(p dao.Profile) domain.Profile {
	var position *domain.TekxPosition
	if p.TekxPosition != nil {
		tp := domain.TekxPosition(*p.TekxPosition)
		position = &tp
	}

	return domain.Profile{
		ID:           p.ID,
		Email:        p.Email,
		Password:     p.Password,
		FullName:     p.FullName,
		Role:         domain.Role(p.Role),
		TekxPosition: position,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
