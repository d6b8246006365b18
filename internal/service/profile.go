package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/hubicito/hubicito-api/internal/domain"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile domain.Profile) (domain.Profile, error)
	FindByID(ctx context.Context, id uuid.UUID) (domain.Profile, error)
	FindByEmail(ctx context.Context, email string) (domain.Profile, error)
	FindByRoles(ctx context.Context, roles ...domain.Role) ([]domain.Profile, error)
	Update(ctx context.Context, profile domain.Profile) (domain.Profile, error)
	CountByRole(ctx context.Context) (map[domain.Role]int64, error)
}

type ProfileService struct {
	repo ProfileRepository
}

func NewProfileService(repo ProfileRepository) *ProfileService {
	return &ProfileService{
		repo: repo,
	}
}

func (s *ProfileService) Me(ctx context.Context, actor domain.Actor) (domain.Profile, error) {
	if !actor.IsAuthenticated() {
		return domain.Profile{}, domain.ErrUnauthenticated
	}

	profile, err := s.repo.FindByID(ctx, actor.ID)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return profile, nil
}

// UpdateMe applies a self-service change. Nobody changes their own role here.
func (s *ProfileService) UpdateMe(ctx context.Context, actor domain.Actor, update domain.ProfileUpdate) (domain.Profile, error) {
	if !actor.IsAuthenticated() {
		return domain.Profile{}, domain.ErrUnauthenticated
	}
	if update.Role != nil {
		return domain.Profile{}, domain.ErrForbidden
	}

	return s.apply(ctx, actor.ID, update)
}

func (s *ProfileService) apply(ctx context.Context, id uuid.UUID, update domain.ProfileUpdate) (domain.Profile, error) {
	if err := validateProfileUpdate(update); err != nil {
		return domain.Profile{}, err
	}

	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if update.FullName != nil {
		profile.FullName = strings.TrimSpace(*update.FullName)
	}
	if update.Role != nil {
		profile.Role = *update.Role
	}
	if update.TekxPosition != nil {
		position := *update.TekxPosition
		profile.TekxPosition = &position
	}

	updated, err := s.repo.Update(ctx, profile)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func validateProfileUpdate(update domain.ProfileUpdate) error {
	if update.FullName != nil && strings.TrimSpace(*update.FullName) == "" {
		return domain.NewValidationError(fmt.Errorf("full_name: cannot be blank"))
	}
	if update.Role != nil && !update.Role.Valid() {
		return domain.NewValidationError(fmt.Errorf("role: unknown role %q", *update.Role))
	}
	if update.TekxPosition != nil && !update.TekxPosition.Valid() {
		return domain.NewValidationError(fmt.Errorf("tekx_position: unknown position %q", *update.TekxPosition))
	}
	return nil
}
