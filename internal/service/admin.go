package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hubicito/hubicito-api/internal/domain"
)

type StatsRepositories struct {
	Profiles interface {
		CountByRole(ctx context.Context) (map[domain.Role]int64, error)
	}
	Projects interface {
		CountByStatus(ctx context.Context) (map[domain.ProjectStatus]int64, error)
		CountLikes(ctx context.Context) (int64, error)
	}
	Events interface {
		CountByStatus(ctx context.Context) (map[domain.EventStatus]int64, error)
	}
}

type NewAdminUser struct {
	Email    string
	Password string
	FullName string
	Role     domain.Role
}

// AdminService holds the privileged account procedures. Only super admins
// create or change admin accounts; any admin may read users and stats.
type AdminService struct {
	profiles *ProfileService
	repo     ProfileRepository
	stats    StatsRepositories
}

func NewAdminService(repo ProfileRepository, stats StatsRepositories) *AdminService {
	return &AdminService{
		profiles: NewProfileService(repo),
		repo:     repo,
		stats:    stats,
	}
}

func (s *AdminService) CreateAdminUser(ctx context.Context, actor domain.Actor, user NewAdminUser) (domain.Profile, error) {
	if err := requireSuperAdmin(actor); err != nil {
		return domain.Profile{}, err
	}
	if user.Role != domain.RoleAdmin && user.Role != domain.RoleSuperAdmin {
		return domain.Profile{}, domain.NewValidationError(fmt.Errorf("role: must be admin or super_admin"))
	}

	if err := checkEmailFree(ctx, s.repo, user.Email); err != nil {
		return domain.Profile{}, err
	}

	hashedPassword, err := hashPassword(user.Password)
	if err != nil {
		return domain.Profile{}, err
	}

	created, err := s.repo.Create(ctx, domain.Profile{
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role,
		Password: hashedPassword,
	})
	if err != nil {
		return domain.Profile{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AdminService) UpdateAdminUser(ctx context.Context, actor domain.Actor, id uuid.UUID, update domain.ProfileUpdate) (domain.Profile, error) {
	if err := requireSuperAdmin(actor); err != nil {
		return domain.Profile{}, err
	}
	if id == actor.ID && update.Role != nil && *update.Role != actor.Role {
		return domain.Profile{}, fmt.Errorf("cannot change own role: %w", domain.ErrForbidden)
	}

	return s.profiles.apply(ctx, id, update)
}

func (s *AdminService) ListUsers(ctx context.Context, actor domain.Actor, roles ...domain.Role) ([]domain.Profile, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	profiles, err := s.repo.FindByRoles(ctx, roles...)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByRoles -> %w", err)
	}

	return profiles, nil
}

func (s *AdminService) GetStats(ctx context.Context, actor domain.Actor) (domain.AdminStats, error) {
	if err := requireAdmin(actor); err != nil {
		return domain.AdminStats{}, err
	}

	roles, err := s.stats.Profiles.CountByRole(ctx)
	if err != nil {
		return domain.AdminStats{}, fmt.Errorf("s.stats.Profiles.CountByRole -> %w", err)
	}
	projects, err := s.stats.Projects.CountByStatus(ctx)
	if err != nil {
		return domain.AdminStats{}, fmt.Errorf("s.stats.Projects.CountByStatus -> %w", err)
	}
	events, err := s.stats.Events.CountByStatus(ctx)
	if err != nil {
		return domain.AdminStats{}, fmt.Errorf("s.stats.Events.CountByStatus -> %w", err)
	}
	likes, err := s.stats.Projects.CountLikes(ctx)
	if err != nil {
		return domain.AdminStats{}, fmt.Errorf("s.stats.Projects.CountLikes -> %w", err)
	}

	return domain.AdminStats{
		Students:         roles[domain.RoleStudent],
		Admins:           roles[domain.RoleAdmin],
		SuperAdmins:      roles[domain.RoleSuperAdmin],
		ProjectsByStatus: projects,
		EventsByStatus:   events,
		TotalLikes:       likes,
	}, nil
}

func requireSuperAdmin(actor domain.Actor) error {
	if !actor.IsAuthenticated() {
		return domain.ErrUnauthenticated
	}
	if !actor.IsSuperAdmin() {
		return domain.ErrForbidden
	}
	return nil
}
