package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hubicito/hubicito-api/internal/domain"
	"github.com/hubicito/hubicito-api/internal/repository"
)

var (
	ErrProfileEmailExists = repository.ErrProfileEmailExists
	ErrProfileNotFound    = repository.ErrProfileNotFound
	ErrWrongPassword      = errors.New("wrong password")
)

type AuthProfileRepository interface {
	Create(ctx context.Context, profile domain.Profile) (domain.Profile, error)
	FindByEmail(ctx context.Context, email string) (domain.Profile, error)
	FindByID(ctx context.Context, id uuid.UUID) (domain.Profile, error)
}

type AuthService struct {
	repo AuthProfileRepository
}

func NewAuthService(repo AuthProfileRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

// Signup creates a student profile. Other roles are only granted through
// AdminService.
func (s *AuthService) Signup(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	if err := checkEmailFree(ctx, s.repo, profile.Email); err != nil {
		return domain.Profile{}, err
	}

	hashedPassword, err := hashPassword(profile.Password)
	if err != nil {
		return domain.Profile{}, err
	}
	profile.Password = hashedPassword
	profile.Role = domain.RoleStudent

	created, err := s.repo.Create(ctx, profile)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Profile, error) {
	profile, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return domain.Profile{}, ErrProfileNotFound
		}

		return domain.Profile{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(password)); err != nil {
		return domain.Profile{}, ErrWrongPassword
	}

	return profile, nil
}

// ResolveActor loads the profile behind an authenticated session.
func (s *AuthService) ResolveActor(ctx context.Context, id uuid.UUID) (domain.Actor, error) {
	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Actor{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return profile.Actor(), nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

type emailFinder interface {
	FindByEmail(ctx context.Context, email string) (domain.Profile, error)
}

// checkEmailFree reports ErrProfileEmailExists when email is taken. Only a
// not-found lookup counts as free.
func checkEmailFree(ctx context.Context, repo emailFinder, email string) error {
	_, err := repo.FindByEmail(ctx, email)
	if err == nil {
		return ErrProfileEmailExists
	}
	if !errors.Is(err, repository.ErrProfileNotFound) {
		return fmt.Errorf("repo.FindByEmail -> %w", err)
	}
	return nil
}
