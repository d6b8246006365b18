package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/hubicito/hubicito-api/internal/domain"
	"github.com/hubicito/hubicito-api/internal/repository"
)

type mockProjectRepo struct {
	mock.Mock
}

func (m *mockProjectRepo) Create(ctx context.Context, project domain.Project) (domain.Project, error) {
	args := m.Called(ctx, project)
	if fn, ok := args.Get(0).(func(context.Context, domain.Project) domain.Project); ok {
		return fn(ctx, project), args.Error(1)
	}
	return args.Get(0).(domain.Project), args.Error(1)
}

func (m *mockProjectRepo) Update(ctx context.Context, project domain.Project) (domain.Project, error) {
	args := m.Called(ctx, project)
	if fn, ok := args.Get(0).(func(context.Context, domain.Project) domain.Project); ok {
		return fn(ctx, project), args.Error(1)
	}
	return args.Get(0).(domain.Project), args.Error(1)
}

func (m *mockProjectRepo) UpdateReview(ctx context.Context, id uuid.UUID, status domain.ProjectStatus, feedback *string, presentationDate *time.Time) (domain.Project, error) {
	args := m.Called(ctx, id, status, feedback, presentationDate)
	return args.Get(0).(domain.Project), args.Error(1)
}

func (m *mockProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (domain.Project, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Project), args.Error(1)
}

func (m *mockProjectRepo) Find(ctx context.Context, q repository.ProjectQuery) ([]domain.Project, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *mockProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockProjectRepo) ToggleLike(ctx context.Context, projectID, userID uuid.UUID) (domain.LikeResult, error) {
	args := m.Called(ctx, projectID, userID)
	return args.Get(0).(domain.LikeResult), args.Error(1)
}

func (m *mockProjectRepo) IsLiked(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, projectID, userID)
	return args.Bool(0), args.Error(1)
}

type mockEventRepo struct {
	mock.Mock
}

func (m *mockEventRepo) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	args := m.Called(ctx, event)
	if fn, ok := args.Get(0).(func(context.Context, domain.Event) domain.Event); ok {
		return fn(ctx, event), args.Error(1)
	}
	return args.Get(0).(domain.Event), args.Error(1)
}

func (m *mockEventRepo) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	args := m.Called(ctx, event)
	if fn, ok := args.Get(0).(func(context.Context, domain.Event) domain.Event); ok {
		return fn(ctx, event), args.Error(1)
	}
	return args.Get(0).(domain.Event), args.Error(1)
}

func (m *mockEventRepo) FindByID(ctx context.Context, id uuid.UUID) (domain.Event, error) {
	args := m.Called(ctx, id)
	if fn, ok := args.Get(0).(func(context.Context, uuid.UUID) domain.Event); ok {
		return fn(ctx, id), args.Error(1)
	}
	return args.Get(0).(domain.Event), args.Error(1)
}

func (m *mockEventRepo) Find(ctx context.Context, q repository.EventQuery) ([]domain.Event, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.Event), args.Error(1)
}

func (m *mockEventRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// recordingNotifier keeps what it was told about.
type recordingNotifier struct {
	projects []domain.Project
	events   []domain.Event
}

func (n *recordingNotifier) ProjectReviewed(_ context.Context, project domain.Project) {
	n.projects = append(n.projects, project)
}

func (n *recordingNotifier) PresentationReviewed(_ context.Context, event domain.Event) {
	n.events = append(n.events, event)
}

// profileStore is an in-memory ProfileRepository. A non-nil lookupErr is
// returned by every FindByEmail.
type profileStore struct {
	byID      map[uuid.UUID]domain.Profile
	lookupErr error
}

func newProfileStore(profiles ...domain.Profile) *profileStore {
	s := &profileStore{byID: map[uuid.UUID]domain.Profile{}}
	for _, p := range profiles {
		s.byID[p.ID] = p
	}
	return s
}

func (s *profileStore) Create(_ context.Context, profile domain.Profile) (domain.Profile, error) {
	for _, p := range s.byID {
		if p.Email == profile.Email {
			return domain.Profile{}, repository.ErrProfileEmailExists
		}
	}
	profile.ID = uuid.New()
	s.byID[profile.ID] = profile
	return profile, nil
}

func (s *profileStore) FindByID(_ context.Context, id uuid.UUID) (domain.Profile, error) {
	p, ok := s.byID[id]
	if !ok {
		return domain.Profile{}, repository.ErrProfileNotFound
	}
	return p, nil
}

func (s *profileStore) FindByEmail(_ context.Context, email string) (domain.Profile, error) {
	if s.lookupErr != nil {
		return domain.Profile{}, s.lookupErr
	}
	for _, p := range s.byID {
		if p.Email == email {
			return p, nil
		}
	}
	return domain.Profile{}, repository.ErrProfileNotFound
}

func (s *profileStore) FindByRoles(_ context.Context, roles ...domain.Role) ([]domain.Profile, error) {
	var out []domain.Profile
	for _, p := range s.byID {
		for _, r := range roles {
			if p.Role == r {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (s *profileStore) Update(_ context.Context, profile domain.Profile) (domain.Profile, error) {
	if _, ok := s.byID[profile.ID]; !ok {
		return domain.Profile{}, repository.ErrProfileNotFound
	}
	s.byID[profile.ID] = profile
	return profile, nil
}

func (s *profileStore) CountByRole(context.Context) (map[domain.Role]int64, error) {
	counts := map[domain.Role]int64{}
	for _, p := range s.byID {
		counts[p.Role]++
	}
	return counts, nil
}

var (
	student    = domain.Actor{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Role: domain.RoleStudent, FullName: "Stu Dent"}
	other      = domain.Actor{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), Role: domain.RoleStudent, FullName: "Ann Other"}
	admin      = domain.Actor{ID: uuid.MustParse("33333333-3333-3333-3333-333333333333"), Role: domain.RoleAdmin, FullName: "Ad Min"}
	superAdmin = domain.Actor{ID: uuid.MustParse("44444444-4444-4444-4444-444444444444"), Role: domain.RoleSuperAdmin, FullName: "Sue Per"}
)
