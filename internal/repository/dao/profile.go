package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrProfileEmailExists = errors.New("profile already exists")
	ErrProfileNotFound    = errors.New("profile not found")
)

type Profile struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`

	FullName     string `gorm:"not null"`
	Role         string `gorm:"not null;default:student;index"` // "student", "admin" or "super_admin"
	TekxPosition *string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Profile) TableName() string {
	return "profiles"
}

func (p *Profile) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type ProfileDAO struct {
	db *gorm.DB
}

func NewProfileDAO(db *gorm.DB) *ProfileDAO {
	return &ProfileDAO{
		db: db,
	}
}

func (d *ProfileDAO) Insert(ctx context.Context, profile Profile) (Profile, error) {
	result := d.db.WithContext(ctx).Create(&profile)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_profiles_email"`) {
			return Profile{}, ErrProfileEmailExists
		}

		return Profile{}, result.Error
	}

	return profile, nil
}

func (d *ProfileDAO) FindByID(ctx context.Context, id uuid.UUID) (Profile, error) {
	var profile Profile

	result := d.db.WithContext(ctx).First(&profile, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Profile{}, ErrProfileNotFound
		}

		return Profile{}, result.Error
	}

	return profile, nil
}

func (d *ProfileDAO) FindByEmail(ctx context.Context, email string) (Profile, error) {
	var profile Profile

	result := d.db.WithContext(ctx).First(&profile, "lower(email) = lower(?)", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Profile{}, ErrProfileNotFound
		}

		return Profile{}, result.Error
	}

	return profile, nil
}

// FindByRoles returns the profiles holding any of roles, newest first. No
// roles means every profile.
func (d *ProfileDAO) FindByRoles(ctx context.Context, roles []string) ([]Profile, error) {
	var profiles []Profile

	query := d.db.WithContext(ctx).Order("created_at DESC")
	if len(roles) > 0 {
		query = query.Where("role IN ?", roles)
	}

	if result := query.Find(&profiles); result.Error != nil {
		return nil, result.Error
	}

	return profiles, nil
}

// Update writes the mutable columns of profile.
func (d *ProfileDAO) Update(ctx context.Context, profile Profile) (Profile, error) {
	result := d.db.WithContext(ctx).
		Model(&Profile{ID: profile.ID}).
		Select("full_name", "role", "tekx_position", "updated_at").
		Updates(&profile)
	if result.Error != nil {
		return Profile{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Profile{}, ErrProfileNotFound
	}

	return d.FindByID(ctx, profile.ID)
}

func (d *ProfileDAO) CountByRole(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Role  string
		Count int64
	}

	result := d.db.WithContext(ctx).Model(&Profile{}).Select("role, count(*) AS count").Group("role").Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Role] = r.Count
	}

	return counts, nil
}
