package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound = errors.New("project not found")
)

type Deliverable struct {
	Name   string `json:"name"`
	Detail string `json:"detail"`
	Days   int    `json:"days"`
}

type Release struct {
	Name   string     `json:"name"`
	Date   *time.Time `json:"date,omitempty"`
	Detail string     `json:"detail"`
}

type Project struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index"`

	Name        string `gorm:"not null"`
	Summary     string
	Description string

	FunctionalPurposes pq.StringArray `gorm:"type:text[]"`
	Languages          pq.StringArray `gorm:"type:text[]"`
	Resources          pq.StringArray `gorm:"type:text[]"`

	Deliverables datatypes.JSONSlice[Deliverable]
	Releases     datatypes.JSONSlice[Release]

	TotalEstimatedDays int    `gorm:"not null;default:0"`
	Credits            int    `gorm:"not null;default:0"`
	Status             string `gorm:"not null;index"` // see domain.ProjectStatus
	AdminFeedback      *string
	PresentationDate   *time.Time
	LikesCount         int `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Project) TableName() string {
	return "projects"
}

func (p *Project) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ProjectFilter narrows a project listing. VisibleTo, when set, keeps only
// the projects owned by that user plus the ones in PublicStatuses.
type ProjectFilter struct {
	Statuses       []string
	OwnerID        *uuid.UUID
	VisibleTo      *uuid.UUID
	PublicStatuses []string
}

type ProjectDAO struct {
	db *gorm.DB
}

func NewProjectDAO(db *gorm.DB) *ProjectDAO {
	return &ProjectDAO{
		db: db,
	}
}

func (d *ProjectDAO) Insert(ctx context.Context, project Project) (Project, error) {
	project.LikesCount = 0

	if result := d.db.WithContext(ctx).Create(&project); result.Error != nil {
		return Project{}, result.Error
	}

	return project, nil
}

// Update overwrites the content and status of an existing project. The like
// counter and creation time are never written here.
func (d *ProjectDAO) Update(ctx context.Context, project Project) (Project, error) {
	result := d.db.WithContext(ctx).
		Model(&Project{ID: project.ID}).
		Select("*").
		Omit("id", "owner_id", "likes_count", "created_at").
		Updates(&project)
	if result.Error != nil {
		return Project{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Project{}, ErrProjectNotFound
	}

	return d.FindByID(ctx, project.ID)
}

func (d *ProjectDAO) UpdateReview(ctx context.Context, id uuid.UUID, status string, feedback *string, presentationDate *time.Time) (Project, error) {
	updates := map[string]interface{}{
		"status": status,
	}
	if feedback != nil {
		updates["admin_feedback"] = *feedback
	}
	if presentationDate != nil {
		updates["presentation_date"] = *presentationDate
	}

	result := d.db.WithContext(ctx).Model(&Project{ID: id}).Updates(updates)
	if result.Error != nil {
		return Project{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Project{}, ErrProjectNotFound
	}

	return d.FindByID(ctx, id)
}

func (d *ProjectDAO) FindByID(ctx context.Context, id uuid.UUID) (Project, error) {
	var project Project

	result := d.db.WithContext(ctx).First(&project, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Project{}, ErrProjectNotFound
		}

		return Project{}, result.Error
	}

	return project, nil
}

func (d *ProjectDAO) Find(ctx context.Context, filter ProjectFilter) ([]Project, error) {
	var projects []Project

	query := d.db.WithContext(ctx).Order("created_at DESC")
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.VisibleTo != nil {
		query = query.Where("owner_id = ? OR status IN ?", *filter.VisibleTo, filter.PublicStatuses)
	}

	if result := query.Find(&projects); result.Error != nil {
		return nil, result.Error
	}

	return projects, nil
}

func (d *ProjectDAO) Delete(ctx context.Context, id uuid.UUID) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&ProjectLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&ProjectFeedback{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&Project{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrProjectNotFound
		}

		return nil
	})
}

func (d *ProjectDAO) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return countByStatus(d.db.WithContext(ctx), &Project{})
}
