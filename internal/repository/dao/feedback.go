package dao

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectFeedback struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index"`
	SenderID  uuid.UUID `gorm:"type:uuid;not null"`
	Message   string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`

	SenderName string `gorm:"->;-:migration"`
}

func (ProjectFeedback) TableName() string {
	return "project_feedback"
}

func (f *ProjectFeedback) BeforeCreate(*gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

type FeedbackDAO struct {
	db *gorm.DB
}

func NewFeedbackDAO(db *gorm.DB) *FeedbackDAO {
	return &FeedbackDAO{
		db: db,
	}
}

func (d *FeedbackDAO) Insert(ctx context.Context, feedback ProjectFeedback) (ProjectFeedback, error) {
	if result := d.db.WithContext(ctx).Omit("SenderName").Create(&feedback); result.Error != nil {
		return ProjectFeedback{}, result.Error
	}

	return feedback, nil
}

// FindByProjectID returns the thread of a project oldest first, with the
// sender's name joined from profiles.
func (d *FeedbackDAO) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]ProjectFeedback, error) {
	var feedback []ProjectFeedback

	result := d.db.WithContext(ctx).
		Select("project_feedback.*, profiles.full_name AS sender_name").
		Joins("LEFT JOIN profiles ON profiles.id = project_feedback.sender_id").
		Where("project_feedback.project_id = ?", projectID).
		Order("project_feedback.created_at ASC").
		Find(&feedback)
	if result.Error != nil {
		return nil, result.Error
	}

	return feedback, nil
}
