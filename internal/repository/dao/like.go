package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectLike struct {
	ProjectID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
}

func (ProjectLike) TableName() string {
	return "project_likes"
}

type LikeDAO struct {
	db *gorm.DB
}

func NewLikeDAO(db *gorm.DB) *LikeDAO {
	return &LikeDAO{
		db: db,
	}
}

// Toggle flips the like of userID on projectID and stores the new count on
// the project. The project row stays locked for the whole transaction, so
// concurrent toggles on one project are applied one after the other and the
// stored count always matches the relation table.
func (d *LikeDAO) Toggle(ctx context.Context, projectID, userID uuid.UUID) (liked bool, count int, err error) {
	err = d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project Project
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&project, "id = ?", projectID)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return ErrProjectNotFound
			}
			return result.Error
		}

		result = tx.Where("project_id = ? AND user_id = ?", projectID, userID).Delete(&ProjectLike{})
		if result.Error != nil {
			return result.Error
		}

		liked = result.RowsAffected == 0
		if liked {
			if err := tx.Create(&ProjectLike{ProjectID: projectID, UserID: userID}).Error; err != nil {
				return err
			}
		}

		var n int64
		if err := tx.Model(&ProjectLike{}).Where("project_id = ?", projectID).Count(&n).Error; err != nil {
			return err
		}
		if err := tx.Model(&Project{}).Where("id = ?", projectID).Update("likes_count", n).Error; err != nil {
			return err
		}

		count = int(n)
		return nil
	})

	return liked, count, err
}

func (d *LikeDAO) Exists(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	var n int64

	result := d.db.WithContext(ctx).Model(&ProjectLike{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&n)
	if result.Error != nil {
		return false, result.Error
	}

	return n > 0, nil
}

func (d *LikeDAO) CountAll(ctx context.Context) (int64, error) {
	var n int64

	if result := d.db.WithContext(ctx).Model(&ProjectLike{}).Count(&n); result.Error != nil {
		return 0, result.Error
	}

	return n, nil
}
