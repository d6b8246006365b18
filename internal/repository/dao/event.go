package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound = errors.New("event not found")
)

type Event struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	Title       string `gorm:"not null"`
	Description string
	Type        string    `gorm:"not null;index"` // "talk", "conference", "workshop", "user_group" or "hackathon"
	StartTime   time.Time `gorm:"not null;index"`
	EndTime     time.Time `gorm:"not null"`
	Location    string

	PresenterID   uuid.UUID `gorm:"type:uuid;not null;index"`
	PresenterName string    `gorm:"not null"`

	Status        string `gorm:"not null;default:pending;index"`
	FileURL       *string
	FilePath      *string
	AdminFeedback *string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Event) TableName() string {
	return "events"
}

func (e *Event) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// EventFilter works like ProjectFilter: VisibleTo keeps the presenter's own
// events plus the ones in PublicStatuses.
type EventFilter struct {
	Statuses       []string
	Types          []string
	PresenterID    *uuid.UUID
	VisibleTo      *uuid.UUID
	PublicStatuses []string
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	if result := d.db.WithContext(ctx).Create(&event); result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) Update(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).
		Model(&Event{ID: event.ID}).
		Select("*").
		Omit("id", "presenter_id", "created_at").
		Updates(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Event{}, ErrEventNotFound
	}

	return d.FindByID(ctx, event.ID)
}

func (d *EventDAO) FindByID(ctx context.Context, id uuid.UUID) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).First(&event, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) Find(ctx context.Context, filter EventFilter) ([]Event, error) {
	var events []Event

	query := d.db.WithContext(ctx).Order("start_time ASC")
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if len(filter.Types) > 0 {
		query = query.Where("type IN ?", filter.Types)
	}
	if filter.PresenterID != nil {
		query = query.Where("presenter_id = ?", *filter.PresenterID)
	}
	if filter.VisibleTo != nil {
		query = query.Where("presenter_id = ? OR status IN ?", *filter.VisibleTo, filter.PublicStatuses)
	}

	if result := query.Find(&events); result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) Delete(ctx context.Context, id uuid.UUID) error {
	result := d.db.WithContext(ctx).Delete(&Event{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

func (d *EventDAO) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return countByStatus(d.db.WithContext(ctx), &Event{})
}
