package domain

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
)

// DefaultApprovalFeedback is stored when an admin approves a presentation
// without writing anything.
const DefaultApprovalFeedback = "Presentation approved"

type EventType string

const (
	EventTalk       EventType = "talk"
	EventConference EventType = "conference"
	EventWorkshop   EventType = "workshop"
	EventUserGroup  EventType = "user_group"
	EventHackathon  EventType = "hackathon"
)

func (t EventType) Valid() bool {
	switch t {
	case EventTalk, EventConference, EventWorkshop, EventUserGroup, EventHackathon:
		return true
	}
	return false
}

type EventStatus string

const (
	EventPending  EventStatus = "pending"
	EventApproved EventStatus = "approved"
	EventRejected EventStatus = "rejected"
)

var EventStatuses = []EventStatus{EventPending, EventApproved, EventRejected}

func (s EventStatus) Valid() bool {
	return s == EventPending || s == EventApproved || s == EventRejected
}

type Event struct {
	ID            uuid.UUID   `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Type          EventType   `json:"type"`
	StartTime     time.Time   `json:"start_time"`
	EndTime       time.Time   `json:"end_time"`
	Location      string      `json:"location"`
	PresenterID   uuid.UUID   `json:"presenter_id"`
	PresenterName string      `json:"presenter_name"`
	Status        EventStatus `json:"status"`
	FileURL       *string     `json:"file_url,omitempty"`
	FilePath      *string     `json:"-"`
	AdminFeedback *string     `json:"admin_feedback,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

func (e Event) IsPresentedBy(a Actor) bool {
	return a.IsAuthenticated() && e.PresenterID == a.ID
}

func (e Event) CanBeReadBy(a Actor) bool {
	return a.IsAdmin() || e.IsPresentedBy(a) || e.Status == EventApproved
}

// IsEditable is true while the presenter may still change the request.
func (e Event) IsEditable() bool {
	return e.Status == EventPending || e.Status == EventRejected
}

func (e Event) IsDeletable() bool {
	return e.Status != EventApproved
}

func (e Event) Validate() error {
	err := validation.ValidateStruct(&e,
		validation.Field(&e.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&e.Description, validation.Length(0, 5000)),
		validation.Field(&e.Type, validation.Required, validation.By(func(interface{}) error {
			if !e.Type.Valid() {
				return errors.New("must be one of talk, conference, workshop, user_group, hackathon")
			}
			return nil
		})),
		validation.Field(&e.StartTime, validation.Required),
		validation.Field(&e.EndTime, validation.Required, validation.By(func(interface{}) error {
			if !e.EndTime.After(e.StartTime) {
				return errors.New("must be after the start time")
			}
			return nil
		})),
		validation.Field(&e.Location, validation.Length(0, 200)),
		validation.Field(&e.PresenterID, requiredUUID),
	)

	return NewValidationError(err)
}

// Approve moves a pending presentation to approved. An empty feedback is
// replaced by DefaultApprovalFeedback.
func (e *Event) Approve(feedback string) error {
	if e.Status != EventPending {
		return ErrInvalidTransition
	}

	feedback = strings.TrimSpace(feedback)
	if feedback == "" {
		feedback = DefaultApprovalFeedback
	}

	e.Status = EventApproved
	e.AdminFeedback = &feedback

	return nil
}

// Reject moves a pending presentation to rejected. Feedback is mandatory.
func (e *Event) Reject(feedback string) error {
	if err := ValidateRejectionFeedback(feedback); err != nil {
		return err
	}
	if e.Status != EventPending {
		return ErrInvalidTransition
	}

	feedback = strings.TrimSpace(feedback)
	e.Status = EventRejected
	e.AdminFeedback = &feedback

	return nil
}

func ValidateRejectionFeedback(feedback string) error {
	if strings.TrimSpace(feedback) == "" {
		return NewValidationError(ErrFeedbackRequired)
	}
	return nil
}
