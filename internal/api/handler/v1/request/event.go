package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/hubicito/hubicito-api/internal/domain"
	"github.com/hubicito/hubicito-api/internal/service"
)

var errEndBeforeStart = errors.New("end_time must be after start_time")

type EventRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Type        domain.EventType `json:"type"`
	StartTime   time.Time        `json:"start_time"`
	EndTime     time.Time        `json:"end_time"`
	Location    string           `json:"location"`
}

func (req *EventRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Description, validation.Length(0, 5000)),
		validation.Field(&req.Type, validation.Required, validation.In(
			domain.EventTalk, domain.EventConference, domain.EventWorkshop, domain.EventUserGroup, domain.EventHackathon,
		)),
		validation.Field(&req.StartTime, validation.Required),
		validation.Field(&req.EndTime, validation.Required),
		validation.Field(&req.Location, validation.Length(0, 200)),
	)
	if err != nil {
		return err
	}

	if !req.EndTime.After(req.StartTime) {
		return errEndBeforeStart
	}

	return nil
}

func (req *EventRequest) ToDetails() service.EventDetails {
	return service.EventDetails{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
	}
}

// ReviewRequest is the body of approve and reject. Whether feedback is
// mandatory depends on the decision and is checked by the service.
type ReviewRequest struct {
	Feedback string `json:"feedback"`
}
