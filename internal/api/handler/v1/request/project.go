package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/hubicito/hubicito-api/internal/domain"
	"github.com/hubicito/hubicito-api/internal/service"
	"github.com/hubicito/hubicito-api/internal/wizard"
)

// FormPatchRequest carries the fields of one form step. Only shape is
// checked here: the form accepts incomplete data until it is saved.
type FormPatchRequest struct {
	wizard.Patch
}

func (req *FormPatchRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Length(0, 200)),
		validation.Field(&req.Summary, validation.Length(0, 500)),
		validation.Field(&req.Description, validation.Length(0, 10000)),
	)
}

type ProjectStatusRequest struct {
	Status           domain.ProjectStatus `json:"status"`
	AdminFeedback    *string              `json:"admin_feedback,omitempty"`
	PresentationDate *time.Time           `json:"presentation_date,omitempty"`
}

func (req *ProjectStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required, validation.By(func(interface{}) error {
			if !req.Status.Valid() {
				return errors.New("must be a valid project status")
			}
			return nil
		})),
		validation.Field(&req.AdminFeedback, validation.Length(0, 5000)),
	)
}

func (req *ProjectStatusRequest) ToReview() service.ProjectReview {
	return service.ProjectReview{
		Status:           req.Status,
		Feedback:         req.AdminFeedback,
		PresentationDate: req.PresentationDate,
	}
}

type FeedbackRequest struct {
	Message string `json:"message"`
}

func (req *FeedbackRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Message, validation.Required, validation.Length(1, 5000)),
	)
}
