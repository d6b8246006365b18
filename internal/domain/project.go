package domain

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
)

// DaysPerCredit is the number of estimated work days worth one credit.
const DaysPerCredit = 5

type Deliverable struct {
	Name   string `json:"name"`
	Detail string `json:"detail"`
	Days   int    `json:"days"`
}

func (d Deliverable) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&d.Detail, validation.Length(0, 2000)),
		validation.Field(&d.Days, validation.Min(0)),
	)
}

type Release struct {
	Name   string     `json:"name"`
	Date   *time.Time `json:"date,omitempty"`
	Detail string     `json:"detail"`
}

func (r Release) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&r.Detail, validation.Length(0, 2000)),
	)
}

type Project struct {
	ID                 uuid.UUID     `json:"id"`
	OwnerID            uuid.UUID     `json:"owner_id"`
	Name               string        `json:"name"`
	Summary            string        `json:"summary"`
	Description        string        `json:"description"`
	FunctionalPurposes []string      `json:"functional_purposes"`
	Languages          []string      `json:"languages"`
	Resources          []string      `json:"resources"`
	Deliverables       []Deliverable `json:"deliverables"`
	Releases           []Release     `json:"releases"`
	TotalEstimatedDays int           `json:"total_estimated_days"`
	Credits            int           `json:"credits"`
	Status             ProjectStatus `json:"status"`
	AdminFeedback      *string       `json:"admin_feedback,omitempty"`
	PresentationDate   *time.Time    `json:"presentation_date,omitempty"`
	LikesCount         int           `json:"likes_count"`
	Liked              bool          `json:"liked"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// CreditsForDays returns floor(days / DaysPerCredit).
func CreditsForDays(days int) int {
	q := days / DaysPerCredit
	if days%DaysPerCredit != 0 && days < 0 {
		q--
	}
	return q
}

func TotalDays(deliverables []Deliverable) int {
	total := 0
	for _, d := range deliverables {
		total += d.Days
	}
	return total
}

// Recompute refreshes the derived fields. An itemized project takes its day
// total from its deliverables, even once the list has been emptied again.
// Only a project that was never itemized keeps its hand-entered estimate.
func (p *Project) Recompute(itemized bool) {
	if itemized || len(p.Deliverables) > 0 {
		p.TotalEstimatedDays = TotalDays(p.Deliverables)
	}
	p.Credits = CreditsForDays(p.TotalEstimatedDays)
}

func (p Project) IsOwnedBy(a Actor) bool {
	return a.IsAuthenticated() && p.OwnerID == a.ID
}

// CanBeReadBy reports whether a may see p. Drafts and projects under review
// stay private to their owner and the admins.
func (p Project) CanBeReadBy(a Actor) bool {
	return a.IsAdmin() || p.IsOwnedBy(a) || p.Status.IsPublic()
}

// Validate checks the payload before it is written. It runs on the typed
// record so that deliverables and releases never reach storage malformed.
func (p Project) Validate() error {
	err := validation.ValidateStruct(&p,
		validation.Field(&p.OwnerID, requiredUUID),
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Summary, validation.Length(0, 500)),
		validation.Field(&p.Description, validation.Length(0, 10000)),
		validation.Field(&p.Deliverables),
		validation.Field(&p.Releases),
		validation.Field(&p.TotalEstimatedDays, validation.Min(0)),
		validation.Field(&p.Status, validation.Required, validation.By(func(interface{}) error {
			if !p.Status.Valid() {
				return errors.New("must be a valid project status")
			}
			return nil
		})),
	)

	return NewValidationError(err)
}
