package wizard

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/hubicito/hubicito-api/internal/domain"
)

// Steps of the project form, in order.
const (
	StepBasics = iota
	StepFunctional
	StepTechnical
	StepDeliverables
	StepReleases

	LastStep = StepReleases
)

var stepNames = [...]string{
	StepBasics:       "basics",
	StepFunctional:   "functional_requirements",
	StepTechnical:    "technical_details",
	StepDeliverables: "deliverables",
	StepReleases:     "releases",
}

func StepName(step int) string {
	if step < 0 || step > LastStep {
		return ""
	}
	return stepNames[step]
}

// Saver persists the form content for its owner.
type Saver interface {
	Save(ctx context.Context, actor domain.Actor, project domain.Project, status domain.ProjectStatus) (domain.Project, error)
}

// Patch is a partial form update. Nil fields are left untouched.
type Patch struct {
	Name               *string               `json:"name"`
	Summary            *string               `json:"summary"`
	Description        *string               `json:"description"`
	FunctionalPurposes *[]string             `json:"functional_purposes"`
	Languages          *[]string             `json:"languages"`
	Resources          *[]string             `json:"resources"`
	Deliverables       *[]domain.Deliverable `json:"deliverables"`
	Releases           *[]domain.Release     `json:"releases"`
	TotalEstimatedDays *int                  `json:"total_estimated_days"`
}

// State is a copy of the form at one point in time.
type State struct {
	ID       uuid.UUID      `json:"id"`
	Step     int            `json:"step"`
	StepName string         `json:"step_name"`
	Project  domain.Project `json:"project"`
}

// Controller drives one multi-step project form. It is safe for concurrent
// use. mu is held across a save; touched is read without it.
type Controller struct {
	mu    sync.Mutex
	id    uuid.UUID
	actor domain.Actor
	saver Saver
	step  int
	data  domain.Project
	// itemized is set once the form has carried deliverables.
	itemized bool
	touched  atomic.Int64
	now      func() time.Time
}

func New(actor domain.Actor, saver Saver) *Controller {
	c := &Controller{
		id:    uuid.New(),
		actor: actor,
		saver: saver,
		now:   time.Now,
		data: domain.Project{
			Status: domain.ProjectDraft,
		},
	}
	c.touch()
	return c
}

// FromProject opens an existing project for editing.
func FromProject(actor domain.Actor, saver Saver, project domain.Project) *Controller {
	c := New(actor, saver)
	c.data = cloneProject(project)
	c.itemized = len(project.Deliverables) > 0
	return c
}

func (c *Controller) ID() uuid.UUID {
	return c.id
}

func (c *Controller) Owner() uuid.UUID {
	return c.actor.ID
}

// UpdateFormData merges patch into the form and refreshes the day total and
// credits.
func (c *Controller) UpdateFormData(patch Patch) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()

	d := &c.data
	if patch.Name != nil {
		d.Name = *patch.Name
	}
	if patch.Summary != nil {
		d.Summary = *patch.Summary
	}
	if patch.Description != nil {
		d.Description = *patch.Description
	}
	if patch.FunctionalPurposes != nil {
		d.FunctionalPurposes = append([]string(nil), *patch.FunctionalPurposes...)
	}
	if patch.Languages != nil {
		d.Languages = append([]string(nil), *patch.Languages...)
	}
	if patch.Resources != nil {
		d.Resources = append([]string(nil), *patch.Resources...)
	}
	if patch.Deliverables != nil {
		d.Deliverables = append([]domain.Deliverable(nil), *patch.Deliverables...)
		c.itemized = true
	}
	if patch.Releases != nil {
		d.Releases = append([]domain.Release(nil), *patch.Releases...)
	}
	if patch.TotalEstimatedDays != nil {
		d.TotalEstimatedDays = *patch.TotalEstimatedDays
	}
	d.Recompute(c.itemized)

	return c.state()
}

func (c *Controller) GoToNextStep() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()

	if c.step < LastStep {
		c.step++
	}
	return c.state()
}

func (c *Controller) GoToPreviousStep() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()

	if c.step > 0 {
		c.step--
	}
	return c.state()
}

// GoToStep jumps to step. It reports false and changes nothing when step is
// out of range.
func (c *Controller) GoToStep(step int) (State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()

	if step < 0 || step > LastStep {
		return c.state(), false
	}
	c.step = step
	return c.state(), true
}

func (c *Controller) SaveAsDraft(ctx context.Context) (State, error) {
	return c.save(ctx, domain.ProjectDraft)
}

func (c *Controller) SubmitProject(ctx context.Context) (State, error) {
	return c.save(ctx, domain.ProjectSubmitted)
}

// save hands a copy of the form to the saver. The form only takes the stored
// record back on success.
func (c *Controller) save(ctx context.Context, status domain.ProjectStatus) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()

	if !c.actor.IsAuthenticated() {
		return c.state(), domain.ErrUnauthenticated
	}

	saved, err := c.saver.Save(ctx, c.actor, cloneProject(c.data), status)
	if err != nil {
		return c.state(), fmt.Errorf("c.saver.Save -> %w", err)
	}

	c.data = cloneProject(saved)

	return c.state(), nil
}

func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state()
}

func (c *Controller) lastTouched() time.Time {
	return time.Unix(0, c.touched.Load())
}

func (c *Controller) touch() {
	c.touched.Store(c.now().UnixNano())
}

func (c *Controller) state() State {
	return State{
		ID:       c.id,
		Step:     c.step,
		StepName: StepName(c.step),
		Project:  cloneProject(c.data),
	}
}

func cloneProject(p domain.Project) domain.Project {
	p.FunctionalPurposes = append([]string(nil), p.FunctionalPurposes...)
	p.Languages = append([]string(nil), p.Languages...)
	p.Resources = append([]string(nil), p.Resources...)
	p.Deliverables = append([]domain.Deliverable(nil), p.Deliverables...)
	p.Releases = append([]domain.Release(nil), p.Releases...)
	return p
}
