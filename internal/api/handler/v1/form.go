package v1

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hubicito/hubicito-api/internal/api/handler/v1/request"
	"github.com/hubicito/hubicito-api/internal/api/handler/v1/response"
	"github.com/hubicito/hubicito-api/internal/domain"
	"github.com/hubicito/hubicito-api/internal/wizard"
)

type FormProjectService interface {
	wizard.Saver
	OpenForEdit(ctx context.Context, actor domain.Actor, id uuid.UUID) (domain.Project, error)
}

// FormHandler exposes the multi-step project form. Forms live in memory and
// belong to the actor who opened them.
type FormHandler struct {
	store *wizard.Store
	svc   FormProjectService
}

func NewFormHandler(store *wizard.Store, svc FormProjectService) *FormHandler {
	return &FormHandler{
		store: store,
		svc:   svc,
	}
}

// HandleCreateForm godoc
// @Summary      Open an empty project form
// @Tags         forms
// @Produce      json
// @Success      201  {object}  wizard.State
// @Failure      401  {object}  response.Err
// @Router       /forms [post]
// @Security BearerAuth
func (h *FormHandler) HandleCreateForm(ctx *gin.Context) {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return
	}

	form := wizard.New(actor, h.svc)
	h.store.Put(form)

	ctx.JSON(http.StatusCreated, form.Snapshot())
}

// HandleEditProject godoc
// @Summary      Open a project form on an existing project
// @Description  Only draft, submitted and rejected projects can be edited by their owner.
// @Tags         forms
// @Produce      json
// @Param        projectID  path      string  true  "project id"
// @Success      201  {object}  wizard.State
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Router       /projects/{projectID}/form [post]
// @Security BearerAuth
func (h *FormHandler) HandleEditProject(ctx *gin.Context) {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return
	}
	id, ok := uuidParam(ctx, "projectID")
	if !ok {
		return
	}

	project, err := h.svc.OpenForEdit(ctx.Request.Context(), actor, id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleEditProject -> h.svc.OpenForEdit", err, id)
		return
	}

	form := wizard.FromProject(actor, h.svc, project)
	h.store.Put(form)

	ctx.JSON(http.StatusCreated, form.Snapshot())
}

// HandleGetForm godoc
// @Summary      Get a project form
// @Tags         forms
// @Produce      json
// @Param        formID  path      string  true  "form id"
// @Success      200  {object}  wizard.State
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /forms/{formID} [get]
// @Security BearerAuth
func (h *FormHandler) HandleGetForm(ctx *gin.Context) {
	form, ok := h.form(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, form.Snapshot())
}

// HandleUpdateForm godoc
// @Summary      Update form fields
// @Description  Merges the given fields. Day total and credits are derived from the deliverables.
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        formID   path      string                    true  "form id"
// @Param        request  body      request.FormPatchRequest  true  "request body"
// @Success      200  {object}  wizard.State
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /forms/{formID} [patch]
// @Security BearerAuth
func (h *FormHandler) HandleUpdateForm(ctx *gin.Context) {
	form, ok := h.form(ctx)
	if !ok {
		return
	}

	var req request.FormPatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	ctx.JSON(http.StatusOK, form.UpdateFormData(req.Patch))
}

// HandleNextStep godoc
// @Summary      Go to the next form step
// @Tags         forms
// @Produce      json
// @Param        formID  path      string  true  "form id"
// @Success      200  {object}  wizard.State
// @Failure      404  {object}  response.Err
// @Router       /forms/{formID}/next [post]
// @Security BearerAuth
func (h *FormHandler) HandleNextStep(ctx *gin.Context) {
	form, ok := h.form(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, form.GoToNextStep())
}

// HandlePreviousStep godoc
// @Summary      Go to the previous form step
// @Tags         forms
// @Produce      json
// @Param        formID  path      string  true  "form id"
// @Success      200  {object}  wizard.State
// @Failure      404  {object}  response.Err
// @Router       /forms/{formID}/previous [post]
// @Security BearerAuth
func (h *FormHandler) HandlePreviousStep(ctx *gin.Context) {
	form, ok := h.form(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, form.GoToPreviousStep())
}

// HandleGoToStep godoc
// @Summary      Jump to a form step
// @Description  Steps outside 0..4 are refused with 400 and leave the form unchanged.
// @Tags         forms
// @Produce      json
// @Param        formID  path      string  true  "form id"
// @Param        step    path      int     true  "step index"
// @Success      200  {object}  wizard.State
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /forms/{formID}/step/{step} [put]
// @Security BearerAuth
func (h *FormHandler) HandleGoToStep(ctx *gin.Context) {
	form, ok := h.form(ctx)
	if !ok {
		return
	}

	step, err := strconv.Atoi(ctx.Param("step"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid step: %w", err)))
		return
	}

	state, ok := form.GoToStep(step)
	if !ok {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("step must be between 0 and %d", wizard.LastStep)))
		return
	}

	ctx.JSON(http.StatusOK, state)
}

// HandleSaveDraft godoc
// @Summary      Save the form as a draft project
// @Tags         forms
// @Produce      json
// @Param        formID  path      string  true  "form id"
// @Success      200  {object}  wizard.State
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Router       /forms/{formID}/draft [post]
// @Security BearerAuth
func (h *FormHandler) HandleSaveDraft(ctx *gin.Context) {
	form, ok := h.form(ctx)
	if !ok {
		return
	}

	state, err := form.SaveAsDraft(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleSaveDraft -> form.SaveAsDraft", err, state.Project.ID)
		return
	}

	ctx.JSON(http.StatusOK, state)
}

// HandleSubmit godoc
// @Summary      Submit the form for review
// @Tags         forms
// @Produce      json
// @Param        formID  path      string  true  "form id"
// @Success      200  {object}  wizard.State
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Router       /forms/{formID}/submit [post]
// @Security BearerAuth
func (h *FormHandler) HandleSubmit(ctx *gin.Context) {
	form, ok := h.form(ctx)
	if !ok {
		return
	}

	state, err := form.SubmitProject(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleSubmit -> form.SubmitProject", err, state.Project.ID)
		return
	}

	ctx.JSON(http.StatusOK, state)
}

// HandleDiscardForm godoc
// @Summary      Discard a project form
// @Description  Saved projects are not affected.
// @Tags         forms
// @Param        formID  path  string  true  "form id"
// @Success      204
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /forms/{formID} [delete]
// @Security BearerAuth
func (h *FormHandler) HandleDiscardForm(ctx *gin.Context) {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return
	}
	id, ok := uuidParam(ctx, "formID")
	if !ok {
		return
	}

	if err := h.store.Delete(id, actor); err != nil {
		renderServiceErr(ctx, "v1.HandleDiscardForm -> h.store.Delete", err, id)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *FormHandler) form(ctx *gin.Context) (*wizard.Controller, bool) {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return nil, false
	}
	id, ok := uuidParam(ctx, "formID")
	if !ok {
		return nil, false
	}

	form, err := h.store.Get(id, actor)
	if err != nil {
		renderServiceErr(ctx, "v1.FormHandler.form -> h.store.Get", err, id)
		return nil, false
	}

	return form, true
}
