package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hubicito/hubicito-api/internal/api/handler/v1/request"
	"github.com/hubicito/hubicito-api/internal/api/handler/v1/response"
	"github.com/hubicito/hubicito-api/internal/domain"
	"github.com/hubicito/hubicito-api/internal/service"
)

type EventService interface {
	Create(ctx context.Context, actor domain.Actor, details service.EventDetails) (domain.Event, error)
	Update(ctx context.Context, actor domain.Actor, id uuid.UUID, details service.EventDetails) (domain.Event, error)
	Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error
	AttachFile(ctx context.Context, actor domain.Actor, id uuid.UUID, upload service.Upload) (domain.Event, error)
	Approve(ctx context.Context, actor domain.Actor, id uuid.UUID, feedback string) (domain.Event, error)
	Reject(ctx context.Context, actor domain.Actor, id uuid.UUID, feedback string) (domain.Event, error)
	Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (domain.Event, error)
	List(ctx context.Context, actor domain.Actor, filter service.EventListFilter) ([]domain.Event, error)
}

type EventHandler struct {
	svc           EventService
	maxUploadSize int64
}

func NewEventHandler(svc EventService, maxUploadSize int64) *EventHandler {
	return &EventHandler{
		svc:           svc,
		maxUploadSize: maxUploadSize,
	}
}

// HandleListEvents godoc
// @Summary      List presentations
// @Description  Ordered by start time. Students see approved presentations and their own.
// @Tags         events
// @Produce      json
// @Param        status  query     []string  false  "filter by status"  collectionFormat(multi)
// @Param        type    query     []string  false  "filter by type"    collectionFormat(multi)
// @Success      200  {array}   domain.Event
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Router       /events [get]
// @Security BearerAuth
func (h *EventHandler) HandleListEvents(ctx *gin.Context) {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return
	}

	var filter service.EventListFilter
	for _, s := range ctx.QueryArray("status") {
		status := domain.EventStatus(s)
		if !status.Valid() {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("unknown status %q", s)))
			return
		}
		filter.Statuses = append(filter.Statuses, status)
	}
	for _, s := range ctx.QueryArray("type") {
		typ := domain.EventType(s)
		if !typ.Valid() {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("unknown type %q", s)))
			return
		}
		filter.Types = append(filter.Types, typ)
	}

	events, err := h.svc.List(ctx.Request.Context(), actor, filter)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListEvents -> h.svc.List", err, nil)
		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleCreateEvent godoc
// @Summary      Request a presentation
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request  body      request.EventRequest  true  "request body"
// @Success      201  {object}  domain.Event
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Router       /events [post]
// @Security BearerAuth
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return
	}

	var req request.EventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.Create(ctx.Request.Context(), actor, req.ToDetails())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateEvent -> h.svc.Create", err, nil)
		return
	}

	ctx.JSON(http.StatusCreated, event)
}

// HandleGetEvent godoc
// @Summary      Get a presentation
// @Tags         events
// @Produce      json
// @Param        eventID  path      string  true  "event id"
// @Success      200  {object}  domain.Event
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /events/{eventID} [get]
// @Security BearerAuth
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return
	}
	id, ok := uuidParam(ctx, "eventID")
	if !ok {
		return
	}

	event, err := h.svc.Get(ctx.Request.Context(), actor, id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetEvent -> h.svc.Get", err, id)
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleUpdateEvent godoc
// @Summary      Edit a presentation
// @Description  Pending and rejected presentations only. A rejected one goes back to pending.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventID  path      string                true  "event id"
// @Param        request  body      request.EventRequest  true  "request body"
// @Success      200  {object}  domain.Event
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Router       /events/{eventID} [put]
// @Security BearerAuth
func (h *EventHandler) HandleUpdateEvent(ctx *gin.Context) {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return
	}
	id, ok := uuidParam(ctx, "eventID")
	if !ok {
		return
	}

	var req request.EventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.Update(ctx.Request.Context(), actor, id, req.ToDetails())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateEvent -> h.svc.Update", err, id)
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleDeleteEvent godoc
// @Summary      Delete a presentation
// @Tags         events
// @Param        eventID  path  string  true  "event id"
// @Success      204
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Router       /events/{eventID} [delete]
// @Security BearerAuth
func (h *EventHandler) HandleDeleteEvent(ctx *gin.Context) {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return
	}
	id, ok := uuidParam(ctx, "eventID")
	if !ok {
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), actor, id); err != nil {
		renderServiceErr(ctx, "v1.HandleDeleteEvent -> h.svc.Delete", err, id)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleUploadFile godoc
// @Summary      Upload the presentation file
// @Tags         events
// @Accept       multipart/form-data
// @Produce      json
// @Param        eventID  path      string  true  "event id"
// @Param        file     formData  file    true  "presentation file"
// @Success      200  {object}  domain.Event
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      413  {object}  response.Err
// @Router       /events/{eventID}/file [post]
// @Security BearerAuth
func (h *EventHandler) HandleUploadFile(ctx *gin.Context) {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return
	}
	id, ok := uuidParam(ctx, "eventID")
	if !ok {
		return
	}

	errTooLarge := fmt.Errorf("file exceeds %d bytes", h.maxUploadSize)
	if ctx.Request.ContentLength > h.maxUploadSize {
		response.RenderErr(ctx, response.ErrEntityTooLarge(errTooLarge))
		return
	}

	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, h.maxUploadSize)
	header, err := ctx.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.RenderErr(ctx, response.ErrEntityTooLarge(errTooLarge))
			return
		}
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	file, err := header.Open()
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	defer file.Close()

	event, err := h.svc.AttachFile(ctx.Request.Context(), actor, id, service.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUploadFile -> h.svc.AttachFile", err, id)
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleApproveEvent godoc
// @Summary      Approve a presentation
// @Description  Without feedback the message "Presentation approved" is stored.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventID  path      string                 true   "event id"
// @Param        request  body      request.ReviewRequest  false  "request body"
// @Success      200  {object}  domain.Event
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Router       /events/{eventID}/approve [post]
// @Security BearerAuth
func (h *EventHandler) HandleApproveEvent(ctx *gin.Context) {
	h.review(ctx, "v1.HandleApproveEvent -> h.svc.Approve", h.svc.Approve)
}

// HandleRejectEvent godoc
// @Summary      Reject a presentation
// @Description  Feedback is mandatory.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventID  path      string                 true  "event id"
// @Param        request  body      request.ReviewRequest  true  "request body"
// @Success      200  {object}  domain.Event
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Router       /events/{eventID}/reject [post]
// @Security BearerAuth
func (h *EventHandler) HandleRejectEvent(ctx *gin.Context) {
	h.review(ctx, "v1.HandleRejectEvent -> h.svc.Reject", h.svc.Reject)
}

type reviewFunc func(ctx context.Context, actor domain.Actor, id uuid.UUID, feedback string) (domain.Event, error)

func (h *EventHandler) review(ctx *gin.Context, op string, decide reviewFunc) {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return
	}
	id, ok := uuidParam(ctx, "eventID")
	if !ok {
		return
	}

	var req request.ReviewRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
	}

	event, err := decide(ctx.Request.Context(), actor, id, req.Feedback)
	if err != nil {
		renderServiceErr(ctx, op, err, id)
		return
	}

	ctx.JSON(http.StatusOK, event)
}
