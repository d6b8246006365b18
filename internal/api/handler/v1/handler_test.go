package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubicito/hubicito-api/internal/api/middleware"
	"github.com/hubicito/hubicito-api/internal/domain"
	"github.com/hubicito/hubicito-api/internal/service"
	"github.com/hubicito/hubicito-api/internal/wizard"
)

var (
	student = domain.Actor{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Role: domain.RoleStudent, FullName: "Stu"}
	admin   = domain.Actor{ID: uuid.MustParse("33333333-3333-3333-3333-333333333333"), Role: domain.RoleAdmin, FullName: "Ad"}
)

func init() {
	gin.SetMode(gin.TestMode)
}

// withActor stands in for VerifyJWT.
func withActor(actor domain.Actor) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if actor.IsAuthenticated() {
			middleware.SetActor(ctx, actor)
		}
		ctx.Next()
	}
}

func doJSON(t *testing.T, r http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

// memProjects is an in-memory stand-in for the project service used by forms.
type memProjects struct {
	saved map[uuid.UUID]domain.Project
}

func (m *memProjects) Save(_ context.Context, actor domain.Actor, p domain.Project, status domain.ProjectStatus) (domain.Project, error) {
	if p.Name == "" {
		return domain.Project{}, domain.NewValidationError(assert.AnError)
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.OwnerID = actor.ID
	p.Status = status
	m.saved[p.ID] = p
	return p, nil
}

func (m *memProjects) OpenForEdit(_ context.Context, actor domain.Actor, id uuid.UUID) (domain.Project, error) {
	p, ok := m.saved[id]
	if !ok {
		return domain.Project{}, service.ErrProjectNotFound
	}
	if p.OwnerID != actor.ID {
		return domain.Project{}, domain.ErrForbidden
	}
	return p, nil
}

func formRouter(actor domain.Actor, svc *memProjects) *gin.Engine {
	h := NewFormHandler(wizard.NewStore(time.Hour), svc)
	r := gin.New()
	g := r.Group("/api/v1", withActor(actor))
	g.POST("/forms", h.HandleCreateForm)
	g.GET("/forms/:formID", h.HandleGetForm)
	g.PATCH("/forms/:formID", h.HandleUpdateForm)
	g.DELETE("/forms/:formID", h.HandleDiscardForm)
	g.POST("/forms/:formID/next", h.HandleNextStep)
	g.POST("/forms/:formID/previous", h.HandlePreviousStep)
	g.PUT("/forms/:formID/step/:step", h.HandleGoToStep)
	g.POST("/forms/:formID/draft", h.HandleSaveDraft)
	g.POST("/forms/:formID/submit", h.HandleSubmit)
	g.POST("/projects/:projectID/form", h.HandleEditProject)
	return r
}

func TestFormHandler_Flow(t *testing.T) {
	svc := &memProjects{saved: map[uuid.UUID]domain.Project{}}
	r := formRouter(student, svc)

	w := doJSON(t, r, http.MethodPost, "/api/v1/forms", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	form := decode[wizard.State](t, w)
	base := "/api/v1/forms/" + form.ID.String()

	w = doJSON(t, r, http.MethodPost, base+"/draft", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPatch, base, map[string]any{
		"name":         "Hub board",
		"deliverables": []map[string]any{{"name": "api", "days": 3}, {"name": "ui", "days": 2}},
	})
	require.Equal(t, http.StatusOK, w.Code)
	state := decode[wizard.State](t, w)
	assert.Equal(t, 5, state.Project.TotalEstimatedDays)
	assert.Equal(t, 1, state.Project.Credits)

	w = doJSON(t, r, http.MethodPost, base+"/previous", nil)
	assert.Equal(t, 0, decode[wizard.State](t, w).Step)
	w = doJSON(t, r, http.MethodPut, base+"/step/4", nil)
	assert.Equal(t, 4, decode[wizard.State](t, w).Step)
	w = doJSON(t, r, http.MethodPost, base+"/next", nil)
	assert.Equal(t, 4, decode[wizard.State](t, w).Step)
	w = doJSON(t, r, http.MethodPut, base+"/step/9", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = doJSON(t, r, http.MethodPut, base+"/step/-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = doJSON(t, r, http.MethodGet, base, nil)
	assert.Equal(t, 4, decode[wizard.State](t, w).Step)
	w = doJSON(t, r, http.MethodPut, base+"/step/two", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, base+"/draft", nil)
	require.Equal(t, http.StatusOK, w.Code)
	draft := decode[wizard.State](t, w)
	require.NotEqual(t, uuid.Nil, draft.Project.ID)

	w = doJSON(t, r, http.MethodPost, base+"/submit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	submitted := decode[wizard.State](t, w)
	assert.Equal(t, draft.Project.ID, submitted.Project.ID)
	assert.Equal(t, domain.ProjectSubmitted, submitted.Project.Status)
	assert.Len(t, svc.saved, 1)

	w = doJSON(t, r, http.MethodPost, "/api/v1/projects/"+draft.Project.ID.String()+"/form", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	edit := decode[wizard.State](t, w)
	assert.Equal(t, "Hub board", edit.Project.Name)
	assert.NotEqual(t, form.ID, edit.ID)

	w = doJSON(t, r, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(t, r, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFormHandler_OtherActors(t *testing.T) {
	svc := &memProjects{saved: map[uuid.UUID]domain.Project{}}
	store := wizard.NewStore(time.Hour)
	form := wizard.New(student, svc)
	store.Put(form)

	h := NewFormHandler(store, svc)
	for _, tt := range []struct {
		actor domain.Actor
		want  int
	}{
		{actor: admin, want: http.StatusForbidden},
		{actor: domain.Actor{}, want: http.StatusUnauthorized},
		{actor: student, want: http.StatusOK},
	} {
		r := gin.New()
		r.GET("/forms/:formID", withActor(tt.actor), h.HandleGetForm)
		w := doJSON(t, r, http.MethodGet, "/forms/"+form.ID().String(), nil)
		assert.Equal(t, tt.want, w.Code)
	}
}

// stubEvents records the feedback passed to reviews.
type stubEvents struct {
	EventService
	reviewed []string
	attached []service.Upload
}

func (s *stubEvents) Approve(_ context.Context, _ domain.Actor, id uuid.UUID, feedback string) (domain.Event, error) {
	s.reviewed = append(s.reviewed, feedback)
	if strings.TrimSpace(feedback) == "" {
		feedback = domain.DefaultApprovalFeedback
	}
	return domain.Event{ID: id, Status: domain.EventApproved, AdminFeedback: &feedback}, nil
}

func (s *stubEvents) Reject(_ context.Context, _ domain.Actor, id uuid.UUID, feedback string) (domain.Event, error) {
	if err := domain.ValidateRejectionFeedback(feedback); err != nil {
		return domain.Event{}, err
	}
	s.reviewed = append(s.reviewed, feedback)
	return domain.Event{ID: id, Status: domain.EventRejected, AdminFeedback: &feedback}, nil
}

func (s *stubEvents) AttachFile(_ context.Context, _ domain.Actor, id uuid.UUID, upload service.Upload) (domain.Event, error) {
	s.attached = append(s.attached, upload)
	path := "x/" + upload.Filename
	return domain.Event{ID: id, FilePath: &path}, nil
}

func TestEventHandler_Review(t *testing.T) {
	svc := &stubEvents{}
	h := NewEventHandler(svc, 1<<20)
	r := gin.New()
	r.POST("/events/:eventID/approve", withActor(admin), h.HandleApproveEvent)
	r.POST("/events/:eventID/reject", withActor(admin), h.HandleRejectEvent)
	id := uuid.NewString()

	w := doJSON(t, r, http.MethodPost, "/events/"+id+"/approve", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.DefaultApprovalFeedback, *decode[domain.Event](t, w).AdminFeedback)

	w = doJSON(t, r, http.MethodPost, "/events/"+id+"/reject", map[string]string{"feedback": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/events/"+id+"/reject", map[string]string{"feedback": "Too long"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.EventRejected, decode[domain.Event](t, w).Status)

	w = doJSON(t, r, http.MethodPost, "/events/not-a-uuid/approve", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"", "Too long"}, svc.reviewed)
}

func multipartBody(t *testing.T, filename string, size int) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("a"), size))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func TestEventHandler_UploadFile(t *testing.T) {
	svc := &stubEvents{}
	h := NewEventHandler(svc, 4<<10)
	r := gin.New()
	r.POST("/events/:eventID/file", withActor(student), h.HandleUploadFile)
	target := "/events/" + uuid.NewString() + "/file"

	body, contentType := multipartBody(t, "deck.pdf", 1<<10)
	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, svc.attached, 1)
	assert.Equal(t, "deck.pdf", svc.attached[0].Filename)

	body, contentType = multipartBody(t, "huge.pdf", 64<<10)
	req = httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", contentType)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Len(t, svc.attached, 1)
}

type stubProjects struct {
	ProjectService
	err error
}

func (s *stubProjects) Review(_ context.Context, _ domain.Actor, id uuid.UUID, review service.ProjectReview) (domain.Project, error) {
	if s.err != nil {
		return domain.Project{}, s.err
	}
	return domain.Project{ID: id, Status: review.Status}, nil
}

func TestProjectHandler_UpdateStatus(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
		err  error
		want int
	}{
		{name: "ok", body: map[string]any{"status": "approved"}, want: http.StatusOK},
		{name: "unknown status", body: map[string]any{"status": "archived"}, want: http.StatusBadRequest},
		{name: "illegal transition", body: map[string]any{"status": "approved"}, err: domain.ErrInvalidTransition, want: http.StatusConflict},
		{name: "missing project", body: map[string]any{"status": "approved"}, err: service.ErrProjectNotFound, want: http.StatusNotFound},
		{name: "storage failure", body: map[string]any{"status": "approved"}, err: assert.AnError, want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewProjectHandler(&stubProjects{err: tt.err})
			r := gin.New()
			r.POST("/projects/:projectID/status", withActor(admin), h.HandleUpdateStatus)

			w := doJSON(t, r, http.MethodPost, "/projects/"+uuid.NewString()+"/status", tt.body)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
