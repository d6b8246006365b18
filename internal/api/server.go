package api

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/hubicito/hubicito-api/docs"
	v1 "github.com/hubicito/hubicito-api/internal/api/handler/v1"
	"github.com/hubicito/hubicito-api/internal/api/middleware"
	"github.com/hubicito/hubicito-api/internal/config"
	"github.com/hubicito/hubicito-api/internal/notify"
	"github.com/hubicito/hubicito-api/internal/repository"
	"github.com/hubicito/hubicito-api/internal/repository/dao"
	"github.com/hubicito/hubicito-api/internal/service"
	"github.com/hubicito/hubicito-api/internal/storage"
	"github.com/hubicito/hubicito-api/internal/wizard"
)

const (
	basePath      = "/api/v1"
	filesPath     = "/files"
	sweepInterval = time.Minute
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	forms *wizard.Store
	hub   *v1.FeedbackHub
	files afero.Fs
}

type repositories struct {
	profiles *repository.ProfileRepository
	projects *repository.ProjectRepository
	events   *repository.EventRepository
	feedback *repository.FeedbackRepository
}

func NewServer(conf *config.AppConfig, db *gorm.DB) (*Server, error) {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
		forms:  wizard.NewStore(conf.Forms.IdleTTL),
		hub:    v1.NewFeedbackHub(),
	}

	bucket, err := s.initBucket()
	if err != nil {
		return nil, fmt.Errorf("s.initBucket -> %w", err)
	}

	repos := repositories{
		profiles: repository.NewProfileRepository(dao.NewProfileDAO(db)),
		projects: repository.NewProjectRepository(dao.NewProjectDAO(db), dao.NewLikeDAO(db)),
		events:   repository.NewEventRepository(dao.NewEventDAO(db)),
		feedback: repository.NewFeedbackRepository(dao.NewFeedbackDAO(db)),
	}
	notifier := notify.NewNotifier(notify.NewMailer(conf.Mail), repos.profiles)

	authSvc := service.NewAuthService(repos.profiles)
	projectSvc := service.NewProjectService(repos.projects, notifier)
	eventSvc := service.NewEventService(repos.events, bucket, notifier)
	feedbackSvc := service.NewFeedbackService(repos.feedback, repos.projects, s.hub)
	profileSvc := service.NewProfileService(repos.profiles)
	adminSvc := service.NewAdminService(repos.profiles, service.StatsRepositories{
		Profiles: repos.profiles,
		Projects: repos.projects,
		Events:   repos.events,
	})

	s.MountMiddlewares()
	s.MountHandlers(authSvc, handlers{
		auth:     v1.NewAuthHandler(conf.API, authSvc),
		project:  v1.NewProjectHandler(projectSvc),
		form:     v1.NewFormHandler(s.forms, projectSvc),
		event:    v1.NewEventHandler(eventSvc, conf.Storage.MaxUploadSize),
		feedback: v1.NewFeedbackHandler(feedbackSvc, s.hub),
		profile:  v1.NewProfileHandler(profileSvc),
		admin:    v1.NewAdminHandler(adminSvc),
	})

	return s, nil
}

// Run starts the background workers. They stop when ctx is done.
func (s *Server) Run(ctx context.Context) {
	go s.hub.Run(ctx)
	go s.forms.Run(ctx, sweepInterval)
}

func (s *Server) initBucket() (storage.Bucket, error) {
	conf := s.Config.Storage
	switch conf.Driver {
	case "oss":
		return storage.NewOSSBucket(conf.OSSEndpoint, conf.OSSAccessKeyID, conf.OSSAccessKeySecret, conf.Bucket, conf.PublicBaseURL)
	default:
		s.files = afero.NewBasePathFs(afero.NewOsFs(), conf.LocalRoot)
		return storage.NewLocalBucket(s.files, conf.Bucket, conf.PublicBaseURL), nil
	}
}

type handlers struct {
	auth     *v1.AuthHandler
	project  *v1.ProjectHandler
	form     *v1.FormHandler
	event    *v1.EventHandler
	feedback *v1.FeedbackHandler
	profile  *v1.ProfileHandler
	admin    *v1.AdminHandler
}

func (s *Server) MountMiddlewares() {
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.RequestLogger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(resolver middleware.ActorResolver, h handlers) {
	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", h.auth.HandleSignup)
		auth.POST("/auth/login", h.auth.HandleLogin)
	}

	authenticated := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey, resolver).VerifyJWT())
	{
		authenticated.GET("/profiles/me", h.profile.HandleGetMe)
		authenticated.PATCH("/profiles/me", h.profile.HandleUpdateMe)

		authenticated.POST("/forms", h.form.HandleCreateForm)
		authenticated.GET("/forms/:formID", h.form.HandleGetForm)
		authenticated.PATCH("/forms/:formID", h.form.HandleUpdateForm)
		authenticated.DELETE("/forms/:formID", h.form.HandleDiscardForm)
		authenticated.POST("/forms/:formID/next", h.form.HandleNextStep)
		authenticated.POST("/forms/:formID/previous", h.form.HandlePreviousStep)
		authenticated.PUT("/forms/:formID/step/:step", h.form.HandleGoToStep)
		authenticated.POST("/forms/:formID/draft", h.form.HandleSaveDraft)
		authenticated.POST("/forms/:formID/submit", h.form.HandleSubmit)

		authenticated.GET("/projects", h.project.HandleListProjects)
		authenticated.GET("/projects/:projectID", h.project.HandleGetProject)
		authenticated.DELETE("/projects/:projectID", h.project.HandleDeleteProject)
		authenticated.POST("/projects/:projectID/form", h.form.HandleEditProject)
		authenticated.POST("/projects/:projectID/like", h.project.HandleToggleLike)
		authenticated.POST("/projects/:projectID/feedback", h.feedback.HandlePostFeedback)
		authenticated.GET("/projects/:projectID/feedback", h.feedback.HandleListFeedback)
		authenticated.GET("/projects/:projectID/feedback/ws", h.feedback.HandleFeedbackSocket)

		authenticated.GET("/events", h.event.HandleListEvents)
		authenticated.POST("/events", h.event.HandleCreateEvent)
		authenticated.GET("/events/:eventID", h.event.HandleGetEvent)
		authenticated.PUT("/events/:eventID", h.event.HandleUpdateEvent)
		authenticated.DELETE("/events/:eventID", h.event.HandleDeleteEvent)
		authenticated.POST("/events/:eventID/file", h.event.HandleUploadFile)
	}

	admins := authenticated.Group("", middleware.RequireAdmin())
	{
		admins.POST("/projects/:projectID/status", h.project.HandleUpdateStatus)
		admins.POST("/events/:eventID/approve", h.event.HandleApproveEvent)
		admins.POST("/events/:eventID/reject", h.event.HandleRejectEvent)

		admins.GET("/admin/users", h.admin.HandleListUsers)
		admins.GET("/admin/stats", h.admin.HandleGetStats)
		admins.POST("/admin/users", h.admin.HandleCreateAdminUser)
		admins.PATCH("/admin/users/:userID", h.admin.HandleUpdateAdminUser)
	}

	if s.files != nil {
		s.Router.StaticFS(filesPath, afero.NewHttpFs(s.files))
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Hubicito API"
	docs.SwaggerInfo.Description = "Student projects, presentations and their review."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
