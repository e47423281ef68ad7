// Package handler wires the HTTP surface: route registration, request
// binding and translation of service errors into responses.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tasksphere/server/data"
	"github.com/tasksphere/server/logging/logger"
	"github.com/tasksphere/server/middleware"
	"github.com/tasksphere/server/net/resp"
	"github.com/tasksphere/server/security/jwt"
	"github.com/tasksphere/server/service"
)

// Handler groups the HTTP handlers over the service layer.
type Handler struct {
	svc    *service.Service
	logger *logger.Logger
}

// New creates a new handler instance.
func New(svc *service.Service, log *logger.Logger) *Handler {
	registerValidations()
	return &Handler{svc: svc, logger: log}
}

// registerValidations adds custom rules to gin's binding validator.
func registerValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, err := primitive.ObjectIDFromHex(s)
		return err == nil
	})
}

// RegisterRoutes mounts everything under /api.
func (h *Handler) RegisterRoutes(r *gin.Engine, tm *jwt.TokenManager, d *data.Data) {
	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/reset-password", h.ResetPassword)

		me := auth.Group("", middleware.AuthRequired(tm, d))
		me.GET("/me", h.Me)
		me.DELETE("/me", h.DeleteAccount)
	}

	// Health carries no user context and stays open.
	api.GET("/ai/health", h.MentorHealth)

	protected := api.Group("", middleware.AuthRequired(tm, d))
	{
		users := protected.Group("/users")
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", h.UpdateUser)

		projects := protected.Group("/projects")
		projects.GET("", h.ListProjects)
		projects.POST("", h.CreateProject)
		projects.GET("/:id", h.GetProject)
		projects.PUT("/:id", h.UpdateProject)
		projects.DELETE("/:id", h.DeleteProject)

		tasks := protected.Group("/tasks")
		tasks.GET("", h.ListTasks)
		tasks.POST("", h.CreateTask)
		tasks.GET("/:id", h.GetTask)
		tasks.PUT("/:id", h.UpdateTask)
		tasks.DELETE("/:id", h.DeleteTask)

		ai := protected.Group("/ai")
		ai.POST("/mentor", h.MentorAdvice)
		ai.GET("/history", h.MentorHistory)
		ai.DELETE("/history", h.ClearMentorHistory)
	}
}

// currentUser returns the resolved user ID or writes a 401.
func (h *Handler) currentUser(c *gin.Context) (primitive.ObjectID, bool) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		resp.Fail(c.Writer, resp.UnAuthorized("Could not validate credentials"))
		return primitive.NilObjectID, false
	}
	return id, true
}

// pathID parses the :id path parameter; an unparseable ID is treated
// as a missing record.
func (h *Handler) pathID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		resp.Fail(c.Writer, resp.NotFound("Not found"))
		return primitive.NilObjectID, false
	}
	return id, true
}

// badRequest writes a binding failure with field details.
func (h *Handler) badRequest(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		resp.Fail(c.Writer, resp.BadRequest("Invalid request body", fields))
		return
	}
	resp.Fail(c.Writer, resp.BadRequest("Invalid request body"))
}

// writeServiceError maps service sentinels to HTTP failures.
func (h *Handler) writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		resp.Fail(c.Writer, resp.BadRequest("Email already registered"))
	case errors.Is(err, service.ErrInvalidCredentials):
		c.Header("WWW-Authenticate", "Bearer")
		resp.Fail(c.Writer, resp.UnAuthorized("Incorrect email or password"))
	case errors.Is(err, service.ErrUnauthenticated):
		c.Header("WWW-Authenticate", "Bearer")
		resp.Fail(c.Writer, resp.UnAuthorized("Could not validate credentials"))
	case errors.Is(err, service.ErrForbidden):
		resp.Fail(c.Writer, resp.Forbidden("Not allowed"))
	case errors.Is(err, service.ErrNotFound):
		resp.Fail(c.Writer, resp.NotFound("Not found"))
	case errors.Is(err, service.ErrInvalidResetToken):
		resp.Fail(c.Writer, resp.BadRequest("Invalid or expired reset token"))
	default:
		h.logger.Errorf(c.Request.Context(), "internal error: %v", err)
		resp.Fail(c.Writer, resp.InternalServer(http.StatusText(http.StatusInternalServerError)))
	}
}
