package handler

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tasksphere/server/net/resp"
	"github.com/tasksphere/server/service"
)

type taskRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	DueDate     *string  `json:"due_date"`
	ProjectID   string   `json:"project_id" binding:"omitempty,objectid"`
	Tags        []string `json:"tags"`
	Attachments []string `json:"attachments"`
}

func (r *taskRequest) toInput() *service.TaskInput {
	in := &service.TaskInput{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		DueDate:     r.DueDate,
		Tags:        r.Tags,
		Attachments: r.Attachments,
	}
	if r.ProjectID != "" {
		// Validated by the objectid binding rule above.
		id, err := primitive.ObjectIDFromHex(r.ProjectID)
		if err == nil {
			in.ProjectID = &id
		}
	}
	return in
}

// ListTasks returns the caller's tasks.
func (h *Handler) ListTasks(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	tasks, err := h.svc.Task.List(c.Request.Context(), userID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	resp.Success(c.Writer, tasks)
}

// CreateTask adds a task owned by the caller.
func (h *Handler) CreateTask(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	task, err := h.svc.Task.Create(c.Request.Context(), userID, req.toInput())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	resp.Success(c.Writer, task)
}

// GetTask returns one of the caller's tasks.
func (h *Handler) GetTask(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	task, err := h.svc.Task.Get(c.Request.Context(), userID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	resp.Success(c.Writer, task)
}

// UpdateTask replaces a task's mutable fields.
func (h *Handler) UpdateTask(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	task, err := h.svc.Task.Update(c.Request.Context(), userID, id, req.toInput())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	resp.Success(c.Writer, task)
}

// DeleteTask removes one of the caller's tasks.
func (h *Handler) DeleteTask(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.svc.Task.Delete(c.Request.Context(), userID, id); err != nil {
		h.writeServiceError(c, err)
		return
	}
	resp.Success(c.Writer, gin.H{"ok": true})
}
