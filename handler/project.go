package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/tasksphere/server/net/resp"
	"github.com/tasksphere/server/service"
)

type projectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color" binding:"required"`
	Icon        string `json:"icon"`
}

func (r *projectRequest) toInput() *service.ProjectInput {
	return &service.ProjectInput{
		Name:        r.Name,
		Description: r.Description,
		Color:       r.Color,
		Icon:        r.Icon,
	}
}

// ListProjects returns the caller's projects.
func (h *Handler) ListProjects(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	projects, err := h.svc.Project.List(c.Request.Context(), userID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	resp.Success(c.Writer, projects)
}

// CreateProject adds a project owned by the caller.
func (h *Handler) CreateProject(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	project, err := h.svc.Project.Create(c.Request.Context(), userID, req.toInput())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	resp.Success(c.Writer, project)
}

// GetProject returns one of the caller's projects.
func (h *Handler) GetProject(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	project, err := h.svc.Project.Get(c.Request.Context(), userID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	resp.Success(c.Writer, project)
}

// UpdateProject replaces a project's mutable fields.
func (h *Handler) UpdateProject(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	project, err := h.svc.Project.Update(c.Request.Context(), userID, id, req.toInput())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	resp.Success(c.Writer, project)
}

// DeleteProject removes one of the caller's projects.
func (h *Handler) DeleteProject(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.svc.Project.Delete(c.Request.Context(), userID, id); err != nil {
		h.writeServiceError(c, err)
		return
	}
	resp.Success(c.Writer, gin.H{"ok": true})
}
