package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/tasksphere/server/net/resp"
)

type updateUserRequest struct {
	Name   string  `json:"name" binding:"required"`
	Avatar *string `json:"avatar"`
}

// GetUser returns any user's public profile.
func (h *Handler) GetUser(c *gin.Context) {
	if _, ok := h.currentUser(c); !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	user, err := h.svc.User.Get(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp.Success(c.Writer, userResponse{
		ID:     user.ID.Hex(),
		Name:   user.Name,
		Email:  user.Email,
		Avatar: user.Avatar,
	})
}

// UpdateUser changes a profile. Callers may only update themselves.
func (h *Handler) UpdateUser(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	// Ownership is checked on the raw path value so a malformed ID is
	// rejected the same way as someone else's.
	if c.Param("id") != userID.Hex() {
		resp.Fail(c.Writer, resp.Forbidden("Not allowed"))
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	user, err := h.svc.User.UpdateProfile(c.Request.Context(), userID, userID, req.Name, req.Avatar)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp.Success(c.Writer, userResponse{
		ID:     user.ID.Hex(),
		Name:   user.Name,
		Email:  user.Email,
		Avatar: user.Avatar,
	})
}
