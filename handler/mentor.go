package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tasksphere/server/mentor"
	"github.com/tasksphere/server/net/resp"
)

type mentorRequest struct {
	Text     string   `json:"text" binding:"required,min=1,max=1000"`
	Tasks    []string `json:"tasks"`
	Priority string   `json:"priority"`
}

// MentorAdvice answers an advice query and records the exchange.
func (h *Handler) MentorAdvice(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req mentorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	if req.Priority == "" {
		req.Priority = "medium"
	}

	response, err := h.svc.Mentor.Advise(c.Request.Context(), userID, mentor.Query{
		Text:     req.Text,
		Tasks:    req.Tasks,
		Priority: req.Priority,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp.Success(c.Writer, gin.H{"response": response})
}

// MentorHistory returns a page of the caller's chat history.
func (h *Handler) MentorHistory(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	limit := queryInt(c, "limit", 50)
	skip := queryInt(c, "skip", 0)

	messages, total, err := h.svc.Mentor.History(c.Request.Context(), userID, limit, skip)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp.Success(c.Writer, gin.H{"messages": messages, "total": total})
}

// ClearMentorHistory wipes the caller's chat history.
func (h *Handler) ClearMentorHistory(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	if err := h.svc.Mentor.ClearHistory(c.Request.Context(), userID); err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp.Success(c.Writer, gin.H{"message": "Chat history cleared successfully"})
}

// MentorHealth reports the mentor subsystem status.
func (h *Handler) MentorHealth(c *gin.Context) {
	resp.Success(c.Writer, gin.H{
		"status":    "healthy",
		"service":   "mentor",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func queryInt(c *gin.Context, name string, fallback int64) int64 {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return v
}
