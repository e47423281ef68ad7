package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tasksphere/server/net/cookie"
	"github.com/tasksphere/server/net/resp"
	"github.com/tasksphere/server/service"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required"`
}

type resetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type userResponse struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Avatar *string `json:"avatar"`
}

// Register creates an account and signs the caller in.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	token, err := h.svc.Auth.Register(c.Request.Context(), &service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	cookie.SetToken(c.Writer, token)
	resp.Success(c.Writer, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Login exchanges credentials for an access token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	token, err := h.svc.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	cookie.SetToken(c.Writer, token)
	resp.Success(c.Writer, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// ForgotPassword starts a password reset. The response does not reveal
// whether an account matched, beyond the success flag the original
// client relies on.
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	result, err := h.svc.Auth.ForgotPassword(c.Request.Context(), req.Email, req.Name)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	body := gin.H{"message": result.Message, "success": result.Success}
	if result.ResetToken != "" {
		body["reset_token"] = result.ResetToken
	}
	resp.Success(c.Writer, body)
}

// ResetPassword completes a password reset with an issued token.
func (h *Handler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	if err := h.svc.Auth.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp.Success(c.Writer, gin.H{"message": "Password has been reset successfully"})
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	user, err := h.svc.Auth.Me(c.Request.Context(), userID)
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

// DeleteAccount removes the caller's account and everything it owns.
func (h *Handler) DeleteAccount(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	if err := h.svc.Auth.DeleteAccount(c.Request.Context(), userID); err != nil {
		h.writeServiceError(c, err)
		return
	}

	cookie.ClearToken(c.Writer)
	resp.WithStatusCode(c.Writer, http.StatusNoContent)
}
