package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tasksphere/server/email"
	"github.com/tasksphere/server/logging/logger"
	"github.com/tasksphere/server/security/jwt"
	"github.com/tasksphere/server/service"
)

type harness struct {
	t      *testing.T
	router *gin.Engine
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newMemStore()
	d := store.asData()
	log := logger.StdLogger()
	tm := jwt.NewTokenManager("test-signing-key")
	notifier := email.NewNotifier(nil, nil, log)
	svc := service.New(d, tm, notifier, "http://localhost:3000", log)

	h := New(svc, log)
	router := gin.New()
	h.RegisterRoutes(router, tm, d)

	return &harness{t: t, router: router}
}

func (h *harness) do(method, path, token string, body any) *httptest.ResponseRecorder {
	h.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			h.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func (h *harness) decode(w *httptest.ResponseRecorder, out any) {
	h.t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		h.t.Fatalf("invalid JSON response %q: %v", w.Body.String(), err)
	}
}

// register creates an account and returns its access token.
func (h *harness) register(name, emailAddr string) string {
	h.t.Helper()
	w := h.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     name,
		"email":    emailAddr,
		"password": "hunter22",
	})
	if w.Code != http.StatusOK {
		h.t.Fatalf("register status = %d (%s)", w.Code, w.Body.String())
	}
	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	h.decode(w, &body)
	if body.AccessToken == "" || body.TokenType != "bearer" {
		h.t.Fatalf("unexpected token payload: %s", w.Body.String())
	}
	return body.AccessToken
}

func TestRegisterSetsCookie(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Alex",
		"email":    "alex@example.com",
		"password": "hunter22",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}

	var tokenCookie bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "token" {
			tokenCookie = true
		}
	}
	if !tokenCookie {
		t.Error("register did not set the token cookie")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h := newHarness(t)
	h.register("Alex", "alex@example.com")

	w := h.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Other",
		"email":    "alex@example.com",
		"password": "different",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRegisterValidation(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Alex",
		"email":    "not-an-email",
		"password": "hunter22",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	h := newHarness(t)
	h.register("Alex", "alex@example.com")

	w := h.do(http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "alex@example.com",
		"password": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestMe(t *testing.T) {
	h := newHarness(t)
	token := h.register("Alex", "alex@example.com")

	w := h.do(http.MethodGet, "/api/auth/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}
	var body struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	h.decode(w, &body)
	if body.Name != "Alex" || body.Email != "alex@example.com" || body.ID == "" {
		t.Errorf("body = %+v", body)
	}
}

func TestMeWithoutToken(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodGet, "/api/auth/me", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestProjectLifecycle(t *testing.T) {
	h := newHarness(t)
	token := h.register("Alex", "alex@example.com")

	w := h.do(http.MethodPost, "/api/projects", token, gin.H{
		"name":  "Home",
		"color": "#ff0000",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create status = %d (%s)", w.Code, w.Body.String())
	}
	var project struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	h.decode(w, &project)

	w = h.do(http.MethodGet, "/api/projects/"+project.ID, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}

	w = h.do(http.MethodPut, "/api/projects/"+project.ID, token, gin.H{
		"name":  "Home v2",
		"color": "#00ff00",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d (%s)", w.Code, w.Body.String())
	}
	h.decode(w, &project)
	if project.Name != "Home v2" {
		t.Errorf("updated name = %q", project.Name)
	}

	w = h.do(http.MethodDelete, "/api/projects/"+project.ID, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}

	w = h.do(http.MethodGet, "/api/projects/"+project.ID, token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", w.Code)
	}
}

func TestProjectCrossUserIs404(t *testing.T) {
	h := newHarness(t)
	alice := h.register("Alice", "alice@example.com")
	bob := h.register("Bob", "bob@example.com")

	w := h.do(http.MethodPost, "/api/projects", alice, gin.H{
		"name":  "Secret",
		"color": "#000000",
	})
	var project struct {
		ID string `json:"id"`
	}
	h.decode(w, &project)

	// Bob gets the same 404 he would for a nonexistent ID.
	if w := h.do(http.MethodGet, "/api/projects/"+project.ID, bob, nil); w.Code != http.StatusNotFound {
		t.Errorf("cross-user get status = %d, want 404", w.Code)
	}
	if w := h.do(http.MethodDelete, "/api/projects/"+project.ID, bob, nil); w.Code != http.StatusNotFound {
		t.Errorf("cross-user delete status = %d, want 404", w.Code)
	}
}

func TestTaskDefaultsOverHTTP(t *testing.T) {
	h := newHarness(t)
	token := h.register("Alex", "alex@example.com")

	w := h.do(http.MethodPost, "/api/tasks", token, gin.H{"title": "Write tests"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}
	var task struct {
		Status   string `json:"status"`
		Priority string `json:"priority"`
	}
	h.decode(w, &task)
	if task.Status != "todo" || task.Priority != "medium" {
		t.Errorf("defaults = %+v", task)
	}
}

func TestTaskRejectsBadProjectID(t *testing.T) {
	h := newHarness(t)
	token := h.register("Alex", "alex@example.com")

	w := h.do(http.MethodPost, "/api/tasks", token, gin.H{
		"title":      "Bad ref",
		"project_id": "not-an-object-id",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestUpdateOtherUserForbidden(t *testing.T) {
	h := newHarness(t)
	alice := h.register("Alice", "alice@example.com")
	h.register("Bob", "bob@example.com")

	var me struct {
		ID string `json:"id"`
	}
	w := h.do(http.MethodGet, "/api/auth/me", alice, nil)
	h.decode(w, &me)

	// Alice updating herself is fine.
	w = h.do(http.MethodPut, "/api/users/"+me.ID, alice, gin.H{"name": "Alexandra"})
	if w.Code != http.StatusOK {
		t.Fatalf("self update status = %d (%s)", w.Code, w.Body.String())
	}

	// Bob's token against Alice's ID is rejected.
	bobToken := h.do(http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "bob@example.com",
		"password": "hunter22",
	})
	var login struct {
		AccessToken string `json:"access_token"`
	}
	h.decode(bobToken, &login)

	w = h.do(http.MethodPut, "/api/users/"+me.ID, login.AccessToken, gin.H{"name": "Hacked"})
	if w.Code != http.StatusForbidden {
		t.Errorf("cross-user update status = %d, want 403", w.Code)
	}
}

func TestMentorFlow(t *testing.T) {
	h := newHarness(t)
	token := h.register("Alex", "alex@example.com")

	w := h.do(http.MethodPost, "/api/ai/mentor", token, gin.H{
		"text":  "What's on my to-do list today?",
		"tasks": []string{"Ship release"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("mentor status = %d (%s)", w.Code, w.Body.String())
	}
	var advice struct {
		Response string `json:"response"`
	}
	h.decode(w, &advice)
	if advice.Response == "" {
		t.Fatal("empty advice")
	}

	w = h.do(http.MethodGet, "/api/ai/history", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("history status = %d", w.Code)
	}
	var history struct {
		Messages []json.RawMessage `json:"messages"`
		Total    int               `json:"total"`
	}
	h.decode(w, &history)
	if history.Total != 1 || len(history.Messages) != 1 {
		t.Errorf("history = %+v", history)
	}

	w = h.do(http.MethodDelete, "/api/ai/history", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("clear status = %d", w.Code)
	}

	w = h.do(http.MethodGet, "/api/ai/history", token, nil)
	h.decode(w, &history)
	if history.Total != 0 {
		t.Errorf("history total after clear = %d", history.Total)
	}
}

func TestMentorValidation(t *testing.T) {
	h := newHarness(t)
	token := h.register("Alex", "alex@example.com")

	w := h.do(http.MethodPost, "/api/ai/mentor", token, gin.H{"text": ""})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestMentorHealthOpen(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodGet, "/api/ai/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Status  string `json:"status"`
		Service string `json:"service"`
	}
	h.decode(w, &body)
	if body.Status != "healthy" || body.Service != "mentor" {
		t.Errorf("body = %+v", body)
	}
}

func TestDeleteAccountEndToEnd(t *testing.T) {
	h := newHarness(t)
	token := h.register("Alex", "alex@example.com")

	h.do(http.MethodPost, "/api/projects", token, gin.H{"name": "P", "color": "#fff"})
	h.do(http.MethodPost, "/api/tasks", token, gin.H{"title": "T"})

	w := h.do(http.MethodDelete, "/api/auth/me", token, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d (%s)", w.Code, w.Body.String())
	}

	// The token's subject no longer resolves.
	if w := h.do(http.MethodGet, "/api/auth/me", token, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("me after delete status = %d, want 401", w.Code)
	}
}

func TestForgotAndResetPasswordEndToEnd(t *testing.T) {
	h := newHarness(t)
	h.register("Alex", "alex@example.com")

	w := h.do(http.MethodPost, "/api/auth/forgot-password", "", gin.H{
		"email": "alex@example.com",
		"name":  "Alex",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("forgot status = %d (%s)", w.Code, w.Body.String())
	}
	var forgot struct {
		Success    bool   `json:"success"`
		ResetToken string `json:"reset_token"`
	}
	h.decode(w, &forgot)
	if !forgot.Success || forgot.ResetToken == "" {
		t.Fatalf("forgot body = %+v", forgot)
	}

	w = h.do(http.MethodPost, "/api/auth/reset-password", "", gin.H{
		"token":    forgot.ResetToken,
		"password": "new-password",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("reset status = %d (%s)", w.Code, w.Body.String())
	}

	w = h.do(http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "alex@example.com",
		"password": "new-password",
	})
	if w.Code != http.StatusOK {
		t.Errorf("login with new password status = %d", w.Code)
	}
}
