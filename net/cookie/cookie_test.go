package cookie

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func requestWithCookies(t *testing.T, w *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestSetTokenRoundTrip(t *testing.T) {
	w := httptest.NewRecorder()
	SetToken(w, "header.payload.signature")

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	c := cookies[0]
	if c.Name != TokenName {
		t.Errorf("cookie name = %q, want %q", c.Name, TokenName)
	}
	if !c.HttpOnly || !c.Secure {
		t.Error("cookie must be HttpOnly and Secure")
	}
	if c.MaxAge != TokenMaxAge {
		t.Errorf("cookie MaxAge = %d, want %d", c.MaxAge, TokenMaxAge)
	}

	req := requestWithCookies(t, w)
	if got := TokenFromRequest(req); got != "header.payload.signature" {
		t.Errorf("TokenFromRequest = %q", got)
	}
}

func TestTokenFromRequestMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := TokenFromRequest(req); got != "" {
		t.Errorf("TokenFromRequest on bare request = %q, want empty", got)
	}
}

func TestTokenFromRequestWithoutBearerPrefix(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: TokenName, Value: "header.payload.signature"})
	if got := TokenFromRequest(req); got != "" {
		t.Errorf("TokenFromRequest without prefix = %q, want empty", got)
	}
}

func TestClearToken(t *testing.T) {
	w := httptest.NewRecorder()
	ClearToken(w)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	if cookies[0].MaxAge >= 0 {
		t.Errorf("cleared cookie MaxAge = %d, want negative", cookies[0].MaxAge)
	}
}

func TestFormatDomain(t *testing.T) {
	if got := formatDomain("example.com"); got != ".example.com" {
		t.Errorf("formatDomain = %q", got)
	}
	if got := formatDomain("localhost"); got != "localhost" {
		t.Errorf("formatDomain(localhost) = %q", got)
	}
	if got := formatDomain(".example.com"); got != ".example.com" {
		t.Errorf("formatDomain(.example.com) = %q", got)
	}
}
