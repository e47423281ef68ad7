// Package cookie manages the bearer-token cookie used as the fallback
// credential transport. The cookie is named "token" and stores the
// literal value "Bearer <jwt>" so browser clients and API clients share
// one token format.
package cookie

import (
	"net/http"
	"strings"
)

const (
	// TokenName is the cookie carrying the bearer token.
	TokenName = "token"

	// TokenMaxAge matches the access-token lifetime (24 hours).
	TokenMaxAge = 60 * 60 * 24

	bearerPrefix = "Bearer "
)

// formatDomain formats the domain.
func formatDomain(domain string) string {
	if domain != "localhost" && !strings.HasPrefix(domain, ".") {
		return "." + domain
	}
	return domain
}

// SetToken sets the bearer-token cookie.
func SetToken(w http.ResponseWriter, accessToken string, domain ...string) {
	c := &http.Cookie{
		Name:     TokenName,
		Value:    bearerPrefix + accessToken,
		MaxAge:   TokenMaxAge,
		Path:     "/",
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	if len(domain) > 0 && domain[0] != "" {
		c.Domain = formatDomain(domain[0])
	}

	http.SetCookie(w, c)
}

// ClearToken expires the bearer-token cookie.
func ClearToken(w http.ResponseWriter, domain ...string) {
	c := &http.Cookie{
		Name:     TokenName,
		Value:    "",
		MaxAge:   -1,
		Path:     "/",
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	if len(domain) > 0 && domain[0] != "" {
		c.Domain = formatDomain(domain[0])
	}

	http.SetCookie(w, c)
}

// TokenFromRequest extracts the raw token from the "token" cookie.
// It returns an empty string when the cookie is absent or does not
// carry the expected "Bearer " prefix.
func TokenFromRequest(r *http.Request) string {
	c, err := r.Cookie(TokenName)
	if err != nil {
		return ""
	}
	if !strings.HasPrefix(c.Value, bearerPrefix) {
		return ""
	}
	return strings.TrimPrefix(c.Value, bearerPrefix)
}
