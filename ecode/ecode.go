// Package ecode defines standardized business error codes for API
// responses, human-readable messages, and the mapping to HTTP status.
//
// Error codes follow a standardized numbering scheme:
//   - 0: Success (OK)
//   - -100 to -199: Authentication / authorization errors
//   - -400 to -499: Request and resource errors (mirroring HTTP status)
//   - -500 and below: Server errors
package ecode

import "net/http"

const (
	OK = 0

	NoLogin      = -101
	Unauthorized = -101
	AccessDenied = -103

	RequestErr = -400
	ParamErr   = -401

	NothingFound = -404
	NotFound     = -404
	Conflict     = -409

	MethodNotAllowed = -405

	ServerErr          = -500
	ServiceUnavailable = -503
	Deadline           = -504
)

var messages = map[int]string{
	OK:                 "success",
	NoLogin:            "Account not logged in",
	AccessDenied:       "Access denied",
	RequestErr:         "Invalid request",
	ParamErr:           "Invalid parameters",
	NothingFound:       "Resource not found",
	Conflict:           "Resource conflict",
	MethodNotAllowed:   "Method not allowed",
	ServerErr:          "Internal server error",
	ServiceUnavailable: "Service unavailable",
	Deadline:           "Deadline exceeded",
}

// Text returns the human-readable message for a code.
func Text(code int) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return messages[ServerErr]
}

// Register registers a custom error code with its message.
// Application-specific codes should live in the -1000+ range.
func Register(code int, message string) {
	messages[code] = message
}

// ToHTTPStatus maps a business error code to an HTTP status code.
func ToHTTPStatus(code int) int {
	switch code {
	case OK:
		return http.StatusOK
	case NoLogin:
		return http.StatusUnauthorized
	case AccessDenied:
		return http.StatusForbidden
	case RequestErr, ParamErr:
		return http.StatusBadRequest
	case NothingFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case MethodNotAllowed:
		return http.StatusMethodNotAllowed
	case ServiceUnavailable:
		return http.StatusServiceUnavailable
	case Deadline:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
