package directory

import (
	"fmt"
	"net/http"
)

// PaginatedResponse wraps paginated API responses.
type PaginatedResponse[T any] struct {
	Results []T   `json:"results"`
	Links   Links `json:"_links,omitempty"`
}

// Links contains pagination links.
type Links struct {
	Next string `json:"next,omitempty"`
}

// HasMore returns true if there are more results available.
func (p *PaginatedResponse[T]) HasMore() bool {
	return p.Links.Next != ""
}

// Member is a user who can be mentioned.
type Member struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName,omitempty"`
	Deactivated bool   `json:"deactivated,omitempty"`
}

// Group is a mentionable group such as "here" or "team-backend".
type Group struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CustomEmoji is an emoji shortcode known to the server.
type CustomEmoji struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases,omitempty"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors,omitempty"`
}

func (e *ErrorResponse) Error() string {
	msg := e.Message
	if len(e.Errors) > 0 {
		msg = e.Errors[0]
	}
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("directory error (status %d): %s", e.StatusCode, msg)
}

// IsUnauthorized reports whether the server rejected the credentials.
func (e *ErrorResponse) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsForbidden reports whether the credentials lack access.
func (e *ErrorResponse) IsForbidden() bool {
	return e.StatusCode == http.StatusForbidden
}
