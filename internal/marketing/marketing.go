// Package marketing passes the public site's contact form and reviews
// through to the clinic API.
package marketing

import (
	"context"
	"strings"
	"time"
)

// ContactMessage is the public contact form.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message"`
}

// Valid reports whether the form has the minimum to be forwarded.
func (m ContactMessage) Valid() bool {
	return strings.TrimSpace(m.Name) != "" && strings.TrimSpace(m.Message) != ""
}

// Review is a patient review shown on the public site.
type Review struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// Backend is the clinic API surface for marketing content.
type Backend interface {
	SubmitContact(ctx context.Context, msg ContactMessage) error
	ListReviews(ctx context.Context) ([]Review, error)
}
