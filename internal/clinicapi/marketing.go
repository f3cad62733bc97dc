package clinicapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/drganeshcs/clinic-booking-platform/internal/marketing"
)

// SubmitContact forwards the contact form via POST /contact.
func (c *Client) SubmitContact(ctx context.Context, msg marketing.ContactMessage) error {
	if err := c.do(ctx, http.MethodPost, "/contact", msg, nil); err != nil {
		return fmt.Errorf("clinicapi: submit contact: %w", err)
	}
	return nil
}

// ListReviews loads patient reviews via GET /reviews.
func (c *Client) ListReviews(ctx context.Context) ([]marketing.Review, error) {
	var out []marketing.Review
	if err := c.do(ctx, http.MethodGet, "/reviews", nil, &out); err != nil {
		return nil, fmt.Errorf("clinicapi: list reviews: %w", err)
	}
	return out, nil
}
