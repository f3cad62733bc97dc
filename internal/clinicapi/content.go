package clinicapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/drganeshcs/clinic-booking-platform/internal/content"
)

// ListContent loads every content item via GET /content. The API wraps the
// list in a "content" envelope.
func (c *Client) ListContent(ctx context.Context) ([]content.Item, error) {
	var out struct {
		Content []content.Item `json:"content"`
	}
	if err := c.do(ctx, http.MethodGet, "/content", nil, &out); err != nil {
		return nil, fmt.Errorf("clinicapi: list content: %w", err)
	}
	return out.Content, nil
}

// CreateContent creates an item via POST /content.
func (c *Client) CreateContent(ctx context.Context, req content.CreateRequest) (*content.Item, error) {
	var out content.Item
	if err := c.do(ctx, http.MethodPost, "/content", req, &out); err != nil {
		return nil, fmt.Errorf("clinicapi: create content: %w", err)
	}
	return &out, nil
}

// UpdateContent updates an item via PUT /content/{id}.
func (c *Client) UpdateContent(ctx context.Context, id string, req content.CreateRequest) (*content.Item, error) {
	var out content.Item
	if err := c.do(ctx, http.MethodPut, "/content/"+url.PathEscape(id), req, &out); err != nil {
		if statusCode(err) == http.StatusNotFound {
			return nil, content.ErrNotFound
		}
		return nil, fmt.Errorf("clinicapi: update content: %w", err)
	}
	return &out, nil
}

// DeleteContent removes an item via DELETE /content/{id}.
func (c *Client) DeleteContent(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/content/"+url.PathEscape(id), nil, nil); err != nil {
		if statusCode(err) == http.StatusNotFound {
			return content.ErrNotFound
		}
		return fmt.Errorf("clinicapi: delete content: %w", err)
	}
	return nil
}
