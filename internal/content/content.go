// Package content manages the video items shown on the public site and
// edited from the doctor portal. Items live on the clinic API; a local cache
// refreshes them in the background so the public page never waits on the
// upstream.
package content

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"time"
)

// Platform identifies where a video is hosted.
type Platform string

const (
	PlatformYouTube  Platform = "youtube"
	PlatformFacebook Platform = "facebook"
)

// Item is a video shown on the public site. Field names follow the clinic
// API's wire format (content_url, content_type, is_published).
type Item struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Platform    Platform  `json:"content_type"`
	URL         string    `json:"content_url"`
	Category    string    `json:"category,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Published   bool      `json:"is_published"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// youtubeIDPattern extracts the 11-character video id from any of the usual
// YouTube URL shapes (watch, share, embed, shorts-style paths).
var youtubeIDPattern = regexp.MustCompile(`^.*(youtu.be\/|v\/|u\/\w\/|embed\/|watch\?v=|\&v=)([^#\&\?]*).*`)

// EmbedURL derives the iframe URL for the item's platform. It returns ""
// when the URL cannot be converted, and the caller should skip rendering.
func (i Item) EmbedURL() string {
	switch i.Platform {
	case PlatformYouTube:
		m := youtubeIDPattern.FindStringSubmatch(i.URL)
		if m == nil || len(m[2]) != 11 {
			return ""
		}
		return "https://www.youtube.com/embed/" + m[2]
	case PlatformFacebook:
		if i.URL == "" {
			return ""
		}
		return "https://www.facebook.com/plugins/video.php?href=" + url.QueryEscape(i.URL) + "&show_text=0&width=560"
	}
	return ""
}

// CreateRequest is the payload for creating or updating an item upstream,
// in the same wire format the API serves back.
type CreateRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Platform    Platform `json:"content_type"`
	URL         string   `json:"content_url"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Published   bool     `json:"is_published"`
}

// Store is the clinic API surface for content.
type Store interface {
	ListContent(ctx context.Context) ([]Item, error)
	CreateContent(ctx context.Context, req CreateRequest) (*Item, error)
	UpdateContent(ctx context.Context, id string, req CreateRequest) (*Item, error)
	DeleteContent(ctx context.Context, id string) error
}

var (
	// ErrNotFound is returned when an item id is unknown upstream.
	ErrNotFound = errors.New("content: item not found")

	// ErrInvalidItem is returned for a create/update that fails validation.
	ErrInvalidItem = errors.New("content: invalid item")
)

// Validate checks the minimal invariants before an upstream write.
func (r CreateRequest) Validate() error {
	if r.Title == "" || r.URL == "" {
		return ErrInvalidItem
	}
	if r.Platform != PlatformYouTube && r.Platform != PlatformFacebook {
		return ErrInvalidItem
	}
	return nil
}
