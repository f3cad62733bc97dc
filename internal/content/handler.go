package content

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/drganeshcs/clinic-booking-platform/pkg/logging"
)

// Handler serves public content reads from the cache and forwards doctor
// mutations upstream. A successful mutation refreshes the cache so the
// portal sees its own write.
type Handler struct {
	cache  *Cache
	store  Store
	logger *logging.Logger
}

// NewHandler creates a content handler.
func NewHandler(cache *Cache, store Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{cache: cache, store: store, logger: logger}
}

// upstreamMessage strips the wrapping prefixes from a clinic API error so
// the portal shows the upstream message verbatim.
func upstreamMessage(err error) string {
	var um interface{ UpstreamMessage() string }
	if errors.As(err, &um) {
		return um.UpstreamMessage()
	}
	return err.Error()
}

// itemView is an Item plus its derived embed URL.
type itemView struct {
	Item
	EmbedURL string `json:"embedUrl,omitempty"`
}

func views(items []Item) []itemView {
	out := make([]itemView, 0, len(items))
	for _, it := range items {
		out = append(out, itemView{Item: it, EmbedURL: it.EmbedURL()})
	}
	return out
}

// ListPublic handles GET /content: published items only, from the cache.
func (h *Handler) ListPublic(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(views(h.cache.Published()))
}

// ListAll handles GET /doctor/content: every item plus refresh status.
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	resp := struct {
		Items   []itemView    `json:"items"`
		Refresh RefreshStatus `json:"refresh"`
	}{
		Items:   views(h.cache.Items()),
		Refresh: h.cache.Status(),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// Create handles POST /doctor/content.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := h.store.CreateContent(r.Context(), req)
	if err != nil {
		h.logger.Error("failed to create content", "error", err)
		http.Error(w, upstreamMessage(err), http.StatusBadGateway)
		return
	}
	h.cache.Refresh(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(itemView{Item: *item, EmbedURL: item.EmbedURL()})
}

// Update handles PUT /doctor/content/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := h.store.UpdateContent(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "Content not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to update content", "error", err, "id", id)
		http.Error(w, upstreamMessage(err), http.StatusBadGateway)
		return
	}
	h.cache.Refresh(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(itemView{Item: *item, EmbedURL: item.EmbedURL()})
}

// Delete handles DELETE /doctor/content/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.DeleteContent(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "Content not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to delete content", "error", err, "id", id)
		http.Error(w, upstreamMessage(err), http.StatusBadGateway)
		return
	}
	h.cache.Refresh(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
