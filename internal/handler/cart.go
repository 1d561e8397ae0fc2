package handler

import (
	"encoding/json"
	"net/http"

	"avkngifts-api/internal/middleware"
	"avkngifts-api/internal/service"
	"avkngifts-api/pkg/apierror"
	"avkngifts-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

// CartHandler exposes cart mutations and the orchestrated gift send.
type CartHandler struct {
	sessions *service.SessionService
	gifts    *service.GiftService
}

// NewCartHandler creates a cart handler.
func NewCartHandler(sessions *service.SessionService, gifts *service.GiftService) *CartHandler {
	return &CartHandler{sessions: sessions, gifts: gifts}
}

// Get handles GET /api/v1/cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())
	state := h.sessions.Load(r.Context(), sessionID)
	response.OK(w, sessionViewOf(h.sessions, state))
}

// AddRequest is the body for POST /api/v1/cart/items.
type AddRequest struct {
	ItemID string `json:"item_id"`
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	if req.ItemID == "" {
		response.Error(w, apierror.BadRequest("item_id is required"))
		return
	}

	sessionID := middleware.GetSessionID(r.Context())
	state, err := h.sessions.AddToCart(r.Context(), sessionID, req.ItemID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, sessionViewOf(h.sessions, state))
}

// RemoveItem handles DELETE /api/v1/cart/items/{item_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "item_id")
	if itemID == "" {
		response.Error(w, apierror.BadRequest("item_id is required"))
		return
	}

	sessionID := middleware.GetSessionID(r.Context())
	state, err := h.sessions.RemoveFromCart(r.Context(), sessionID, itemID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, sessionViewOf(h.sessions, state))
}

// Clear handles DELETE /api/v1/cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())
	state, err := h.sessions.ClearCart(r.Context(), sessionID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, sessionViewOf(h.sessions, state))
}

// Send handles POST /api/v1/cart/send
func (h *CartHandler) Send(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	giftResp, err := h.gifts.Send(r.Context(), sessionID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, giftResp)
}
