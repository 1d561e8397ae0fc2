package handler

import (
	"encoding/json"
	"net/http"

	"avkngifts-api/internal/middleware"
	"avkngifts-api/internal/model"
	"avkngifts-api/internal/service"
	"avkngifts-api/pkg/apierror"
	"avkngifts-api/pkg/response"
)

// SessionHandler exposes the key and friend-code state of a session.
type SessionHandler struct {
	sessions *service.SessionService
}

// NewSessionHandler creates a session handler.
func NewSessionHandler(sessions *service.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// SessionView is the session payload returned by every session and cart
// endpoint.
type SessionView struct {
	Key          string              `json:"key"`
	KeyValid     bool                `json:"key_valid"`
	Balance      *int                `json:"balance"`
	FriendCode   string              `json:"friend_code"`
	BlockedItems []model.BlockedItem `json:"blocked_items"`
	Cart         []model.CartEntry   `json:"cart"`
	CartTotal    int                 `json:"cart_total"`
	Sending      bool                `json:"sending"`
	Limits       LimitsView          `json:"limits"`
}

// LimitsView echoes the cart caps so the UI can render budgets.
type LimitsView struct {
	MaxCartItems int `json:"max_cart_items"`
	MaxItemPrice int `json:"max_item_price"`
	MaxCartTotal int `json:"max_cart_total"`
}

func (h *SessionHandler) view(state *model.SessionState) SessionView {
	return sessionViewOf(h.sessions, state)
}

// sessionViewOf builds the shared session payload; the cart handlers reuse
// it so every mutation returns the same shape.
func sessionViewOf(sessions *service.SessionService, state *model.SessionState) SessionView {
	limits := sessions.Limits()
	return SessionView{
		Key:          state.Key,
		KeyValid:     state.KeyValid,
		Balance:      state.Balance,
		FriendCode:   state.FriendCode,
		BlockedItems: state.BlockedItems,
		Cart:         state.Cart,
		CartTotal:    state.CartTotal(),
		Sending:      state.Sending,
		Limits: LimitsView{
			MaxCartItems: limits.MaxItems,
			MaxItemPrice: limits.MaxItemPrice,
			MaxCartTotal: limits.MaxTotal,
		},
	}
}

// Get handles GET /api/v1/session
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())
	state := h.sessions.Load(r.Context(), sessionID)
	response.OK(w, h.view(state))
}

// KeyRequest is the body for POST /api/v1/session/key.
type KeyRequest struct {
	Key string `json:"key"`
}

// CheckKey handles POST /api/v1/session/key
func (h *SessionHandler) CheckKey(w http.ResponseWriter, r *http.Request) {
	var req KeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	sessionID := middleware.GetSessionID(r.Context())
	state, err := h.sessions.CheckKey(r.Context(), sessionID, req.Key)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, h.view(state))
}

// Logout handles DELETE /api/v1/session/key
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())
	state, err := h.sessions.Logout(r.Context(), sessionID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, h.view(state))
}

// FriendCodeRequest is the body for POST /api/v1/session/friend-code.
type FriendCodeRequest struct {
	FriendCode string `json:"friend_code"`
}

// SetFriendCode handles POST /api/v1/session/friend-code
func (h *SessionHandler) SetFriendCode(w http.ResponseWriter, r *http.Request) {
	var req FriendCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	sessionID := middleware.GetSessionID(r.Context())
	state, err := h.sessions.SetFriendCode(r.Context(), sessionID, req.FriendCode)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, h.view(state))
}

// ClearFriendCode handles DELETE /api/v1/session/friend-code
func (h *SessionHandler) ClearFriendCode(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())
	state, err := h.sessions.ClearFriendCode(r.Context(), sessionID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, h.view(state))
}
