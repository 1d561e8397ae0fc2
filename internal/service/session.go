package service

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"avkngifts-api/internal/cache"
	"avkngifts-api/internal/cart"
	"avkngifts-api/internal/catalog"
	"avkngifts-api/internal/client"
	"avkngifts-api/internal/model"
	"avkngifts-api/pkg/apierror"
)

// sessionKeyPrefix namespaces session documents in the cache.
const sessionKeyPrefix = "session:"

// SessionService owns the per-session state: key validity, cached balance,
// friend code with its blocked-item list, and the cart. All state is loaded
// from and saved to the cache around each operation; nothing lives in
// process-global variables.
type SessionService struct {
	cache   cache.Cache
	ttl     time.Duration
	catalog *catalog.Store
	limits  cart.Limits
	avakin  *client.AvakinClient
	ledger  *LedgerService
}

// NewSessionService creates a session service.
func NewSessionService(
	c cache.Cache,
	ttl time.Duration,
	store *catalog.Store,
	limits cart.Limits,
	avakin *client.AvakinClient,
	ledger *LedgerService,
) *SessionService {
	return &SessionService{
		cache:   c,
		ttl:     ttl,
		catalog: store,
		limits:  limits,
		avakin:  avakin,
		ledger:  ledger,
	}
}

// Limits exposes the configured cart limits, e.g. for the session payload.
func (s *SessionService) Limits() cart.Limits {
	return s.limits
}

// Load retrieves the session state, returning a fresh session on a cache
// miss or an unreadable document.
func (s *SessionService) Load(ctx context.Context, sessionID string) *model.SessionState {
	data, err := s.cache.Get(ctx, sessionKeyPrefix+sessionID)
	if err != nil {
		return model.NewSessionState()
	}

	var state model.SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		log.Printf("[SessionService] Warning: discarding corrupt session %s: %v", sessionID, err)
		return model.NewSessionState()
	}
	return &state
}

// Save persists the session state with a sliding TTL.
func (s *SessionService) Save(ctx context.Context, sessionID string, state *model.SessionState) error {
	state.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, sessionKeyPrefix+sessionID, data, s.ttl)
}

// CheckKey validates a key against the external balance endpoint and caches
// the outcome. An inactive key is not an error: the session is marked
// invalid with a null balance and returned as-is.
func (s *SessionService) CheckKey(ctx context.Context, sessionID, key string) (*model.SessionState, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, apierror.BadRequest("key is required")
	}

	state := s.Load(ctx, sessionID)

	result, err := s.avakin.Balance(ctx, key)
	if err != nil {
		log.Printf("[SessionService] Balance check failed: %v", err)
		return nil, apierror.InternalError("Erro ao consultar saldo")
	}

	if !result.OK() {
		state.KeyValid = false
		state.Balance = nil
		if err := s.Save(ctx, sessionID, state); err != nil {
			return nil, err
		}
		return nil, apierror.Unauthorized("Chave invalida ou inativa")
	}

	if !result.Balance.Active {
		state.Key = key
		state.KeyValid = false
		state.Balance = nil
		if err := s.Save(ctx, sessionID, state); err != nil {
			return nil, err
		}
		return state, nil
	}

	balance := result.Balance.Balance
	state.Key = key
	state.KeyValid = true
	state.Balance = &balance
	if err := s.Save(ctx, sessionID, state); err != nil {
		return nil, err
	}

	log.Printf("[SessionService] Key validated, balance=%d", balance)
	return state, nil
}

// Logout clears the key state. The cart and friend code survive, matching
// the storefront behavior.
func (s *SessionService) Logout(ctx context.Context, sessionID string) (*model.SessionState, error) {
	state := s.Load(ctx, sessionID)
	state.Key = ""
	state.KeyValid = false
	state.Balance = nil
	if err := s.Save(ctx, sessionID, state); err != nil {
		return nil, err
	}
	return state, nil
}

// SetFriendCode normalizes the code, loads the blocked-item list from the
// ledger, and stores both on the session.
func (s *SessionService) SetFriendCode(ctx context.Context, sessionID, rawCode string) (*model.SessionState, error) {
	code := model.FormatFriendCode(rawCode)
	if len(code) != 7 { // XXX-XXX
		return nil, apierror.BadRequest("friend code must have six characters")
	}

	state := s.Load(ctx, sessionID)
	state.FriendCode = code
	state.BlockedItems = s.ledger.BlockedItems(ctx, code)
	if err := s.Save(ctx, sessionID, state); err != nil {
		return nil, err
	}

	log.Printf("[SessionService] Friend code set, %d blocked item(s)", len(state.BlockedItems))
	return state, nil
}

// ClearFriendCode removes the friend code and its blocked-item list.
func (s *SessionService) ClearFriendCode(ctx context.Context, sessionID string) (*model.SessionState, error) {
	state := s.Load(ctx, sessionID)
	state.FriendCode = ""
	state.BlockedItems = nil
	if err := s.Save(ctx, sessionID, state); err != nil {
		return nil, err
	}
	return state, nil
}

// AddToCart runs the admission policy for a catalog item and persists the
// cart on success.
func (s *SessionService) AddToCart(ctx context.Context, sessionID, itemID string) (*model.SessionState, error) {
	item, ok := s.catalog.Item(itemID)
	if !ok {
		return nil, apierror.NotFound("item not found")
	}

	state := s.Load(ctx, sessionID)
	c := cart.Restore(s.limits, state.Cart)

	if reason, added := c.Add(item, state.IsBlocked); !added {
		if reason == cart.RejectDuplicate {
			return nil, apierror.Conflict(reason.String())
		}
		return nil, apierror.UnprocessableEntity(reason.String())
	}

	state.Cart = c.Entries()
	if err := s.Save(ctx, sessionID, state); err != nil {
		return nil, err
	}
	return state, nil
}

// RemoveFromCart deletes an entry by item id; removing an absent id is a
// no-op.
func (s *SessionService) RemoveFromCart(ctx context.Context, sessionID, itemID string) (*model.SessionState, error) {
	state := s.Load(ctx, sessionID)
	c := cart.Restore(s.limits, state.Cart)
	c.Remove(itemID)
	state.Cart = c.Entries()
	if err := s.Save(ctx, sessionID, state); err != nil {
		return nil, err
	}
	return state, nil
}

// ClearCart empties the cart unconditionally.
func (s *SessionService) ClearCart(ctx context.Context, sessionID string) (*model.SessionState, error) {
	state := s.Load(ctx, sessionID)
	state.Cart = nil
	if err := s.Save(ctx, sessionID, state); err != nil {
		return nil, err
	}
	return state, nil
}
