package service

import (
	"context"
	"log"

	"avkngifts-api/internal/client"
	"avkngifts-api/internal/model"
	"avkngifts-api/pkg/apierror"
)

// GiftService orchestrates a gift send: gating, the single upstream call,
// per-item ledger writes, and session bookkeeping.
type GiftService struct {
	sessions *SessionService
	avakin   *client.AvakinClient
	ledger   *LedgerService
}

// NewGiftService creates a gift service.
func NewGiftService(sessions *SessionService, avakin *client.AvakinClient, ledger *LedgerService) *GiftService {
	return &GiftService{
		sessions: sessions,
		avakin:   avakin,
		ledger:   ledger,
	}
}

// Send forwards the full cart to the external gift endpoint. A send is only
// permitted when the key is valid, a friend code is set, the cart is
// non-empty, and no send is already in flight for this session. Terminal
// per-item outcomes are written to the ledger; rate-limited responses
// produce no writes at all. On overall success the cart is cleared, and the
// cached balance is refreshed whenever the response reports one.
func (g *GiftService) Send(ctx context.Context, sessionID string) (*model.GiftResponse, error) {
	state := g.sessions.Load(ctx, sessionID)

	if !state.KeyValid || state.Key == "" {
		return nil, apierror.Unauthorized("Chave invalida ou inativa")
	}
	if state.FriendCode == "" {
		return nil, apierror.BadRequest("friend code is required")
	}
	if len(state.Cart) == 0 {
		return nil, apierror.BadRequest("cart is empty")
	}
	if state.Sending {
		return nil, apierror.Conflict("a gift send is already in progress")
	}

	// Busy flag, not a lock: at most one outstanding send per session.
	state.Sending = true
	if err := g.sessions.Save(ctx, sessionID, state); err != nil {
		return nil, err
	}
	defer func() {
		state.Sending = false
		if err := g.sessions.Save(ctx, sessionID, state); err != nil {
			log.Printf("[GiftService] Warning: failed to save session after send: %v", err)
		}
	}()

	itemIDs := make([]string, len(state.Cart))
	for i, e := range state.Cart {
		itemIDs[i] = e.Item.ID
	}

	result, err := g.avakin.SendGifts(ctx, model.GiftRequest{
		FriendCode: state.FriendCode,
		Items:      itemIDs,
		Key:        state.Key,
	})
	if err != nil {
		log.Printf("[GiftService] Gift send failed: %v", err)
		return nil, apierror.InternalError("Erro ao enviar presentes")
	}

	if !result.OK() {
		return nil, g.upstreamError(result)
	}

	resp := &result.Response
	g.applyResults(ctx, state, resp)

	if balance, ok := resp.RemainingBalance(); ok {
		state.Balance = &balance
	}
	if resp.Success {
		state.Cart = nil
	}

	log.Printf("[GiftService] Send finished: success=%t message=%q", resp.Success, resp.Message)
	return resp, nil
}

// applyResults records terminal per-item outcomes in the ledger and on the
// session's blocked list. A rate-limited response is transient and must not
// write anything.
func (g *GiftService) applyResults(ctx context.Context, state *model.SessionState, resp *model.GiftResponse) {
	if resp.RateLimited() {
		log.Printf("[GiftService] Sender rate-limited, skipping ledger writes")
		return
	}

	for _, r := range resp.Results() {
		status, terminal := r.TerminalStatus()
		if !terminal {
			continue
		}

		name := r.ItemName
		if name == "" {
			if item, ok := g.sessions.catalog.Item(r.ItemID); ok {
				name = item.Name
			}
		}

		g.ledger.MarkStatus(ctx, state.FriendCode, r.ItemID, name, status)
		if !state.IsBlocked(r.ItemID) {
			state.BlockedItems = append(state.BlockedItems, model.BlockedItem{
				ItemID: r.ItemID,
				Status: status,
			})
		}
	}
}

// upstreamError maps a non-2xx upstream reply onto the user-facing error
// taxonomy.
func (g *GiftService) upstreamError(result *client.GiftResult) *apierror.Error {
	detail := client.Detail(result.Body)
	switch result.StatusCode {
	case 401:
		return apierror.Unauthorized("Chave invalida ou inativa")
	case 402:
		if detail == "" {
			detail = "Saldo insuficiente na chave"
		}
		return apierror.PaymentRequired(detail)
	case 404:
		if detail == "" {
			detail = "Item nao encontrado"
		}
		return apierror.NotFound(detail)
	default:
		return apierror.Upstream(result.StatusCode, detail)
	}
}
