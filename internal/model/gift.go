package model

import "strings"

// RateLimitSenderError is the distinguished error tag the external API uses
// when the sending side hit its 24h gifting limit. Responses carrying it are
// transient: they must not produce ledger writes.
const RateLimitSenderError = "GiftResponseError_RateLimitSender"

// BalanceResponse is the external balance endpoint payload.
type BalanceResponse struct {
	Key     string `json:"key"`
	Balance int    `json:"saldo"`
	Active  bool   `json:"ativa"`
}

// GiftRequest is the payload forwarded to the external gift endpoint.
type GiftRequest struct {
	FriendCode string   `json:"friend_code"`
	Items      []string `json:"items"`
	Key        string   `json:"key"`
}

// GiftResultItem is the per-item outcome of a send attempt.
type GiftResultItem struct {
	ItemID         string `json:"item_id"`
	ItemName       string `json:"item_nome"`
	Price          int    `json:"preco"`
	StatusCode     int    `json:"status_code"`
	Error          string `json:"erro,omitempty"`
	Success        bool   `json:"sucesso"`
	Message        string `json:"mensagem,omitempty"`
	Ignored        bool   `json:"ignorado,omitempty"`
	AccountBlocked bool   `json:"conta_bloqueada,omitempty"`
}

// TerminalStatus maps the result to a ledger status when the outcome is
// terminal. Detection is a substring match on the external error tag, which
// is the only contract the API offers. Rate-limit outcomes report ok=false.
func (r GiftResultItem) TerminalStatus() (OwnershipStatus, bool) {
	if strings.Contains(r.Error, "GiftResponseError_RateLimit") {
		return "", false
	}
	switch {
	case r.Success:
		return StatusOwned, true
	case strings.Contains(r.Error, "item is owned") || r.StatusCode == 409:
		return StatusOwned, true
	case strings.Contains(r.Error, "purchase not allowed") ||
		strings.Contains(r.Error, "PurchaseNotAllowed"):
		return StatusPurchaseNotAllowed, true
	}
	return "", false
}

// GiftDetails is the detail block of a gift response.
type GiftDetails struct {
	Error          string           `json:"error,omitempty"`
	AccountEmail   string           `json:"email_conta,omitempty"`
	TotalPrice     int              `json:"preco_total"`
	Successes      int              `json:"sucessos"`
	TotalItems     int              `json:"total_itens"`
	Results        []GiftResultItem `json:"resultados,omitempty"`
	KeyBalanceLeft *int             `json:"saldo_chave_restante,omitempty"`
	RequestedItems int              `json:"itens_solicitados,omitempty"`
}

// GiftResponse is the external gift endpoint payload.
type GiftResponse struct {
	Success bool         `json:"sucesso"`
	Message string       `json:"mensagem"`
	Error   string       `json:"error,omitempty"`
	Details *GiftDetails `json:"detalhes,omitempty"`
}

// RateLimited reports whether the response carries the sender rate-limit tag.
// The external API has placed it both at the top level and inside detalhes
// across versions, so both spots are checked.
func (g *GiftResponse) RateLimited() bool {
	if g.Error == RateLimitSenderError {
		return true
	}
	return g.Details != nil && g.Details.Error == RateLimitSenderError
}

// Results returns the per-item results, or nil when absent.
func (g *GiftResponse) Results() []GiftResultItem {
	if g.Details == nil {
		return nil
	}
	return g.Details.Results
}

// RemainingBalance returns the key balance reported by the response, if any.
func (g *GiftResponse) RemainingBalance() (int, bool) {
	if g.Details == nil || g.Details.KeyBalanceLeft == nil {
		return 0, false
	}
	return *g.Details.KeyBalanceLeft, true
}
