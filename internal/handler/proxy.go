package handler

import (
	"io"
	"log"
	"net/http"

	"avkngifts-api/internal/client"
	"avkngifts-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

// ProxyHandler exposes the two passthrough routes to the external gift API.
// Bodies and status codes are relayed verbatim in both directions; the only
// synthesized reply is a generic 500 on transport failure. No retries.
type ProxyHandler struct {
	avakin *client.AvakinClient
}

// NewProxyHandler creates a proxy handler.
func NewProxyHandler(avakin *client.AvakinClient) *ProxyHandler {
	return &ProxyHandler{avakin: avakin}
}

// Balance handles GET /api/balance/{key}
func (h *ProxyHandler) Balance(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	status, body, err := h.avakin.BalanceRaw(r.Context(), key)
	if err != nil {
		log.Printf("[ProxyHandler] Balance proxy error: %v", err)
		response.PassthroughError(w, "Erro ao consultar saldo")
		return
	}

	response.Passthrough(w, status, body)
}

// Gift handles POST /api/gift
func (h *ProxyHandler) Gift(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("[ProxyHandler] Gift proxy read error: %v", err)
		response.PassthroughError(w, "Erro ao enviar presentes")
		return
	}
	defer r.Body.Close()

	status, respBody, err := h.avakin.GiftRaw(r.Context(), body)
	if err != nil {
		log.Printf("[ProxyHandler] Gift proxy error: %v", err)
		response.PassthroughError(w, "Erro ao enviar presentes")
		return
	}

	response.Passthrough(w, status, respBody)
}
