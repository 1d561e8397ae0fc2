package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"avkngifts-api/internal/client"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func proxyRouter(baseURL string) http.Handler {
	avakin := client.New(baseURL, 5*time.Second, 5*time.Second)
	h := NewProxyHandler(avakin)

	r := chi.NewRouter()
	r.Get("/api/balance/{key}", h.Balance)
	r.Post("/api/gift", h.Gift)
	return r
}

func TestBalanceProxyRelaysStatusAndBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/balance/TEST-KEY", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"key":"TEST-KEY","saldo":5000,"ativa":true}`))
	}))
	defer upstream.Close()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/balance/TEST-KEY", nil)
	proxyRouter(upstream.URL).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"key":"TEST-KEY","saldo":5000,"ativa":true}`, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestBalanceProxyRelaysUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"invalid key"}`))
	}))
	defer upstream.Close()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/balance/BAD-KEY", nil)
	proxyRouter(upstream.URL).ServeHTTP(rec, req)

	// Upstream rejections pass through untouched, no enveloping.
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"detail":"invalid key"}`, rec.Body.String())
}

func TestBalanceProxyTransportFailure(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	upstream.Close()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/balance/TEST-KEY", nil)
	proxyRouter(upstream.URL).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Erro ao consultar saldo"}`, rec.Body.String())
}

func TestGiftProxyForwardsBody(t *testing.T) {
	var received string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/gift", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		received = string(body)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"sucesso":true,"mensagem":"ok"}`))
	}))
	defer upstream.Close()

	payload := `{"friend_code":"ABC-123","items":["AV-1"],"key":"TEST-KEY"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/gift", strings.NewReader(payload))
	proxyRouter(upstream.URL).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, payload, received)
	assert.JSONEq(t, `{"sucesso":true,"mensagem":"ok"}`, rec.Body.String())
}

func TestGiftProxyTransportFailure(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	upstream.Close()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/gift", strings.NewReader(`{}`))
	proxyRouter(upstream.URL).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Erro ao enviar presentes"}`, rec.Body.String())
}

func TestProxyEmptyUpstreamBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer upstream.Close()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/balance/TEST-KEY", nil)
	proxyRouter(upstream.URL).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
