package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"avkngifts-api/internal/cache"
	"avkngifts-api/internal/cart"
	"avkngifts-api/internal/catalog"
	"avkngifts-api/internal/client"
	"avkngifts-api/internal/model"
	"avkngifts-api/internal/repository"
)

// fakeLedgerRepo is an in-memory OwnershipRepository that records writes for
// assertions and can be forced to fail.
type fakeLedgerRepo struct {
	mu      sync.Mutex
	records map[string][]model.OwnershipRecord
	marks   int
	fail    bool
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{records: make(map[string][]model.OwnershipRecord)}
}

func (f *fakeLedgerRepo) GetItems(ctx context.Context, friendCode string) ([]model.OwnershipRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errors.New("ledger unavailable")
	}
	return f.records[friendCode], nil
}

func (f *fakeLedgerRepo) MarkStatus(ctx context.Context, friendCode, itemID, itemName string, status model.OwnershipStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("ledger unavailable")
	}
	f.marks++
	for i, rec := range f.records[friendCode] {
		if rec.ItemID == itemID {
			f.records[friendCode][i].ItemName = itemName
			f.records[friendCode][i].Status = status
			return nil
		}
	}
	f.records[friendCode] = append(f.records[friendCode], model.OwnershipRecord{
		FriendCode: friendCode,
		ItemID:     itemID,
		ItemName:   itemName,
		Status:     status,
		CreatedAt:  time.Now().UTC(),
	})
	return nil
}

func (f *fakeLedgerRepo) Close() error { return nil }

func (f *fakeLedgerRepo) markCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.marks
}

func (f *fakeLedgerRepo) recordsFor(friendCode string) []model.OwnershipRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.OwnershipRecord(nil), f.records[friendCode]...)
}

var _ repository.OwnershipRepository = (*fakeLedgerRepo)(nil)

func testCatalog() *catalog.Store {
	return catalog.NewStore([]model.Item{
		{ID: "AV-1", Name: "Luvas de Couro", Category: "Roupas", Price: 1000, ReleaseDate: "01/01/2024 00:00"},
		{ID: "AV-2", Name: "Sofa Moderno", Category: "Moveis", Price: 2500, ReleaseDate: "02/01/2024 00:00"},
		{ID: "AV-3", Name: "Tiara Dourada", Category: "Acessorios", Price: 40000, ReleaseDate: "03/01/2024 00:00"},
	})
}

// testEnv wires the service layer against an httptest upstream, a memory
// cache, and the fake ledger.
type testEnv struct {
	sessions *SessionService
	gifts    *GiftService
	repo     *fakeLedgerRepo
}

func newTestEnv(t *testing.T, upstream http.Handler) *testEnv {
	t.Helper()

	server := httptest.NewServer(upstream)
	t.Cleanup(server.Close)

	return newTestEnvAt(t, server.URL)
}

func newTestEnvAt(t *testing.T, baseURL string) *testEnv {
	t.Helper()

	mem := cache.NewMemoryCache()
	t.Cleanup(func() { mem.Close() })

	repo := newFakeLedgerRepo()
	ledger := NewLedgerService(repo)
	avakin := client.New(baseURL, 5*time.Second, 5*time.Second)

	limits := cart.Limits{MaxItems: 5, MaxItemPrice: 30000, MaxTotal: 100000}
	sessions := NewSessionService(mem, time.Hour, testCatalog(), limits, avakin, ledger)

	return &testEnv{
		sessions: sessions,
		gifts:    NewGiftService(sessions, avakin, ledger),
		repo:     repo,
	}
}

// seedSession persists a session state for the given id.
func (e *testEnv) seedSession(t *testing.T, sessionID string, state *model.SessionState) {
	t.Helper()
	if err := e.sessions.Save(context.Background(), sessionID, state); err != nil {
		t.Fatalf("seed session: %v", err)
	}
}

// readyState returns a session that passes every gift-send gate.
func readyState(balance int, itemIDs ...string) *model.SessionState {
	state := model.NewSessionState()
	state.Key = "TEST-KEY"
	state.KeyValid = true
	state.Balance = &balance
	state.FriendCode = "ABC-123"

	store := testCatalog()
	for _, id := range itemIDs {
		item, ok := store.Item(id)
		if !ok {
			panic("unknown test item " + id)
		}
		state.Cart = append(state.Cart, model.CartEntry{Item: item, Quantity: 1})
	}
	return state
}
