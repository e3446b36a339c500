package usecase

import (
	"context"
	"testing"
	"time"

	"ecokart-gateway/internal/domain"
)

// mockFavoritesClient is an in-memory stand-in for the upstream favorites
// API. byToken holds the server-side list per session token; hooks allow
// simulating session changes while a request is in flight.
type mockFavoritesClient struct {
	byToken map[string][]domain.FavoriteRecord
	nextID  int64

	listErr   error
	createErr error
	deleteErr error

	listCalls   int
	createCalls int
	deleteCalls int

	beforeListReturns func()
}

func newMockFavoritesClient() *mockFavoritesClient {
	return &mockFavoritesClient{
		byToken: make(map[string][]domain.FavoriteRecord),
		nextID:  100,
	}
}

func (m *mockFavoritesClient) seed(token string, productIDs ...int64) {
	for _, pid := range productIDs {
		m.nextID++
		m.byToken[token] = append(m.byToken[token], domain.FavoriteRecord{
			ID:      m.nextID,
			Product: domain.Product{ID: pid, Title: "seeded"},
			AddedAt: time.Now(),
		})
	}
}

func (m *mockFavoritesClient) List(ctx context.Context, token string) ([]domain.FavoriteRecord, error) {
	m.listCalls++
	if m.beforeListReturns != nil {
		m.beforeListReturns()
	}
	if m.listErr != nil {
		return nil, m.listErr
	}
	records := m.byToken[token]
	out := make([]domain.FavoriteRecord, len(records))
	copy(out, records)
	return out, nil
}

func (m *mockFavoritesClient) Create(ctx context.Context, token string, productID int64) (*domain.FavoriteRecord, error) {
	m.createCalls++
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.nextID++
	record := domain.FavoriteRecord{
		ID:      m.nextID,
		Product: domain.Product{ID: productID, Title: "created"},
		AddedAt: time.Now(),
	}
	m.byToken[token] = append(m.byToken[token], record)
	return &record, nil
}

func (m *mockFavoritesClient) Delete(ctx context.Context, token string, favoriteID int64) error {
	m.deleteCalls++
	if m.deleteErr != nil {
		return m.deleteErr
	}
	kept := m.byToken[token][:0]
	for _, r := range m.byToken[token] {
		if r.ID != favoriteID {
			kept = append(kept, r)
		}
	}
	m.byToken[token] = kept
	return nil
}

func TestLoadWithoutSessionResetsCleanly(t *testing.T) {
	mock := newMockFavoritesClient()
	uc := NewFavoritesUsecase(mock)

	uc.Load(context.Background())

	if mock.listCalls != 0 {
		t.Errorf("expected no network call for anonymous load, got %d", mock.listCalls)
	}
	if len(uc.Records()) != 0 {
		t.Errorf("expected empty records, got %d", len(uc.Records()))
	}
	if uc.Err() != "" {
		t.Errorf("logged-out load must not be an error state, got %q", uc.Err())
	}
	if uc.Loading() {
		t.Error("loading must be false after anonymous load")
	}
}

func TestLoadReflectsFetchedMembership(t *testing.T) {
	mock := newMockFavoritesClient()
	mock.seed("tok1", 7, 42, 99)

	uc := NewFavoritesUsecase(mock)
	uc.Bind("tok1")
	uc.Load(context.Background())

	if got := len(uc.Records()); got != 3 {
		t.Fatalf("expected 3 records, got %d", got)
	}
	for _, pid := range []int64{7, 42, 99} {
		if !uc.IsFavorite(pid) {
			t.Errorf("expected product %d to be a favorite", pid)
		}
	}
	if uc.IsFavorite(1) {
		t.Error("product 1 was never favorited")
	}
	if uc.Err() != "" || uc.Loading() {
		t.Errorf("unexpected state after load: err=%q loading=%v", uc.Err(), uc.Loading())
	}
}

func TestLoadFailureClearsRecordsAndSetsError(t *testing.T) {
	mock := newMockFavoritesClient()
	mock.seed("tok1", 7)
	mock.listErr = &domain.RemoteError{Status: 500, Message: "server unavailable"}

	uc := NewFavoritesUsecase(mock)
	uc.Bind("tok1")
	uc.Load(context.Background())

	if len(uc.Records()) != 0 {
		t.Error("records must be cleared on load failure")
	}
	if uc.Err() != "server unavailable" {
		t.Errorf("expected upstream message forwarded, got %q", uc.Err())
	}
	if uc.Loading() {
		t.Error("loading must end false after a failed load")
	}
}

func TestStaleLoadIsDiscardedAfterSessionChange(t *testing.T) {
	mock := newMockFavoritesClient()
	mock.seed("tok1", 7, 8)

	uc := NewFavoritesUsecase(mock)
	uc.Bind("tok1")

	// The session changes to tok2 while the tok1 list request is in flight;
	// the tok1 response must not overwrite tok2's (empty) state.
	mock.beforeListReturns = func() {
		mock.beforeListReturns = nil
		uc.Bind("tok2")
	}
	uc.Load(context.Background())

	if got := len(uc.Records()); got != 0 {
		t.Fatalf("stale response committed: %d records leaked across sessions", got)
	}
	if uc.IsFavorite(7) {
		t.Error("tok1 favorite visible under tok2")
	}
}

func TestAddWithoutSessionFailsLocally(t *testing.T) {
	mock := newMockFavoritesClient()
	uc := NewFavoritesUsecase(mock)

	ok := uc.Add(context.Background(), domain.Product{ID: 5, Title: "Bamboo Brush"})

	if ok {
		t.Error("anonymous add must fail")
	}
	if mock.createCalls != 0 {
		t.Errorf("anonymous add must not hit the network, got %d calls", mock.createCalls)
	}
	if uc.Err() != signInMessage {
		t.Errorf("expected sign-in prompt, got %q", uc.Err())
	}
}

func TestAddThenRemoveRestoresState(t *testing.T) {
	mock := newMockFavoritesClient()
	uc := NewFavoritesUsecase(mock)
	uc.Bind("tok1")
	uc.Load(context.Background())

	product := domain.Product{ID: 5, Title: "Bamboo Brush"}
	if !uc.Add(context.Background(), product) {
		t.Fatal("add failed")
	}
	if !uc.IsFavorite(5) {
		t.Fatal("product not a favorite after add")
	}
	if !uc.Remove(context.Background(), 5) {
		t.Fatal("remove failed")
	}
	if len(uc.Records()) != 0 {
		t.Errorf("expected pre-add state restored, got %d records", len(uc.Records()))
	}
	if uc.IsFavorite(5) {
		t.Error("product still a favorite after remove")
	}
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	mock := newMockFavoritesClient()
	mock.seed("tok1", 7)

	uc := NewFavoritesUsecase(mock)
	uc.Bind("tok1")
	uc.Load(context.Background())

	ok := uc.Remove(context.Background(), 42)

	if ok {
		t.Error("removing an absent favorite must return false")
	}
	if mock.deleteCalls != 0 {
		t.Errorf("removing an absent favorite must not hit the network, got %d calls", mock.deleteCalls)
	}
	if len(uc.Records()) != 1 {
		t.Errorf("records changed by a no-op remove: %d", len(uc.Records()))
	}
	if uc.Err() != "" {
		t.Errorf("a no-op remove is not an error, got %q", uc.Err())
	}
}

func TestRemoveFailureLeavesRecordsUntouched(t *testing.T) {
	mock := newMockFavoritesClient()
	mock.seed("tok1", 7)

	uc := NewFavoritesUsecase(mock)
	uc.Bind("tok1")
	uc.Load(context.Background())

	mock.deleteErr = &domain.RemoteError{Status: 500, Message: "delete failed upstream"}
	ok := uc.Remove(context.Background(), 7)

	if ok {
		t.Error("remove must report failure")
	}
	if len(uc.Records()) != 1 {
		t.Error("records must be untouched when the upstream delete fails")
	}
	if uc.Err() != "delete failed upstream" {
		t.Errorf("expected upstream message, got %q", uc.Err())
	}
}

func TestToggleDispatchesFreshly(t *testing.T) {
	mock := newMockFavoritesClient()
	uc := NewFavoritesUsecase(mock)
	uc.Bind("tok1")
	uc.Load(context.Background())

	product := domain.Product{ID: 5, Title: "Bamboo Brush"}

	if !uc.Toggle(context.Background(), product) {
		t.Fatal("first toggle (add) failed")
	}
	if !uc.IsFavorite(5) {
		t.Fatal("expected favorite after first toggle")
	}
	if !uc.Toggle(context.Background(), product) {
		t.Fatal("second toggle (remove) failed")
	}
	if uc.IsFavorite(5) {
		t.Error("expected not-favorite after second toggle")
	}
	if mock.createCalls != 1 || mock.deleteCalls != 1 {
		t.Errorf("expected one create and one delete, got %d/%d", mock.createCalls, mock.deleteCalls)
	}
}

func TestClearErrorKeepsRecords(t *testing.T) {
	mock := newMockFavoritesClient()
	mock.seed("tok1", 7)

	uc := NewFavoritesUsecase(mock)
	uc.Bind("tok1")
	uc.Load(context.Background())

	mock.createErr = &domain.RemoteError{Status: 500, Message: "boom"}
	uc.Add(context.Background(), domain.Product{ID: 9, Title: "Jute Bag"})
	if uc.Err() == "" {
		t.Fatal("expected error after failed add")
	}

	uc.ClearError()

	if uc.Err() != "" {
		t.Error("error not cleared")
	}
	if len(uc.Records()) != 1 {
		t.Error("records must survive ClearError")
	}
}

func TestUnauthenticatedRemoteFailureAsksForSignIn(t *testing.T) {
	mock := newMockFavoritesClient()
	mock.listErr = domain.ErrUnauthenticated

	uc := NewFavoritesUsecase(mock)
	uc.Bind("expired-token")
	uc.Load(context.Background())

	if uc.Err() != signInMessage {
		t.Errorf("expected sign-in prompt for rejected token, got %q", uc.Err())
	}
}
