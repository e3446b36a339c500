package usecase

import (
	"context"
	"errors"
	"sync"

	"ecokart-gateway/internal/domain"
	"ecokart-gateway/pkg/logger"
)

const signInMessage = "please sign in to save favorites"

// FavoritesUsecase owns the in-memory favorites state for the current
// session. All durable state lives upstream; this controller mediates
// add/remove/toggle against the FavoritesClient, exposes membership
// queries, and tracks loading/error status for the UI.
//
// The state belongs to exactly one session token. Bind discards it whenever
// the token changes, and in-flight loads are committed only if the token they
// were issued under is still current. Two toggles racing on the same product
// can still observe stale membership; the upstream is the source of truth and
// the next Load corrects any duplicate.
type FavoritesUsecase struct {
	client domain.FavoritesClient

	mu      sync.Mutex
	token   string
	records []domain.FavoriteRecord
	loading bool
	errMsg  string
}

func NewFavoritesUsecase(client domain.FavoritesClient) *FavoritesUsecase {
	return &FavoritesUsecase{client: client}
}

// Bind attaches the controller to a new session token, discarding all state
// held for the previous one. Callers are expected to follow up with Load.
func (u *FavoritesUsecase) Bind(token string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.token = token
	u.records = nil
	u.loading = false
	u.errMsg = ""
}

// Load fetches the full favorite list for the current session. Without a
// session it resets to an empty list with no error; that is the expected
// logged-out state, not a failure. A response that arrives after the session
// has changed is discarded.
func (u *FavoritesUsecase) Load(ctx context.Context) {
	u.mu.Lock()
	token := u.token
	if token == "" {
		u.records = nil
		u.loading = false
		u.errMsg = ""
		u.mu.Unlock()
		return
	}
	u.loading = true
	u.mu.Unlock()

	records, err := u.client.List(ctx, token)

	u.mu.Lock()
	defer u.mu.Unlock()
	if u.token != token {
		// Session changed while the request was in flight.
		return
	}
	u.loading = false
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to load favorites")
		u.records = nil
		u.errMsg = failureMessage(err, "could not load your favorites")
		return
	}
	u.records = records
	u.errMsg = ""
}

// IsFavorite reports whether the given product is in the current favorites.
// Pure in-memory lookup, never touches the network.
func (u *FavoritesUsecase) IsFavorite(productID int64) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, r := range u.records {
		if r.Product.ID == productID {
			return true
		}
	}
	return false
}

// Add favorites the product upstream and appends the created record on
// success. Without a session it fails locally with no network call.
func (u *FavoritesUsecase) Add(ctx context.Context, product domain.Product) bool {
	u.mu.Lock()
	token := u.token
	if token == "" {
		u.errMsg = signInMessage
		u.mu.Unlock()
		return false
	}
	u.mu.Unlock()

	record, err := u.client.Create(ctx, token, product.ID)

	u.mu.Lock()
	defer u.mu.Unlock()
	if err != nil {
		logger.Warn().Err(err).Int64("product_id", product.ID).Msg("Failed to add favorite")
		u.errMsg = failureMessage(err, "could not add to favorites")
		return false
	}
	if u.token != token {
		// Session changed mid-flight; the record belongs to the old identity.
		return false
	}
	u.records = append(u.records, *record)
	u.errMsg = ""
	return true
}

// Remove unfavorites the product upstream using the favorite record's own ID.
// Removing a product that is not favorited is an idempotent no-op: it returns
// false without a network call and without setting an error.
func (u *FavoritesUsecase) Remove(ctx context.Context, productID int64) bool {
	u.mu.Lock()
	token := u.token
	if token == "" {
		u.errMsg = signInMessage
		u.mu.Unlock()
		return false
	}
	var favoriteID int64
	found := false
	for _, r := range u.records {
		if r.Product.ID == productID {
			favoriteID = r.ID
			found = true
			break
		}
	}
	u.mu.Unlock()

	if !found {
		return false
	}

	err := u.client.Delete(ctx, token, favoriteID)

	u.mu.Lock()
	defer u.mu.Unlock()
	if err != nil {
		logger.Warn().Err(err).Int64("product_id", productID).Msg("Failed to remove favorite")
		u.errMsg = failureMessage(err, "could not remove from favorites")
		return false
	}
	if u.token != token {
		return false
	}
	kept := u.records[:0]
	for _, r := range u.records {
		if r.ID != favoriteID {
			kept = append(kept, r)
		}
	}
	u.records = kept
	u.errMsg = ""
	return true
}

// Toggle removes the product if it is currently a favorite, otherwise adds
// it. Membership is checked fresh at dispatch time; it is not cached across
// the decision and the action.
func (u *FavoritesUsecase) Toggle(ctx context.Context, product domain.Product) bool {
	if u.IsFavorite(product.ID) {
		return u.Remove(ctx, product.ID)
	}
	return u.Add(ctx, product)
}

// Records returns a copy of the current favorite records.
func (u *FavoritesUsecase) Records() []domain.FavoriteRecord {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]domain.FavoriteRecord, len(u.records))
	copy(out, u.records)
	return out
}

// Loading reports whether a user-visible load is in progress.
func (u *FavoritesUsecase) Loading() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.loading
}

// Err returns the current error message, empty when there is none.
func (u *FavoritesUsecase) Err() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.errMsg
}

// ClearError clears the error message without touching records or loading.
func (u *FavoritesUsecase) ClearError() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.errMsg = ""
}

// failureMessage maps a client error to a user-facing message, preferring
// the upstream detail when one was forwarded.
func failureMessage(err error, fallback string) string {
	if errors.Is(err, domain.ErrUnauthenticated) {
		return signInMessage
	}
	var re *domain.RemoteError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	return fallback
}
