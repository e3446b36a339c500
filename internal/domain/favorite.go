package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnauthenticated is returned when an operation requires a session
	// token and none is present, or the upstream rejects the token.
	ErrUnauthenticated = errors.New("authentication required")
)

// RemoteError carries an upstream failure with the HTTP status and the
// detail message forwarded from the upstream body when available.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("upstream request failed with status %d", e.Status)
}

// FavoriteRecord is a server-owned join entity linking the current user to a
// product. It owns a full copy of the product as it was when favorited, and
// its ID is distinct from the product's ID.
type FavoriteRecord struct {
	ID      int64     `json:"id"`
	Product Product   `json:"product"`
	AddedAt time.Time `json:"added_at"`
}

// FavoritesClient issues authenticated CRUD calls for the user's favorite
// records against the upstream API.
type FavoritesClient interface {
	List(ctx context.Context, token string) ([]FavoriteRecord, error)
	Create(ctx context.Context, token string, productID int64) (*FavoriteRecord, error)
	// Delete removes a favorite by its record ID. A 404 from upstream means
	// the record is already gone and is not an error.
	Delete(ctx context.Context, token string, favoriteID int64) error
}
