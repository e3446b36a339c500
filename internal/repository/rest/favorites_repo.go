package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"ecokart-gateway/internal/domain"
)

// FavoritesRepository implements domain.FavoritesClient over the upstream
// /userfavorite/ endpoints.
type FavoritesRepository struct {
	client *Client
}

func NewFavoritesRepository(client *Client) *FavoritesRepository {
	return &FavoritesRepository{client: client}
}

func (r *FavoritesRepository) List(ctx context.Context, token string) ([]domain.FavoriteRecord, error) {
	var records []domain.FavoriteRecord
	if err := r.client.do(ctx, http.MethodGet, "/userfavorite/", token, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *FavoritesRepository) Create(ctx context.Context, token string, productID int64) (*domain.FavoriteRecord, error) {
	body := struct {
		ProductID int64 `json:"product_id"`
	}{ProductID: productID}

	var record domain.FavoriteRecord
	if err := r.client.do(ctx, http.MethodPost, "/userfavorite/", token, body, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *FavoritesRepository) Delete(ctx context.Context, token string, favoriteID int64) error {
	path := fmt.Sprintf("/userfavorite/%d/", favoriteID)
	err := r.client.do(ctx, http.MethodDelete, path, token, nil, nil)
	if err != nil {
		// Already removed upstream, treat as success.
		var re *domain.RemoteError
		if errors.As(err, &re) && re.Status == http.StatusNotFound {
			return nil
		}
		return err
	}
	return nil
}
