package rest

import (
	"context"
	"net/http"
	"net/url"

	"ecokart-gateway/internal/domain"

	"github.com/goccy/go-json"
)

// ProductsRepository implements domain.ProductsClient over the upstream
// /products/ endpoint. The upstream returns either a bare JSON array or a
// paginated {count, next, previous, results} envelope depending on
// deployment; both shapes are accepted.
type ProductsRepository struct {
	client *Client
}

func NewProductsRepository(client *Client) *ProductsRepository {
	return &ProductsRepository{client: client}
}

type productEnvelope struct {
	Count    int64            `json:"count"`
	Next     *string          `json:"next"`
	Previous *string          `json:"previous"`
	Results  []map[string]any `json:"results"`
}

func (r *ProductsRepository) Search(ctx context.Context, token string, filter domain.SearchFilter) (*domain.ProductPage, error) {
	params := url.Values{}
	if filter.Search != "" {
		params.Set("search", filter.Search)
	}
	if filter.Category != "" {
		params.Set("category", filter.Category)
	}
	if filter.SubCategory != "" {
		params.Set("sub_category", filter.SubCategory)
	}
	if filter.Brand != "" {
		params.Set("brand", filter.Brand)
	}
	if filter.Seller != "" {
		params.Set("seller", filter.Seller)
	}
	if filter.Ordering != "" {
		params.Set("ordering", filter.Ordering)
	}

	path := "/products/"
	if query := params.Encode(); query != "" {
		path += "?" + query
	}

	var raw json.RawMessage
	if err := r.client.do(ctx, http.MethodGet, path, token, nil, &raw); err != nil {
		return nil, err
	}
	return decodeProductPage(raw)
}

func decodeProductPage(raw json.RawMessage) (*domain.ProductPage, error) {
	if isJSONArray(raw) {
		var results []map[string]any
		if err := json.Unmarshal(raw, &results); err != nil {
			return nil, &domain.RemoteError{Message: "unexpected product list format"}
		}
		return &domain.ProductPage{Count: int64(len(results)), Results: results}, nil
	}

	var env productEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &domain.RemoteError{Message: "unexpected product list format"}
	}
	return &domain.ProductPage{
		Count:    env.Count,
		Next:     env.Next,
		Previous: env.Previous,
		Results:  env.Results,
	}, nil
}

func isJSONArray(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}
