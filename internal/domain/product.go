package domain

import "context"

// Product is the canonical storefront product shape. The upstream aggregator
// stores prices as display strings ("₹295"), not numbers; sorting by price is
// therefore a client-side concern (see usecase.ExtractPrice).
type Product struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Brand        *string `json:"brand"`
	SellingPrice string  `json:"selling_price"`
	CostPrice    *string `json:"cost_price"`
	ImgURL       string  `json:"img_url"`
	Discount     *string `json:"discount"`
	Rating       *string `json:"rating"`
	Description  *string `json:"description"`
	Category     *string `json:"category"`
	SubCategory  *string `json:"sub_category"`
	Seller       string  `json:"seller"`
	ProductLink  string  `json:"product_link"`
}

// SearchFilter mirrors the upstream product listing query parameters.
type SearchFilter struct {
	Search      string
	Category    string
	SubCategory string
	Brand       string
	Seller      string
	Ordering    string
}

// ProductPage is one page of raw product listings. Results stay loosely typed
// because the upstream omits fields and occasionally sends wrong types; the
// catalog usecase sanitizes them into Products.
type ProductPage struct {
	Count    int64
	Next     *string
	Previous *string
	Results  []map[string]any
}

// ProductsClient fetches product listings from the upstream catalog API.
// The token is optional; anonymous browsing is supported.
type ProductsClient interface {
	Search(ctx context.Context, token string, filter SearchFilter) (*ProductPage, error)
}
