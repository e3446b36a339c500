package usecase

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"ecokart-gateway/internal/domain"
	"ecokart-gateway/pkg/cache"
)

const featuredCacheKey = "products:featured"

// Orderings handled locally. The upstream stores selling_price as a display
// string and would sort it lexicographically, so price orderings are applied
// here instead of being forwarded.
const (
	OrderingPriceAsc  = "price"
	OrderingPriceDesc = "-price"
)

type SortDirection int

const (
	PriceAscending SortDirection = iota
	PriceDescending
)

// CatalogUsecase fetches product listings from the upstream catalog, cleans
// them into the canonical Product shape and applies client-side price sorting.
type CatalogUsecase struct {
	products    domain.ProductsClient
	cache       cache.CacheService
	featuredTTL time.Duration
}

func NewCatalogUsecase(products domain.ProductsClient, cache cache.CacheService, featuredTTL time.Duration) *CatalogUsecase {
	return &CatalogUsecase{
		products:    products,
		cache:       cache,
		featuredTTL: featuredTTL,
	}
}

// Search queries the upstream listing endpoint and returns sanitized
// products plus the total count reported by the upstream (or the local count
// when the upstream sends a bare array).
func (uc *CatalogUsecase) Search(ctx context.Context, token string, filter domain.SearchFilter) ([]domain.Product, int64, error) {
	ordering := filter.Ordering
	localSort := ordering == OrderingPriceAsc || ordering == OrderingPriceDesc
	if localSort {
		filter.Ordering = ""
	}

	page, err := uc.products.Search(ctx, token, filter)
	if err != nil {
		return nil, 0, err
	}

	products := SanitizeProducts(page.Results)
	if localSort {
		direction := PriceAscending
		if ordering == OrderingPriceDesc {
			direction = PriceDescending
		}
		SortByPrice(products, direction)
	}

	count := page.Count
	if count == 0 {
		count = int64(len(products))
	}
	return products, count, nil
}

// Featured returns the top-rated listings, cached for the configured TTL.
func (uc *CatalogUsecase) Featured(ctx context.Context, token string) ([]domain.Product, error) {
	if cached, found := uc.cache.Get(featuredCacheKey); found {
		if products, ok := cached.([]domain.Product); ok {
			return products, nil
		}
	}

	products, _, err := uc.Search(ctx, token, domain.SearchFilter{Ordering: "-rating"})
	if err != nil {
		return nil, err
	}
	uc.cache.Set(featuredCacheKey, products, uc.featuredTTL)
	return products, nil
}

// SanitizeProducts turns loosely-typed upstream entries into canonical
// Products. It is total: entries without a usable id or a non-empty title are
// silently dropped, every surviving optional field falls back to its default,
// and no input can make it fail.
func SanitizeProducts(raw []map[string]any) []domain.Product {
	products := make([]domain.Product, 0, len(raw))
	for _, entry := range raw {
		if entry == nil {
			continue
		}
		id, ok := numericID(entry["id"])
		if !ok {
			continue
		}
		title, _ := entry["title"].(string)
		if title == "" {
			continue
		}

		products = append(products, domain.Product{
			ID:           id,
			Title:        title,
			Brand:        optString(entry["brand"]),
			SellingPrice: stringOr(entry["selling_price"], "N/A"),
			CostPrice:    optString(entry["cost_price"]),
			ImgURL:       stringOr(entry["img_url"], ""),
			Discount:     optString(entry["discount"]),
			Rating:       optString(entry["rating"]),
			Description:  optString(entry["description"]),
			Category:     optString(entry["category"]),
			SubCategory:  optString(entry["sub_category"]),
			Seller:       stringOr(entry["seller"], ""),
			ProductLink:  stringOr(entry["product_link"], ""),
		})
	}
	return products
}

// ExtractPrice derives a numeric price from a display string by stripping
// every rune that is not a digit or a decimal point and parsing the rest.
// Returns 0 for empty or unparsable input.
//
// Known limitation: this is locale-naive and misparses prices with thousands
// separators ("1.234,56" or "1,234"). Kept as-is for compatibility with the
// upstream display format; fix belongs upstream (numeric prices).
func ExtractPrice(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return v
}

// SortByPrice sorts products in place by their extracted numeric price.
// The sort is stable: products with equal extracted prices (including all the
// unparsable ones at 0) keep their original relative order.
func SortByPrice(products []domain.Product, direction SortDirection) {
	sort.SliceStable(products, func(i, j int) bool {
		pi := ExtractPrice(products[i].SellingPrice)
		pj := ExtractPrice(products[j].SellingPrice)
		if direction == PriceDescending {
			return pi > pj
		}
		return pi < pj
	})
}

// numericID accepts the id shapes the upstream has been seen to emit:
// JSON numbers (float64 after decoding), integers and numeric strings.
func numericID(v any) (int64, bool) {
	switch id := v.(type) {
	case float64:
		return int64(id), true
	case int64:
		return id, true
	case int:
		return int64(id), true
	case string:
		parsed, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// optString maps absent, non-string or empty values to nil.
func optString(v any) *string {
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}

// stringOr maps absent or non-string values to the fallback.
func stringOr(v any, fallback string) string {
	s, ok := v.(string)
	if !ok || s == "" {
		return fallback
	}
	return s
}
