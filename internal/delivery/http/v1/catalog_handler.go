package v1

import (
	"errors"
	"net/http"

	"ecokart-gateway/internal/domain"
	"ecokart-gateway/internal/usecase"
	"ecokart-gateway/pkg/utils"
)

type CatalogHandler struct {
	catalog *usecase.CatalogUsecase
	session *usecase.SessionUsecase
}

func NewCatalogHandler(catalog *usecase.CatalogUsecase, session *usecase.SessionUsecase) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, session: session}
}

// ListProducts handles GET /api/v1/products with the upstream filter params.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.SearchFilter{
		Search:      q.Get("search"),
		Category:    q.Get("category"),
		SubCategory: q.Get("sub_category"),
		Brand:       q.Get("brand"),
		Seller:      q.Get("seller"),
		Ordering:    q.Get("ordering"),
	}

	products, count, err := h.catalog.Search(r.Context(), h.session.Token(), filter)
	if err != nil {
		writeUpstreamError(w, err, "Failed to load products")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count":   count,
		"results": products,
	})
}

// Featured handles GET /api/v1/products/featured (top-rated listings).
func (h *CatalogHandler) Featured(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.Featured(r.Context(), h.session.Token())
	if err != nil {
		writeUpstreamError(w, err, "Failed to load featured products")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(products),
		"results": products,
	})
}

// writeUpstreamError maps collaborator failures onto gateway responses.
func writeUpstreamError(w http.ResponseWriter, err error, fallback string) {
	if errors.Is(err, domain.ErrUnauthenticated) {
		utils.WriteError(w, http.StatusUnauthorized, "Please login to continue")
		return
	}
	var re *domain.RemoteError
	if errors.As(err, &re) && re.Message != "" {
		utils.WriteError(w, http.StatusBadGateway, re.Message)
		return
	}
	utils.WriteError(w, http.StatusBadGateway, fallback)
}
