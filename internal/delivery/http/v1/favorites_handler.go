package v1

import (
	"net/http"

	"ecokart-gateway/internal/domain"
	"ecokart-gateway/internal/usecase"
	"ecokart-gateway/pkg/utils"

	"github.com/goccy/go-json"
)

type FavoritesHandler struct {
	favorites *usecase.FavoritesUsecase
}

func NewFavoritesHandler(favorites *usecase.FavoritesUsecase) *FavoritesHandler {
	return &FavoritesHandler{favorites: favorites}
}

type favoritesState struct {
	Records []domain.FavoriteRecord `json:"records"`
	Loading bool                    `json:"loading"`
	Error   string                  `json:"error,omitempty"`
}

func (h *FavoritesHandler) state() favoritesState {
	return favoritesState{
		Records: h.favorites.Records(),
		Loading: h.favorites.Loading(),
		Error:   h.favorites.Err(),
	}
}

// GetFavorites handles GET /api/v1/favorites. It refreshes the list from
// upstream and returns the resulting state; when logged out that is an empty
// list with no error.
func (h *FavoritesHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	h.favorites.Load(r.Context())
	utils.WriteJSON(w, http.StatusOK, h.state())
}

type favoriteRequest struct {
	Product domain.Product `json:"product"`
}

// AddFavorite handles POST /api/v1/favorites.
func (h *FavoritesHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	var req favoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ok := h.favorites.Add(r.Context(), req.Product)
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"ok":    ok,
		"error": h.favorites.Err(),
	})
}

// RemoveFavorite handles DELETE /api/v1/favorites/{productId}. Removing a
// product that is not favorited is a no-op, reported with ok=false and no
// error.
func (h *FavoritesHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	productID := utils.ParseInt64(r.PathValue("productId"), 0)
	if productID == 0 {
		utils.WriteError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	ok := h.favorites.Remove(r.Context(), productID)
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"ok":    ok,
		"error": h.favorites.Err(),
	})
}

// ToggleFavorite handles POST /api/v1/favorites/toggle. Membership is
// re-checked at dispatch, so rapid repeated toggles resolve against the
// freshest local state.
func (h *FavoritesHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	var req favoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ok := h.favorites.Toggle(r.Context(), req.Product)
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"ok":         ok,
		"isFavorite": h.favorites.IsFavorite(req.Product.ID),
		"error":      h.favorites.Err(),
	})
}

// ClearError handles DELETE /api/v1/favorites/error.
func (h *FavoritesHandler) ClearError(w http.ResponseWriter, r *http.Request) {
	h.favorites.ClearError()
	utils.WriteMessage(w, http.StatusOK, "Error cleared")
}
