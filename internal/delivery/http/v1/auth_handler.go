package v1

import (
	"net/http"

	"ecokart-gateway/internal/usecase"
	"ecokart-gateway/pkg/utils"

	"github.com/goccy/go-json"
)

type AuthHandler struct {
	session *usecase.SessionUsecase
}

func NewAuthHandler(session *usecase.SessionUsecase) *AuthHandler {
	return &AuthHandler{session: session}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Username == "" || req.Password == "" {
		utils.WriteError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	if err := h.session.Login(r.Context(), req.Username, req.Password); err != nil {
		writeUpstreamError(w, err, "Login failed")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"authenticated": true,
	})
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles POST /api/v1/auth/signup. A successful signup logs the new
// account straight in.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		utils.WriteError(w, http.StatusBadRequest, "Username, email and password are required")
		return
	}

	if err := h.session.Signup(r.Context(), req.Username, req.Email, req.Password); err != nil {
		writeUpstreamError(w, err, "Signup failed")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"authenticated": true,
	})
}

// Logout handles POST /api/v1/auth/logout. The local session is always
// cleared, so this cannot fail from the caller's point of view.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.session.Logout(r.Context())
	utils.WriteMessage(w, http.StatusOK, "Logged out")
}

// Session handles GET /api/v1/auth/session.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"authenticated": h.session.Authenticated(),
	})
}
