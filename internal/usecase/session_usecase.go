package usecase

import (
	"context"
	"sync"

	"ecokart-gateway/internal/domain"
	"ecokart-gateway/pkg/cache"
	"ecokart-gateway/pkg/logger"
)

const sessionTokenKey = "session:token"

// SessionUsecase is the auth binding between the upstream token endpoints
// and the favorites controller. It holds the single session credential and
// rebinds + reloads favorites on every transition, so one identity's
// favorites are never visible under another.
type SessionUsecase struct {
	auth      domain.AuthClient
	favorites *FavoritesUsecase
	store     cache.CacheService

	mu    sync.Mutex
	token string
}

// NewSessionUsecase restores a persisted token from the store, if any, and
// binds the favorites controller to it. Callers should Load favorites after
// construction to warm the restored session.
func NewSessionUsecase(auth domain.AuthClient, favorites *FavoritesUsecase, store cache.CacheService) *SessionUsecase {
	u := &SessionUsecase{
		auth:      auth,
		favorites: favorites,
		store:     store,
	}
	if v, found := store.Get(sessionTokenKey); found {
		if token, ok := v.(string); ok && token != "" {
			u.token = token
			logger.Info().Msg("Restored persisted session")
		}
	}
	favorites.Bind(u.token)
	return u
}

// Login exchanges credentials for a token, persists it and re-initializes
// the favorites state under the new identity.
func (u *SessionUsecase) Login(ctx context.Context, username, password string) error {
	token, err := u.auth.Login(ctx, username, password)
	if err != nil {
		return err
	}
	u.setToken(token)
	u.favorites.Bind(token)
	u.favorites.Load(ctx)
	logger.Info().Str("username", username).Msg("User logged in")
	return nil
}

// Signup registers the account and logs it straight in.
func (u *SessionUsecase) Signup(ctx context.Context, username, email, password string) error {
	if err := u.auth.Signup(ctx, username, email, password); err != nil {
		return err
	}
	return u.Login(ctx, username, password)
}

// Logout clears the local credential unconditionally and re-initializes the
// favorites state. The remote logout is best-effort: a failure is logged and
// never blocks the local transition.
func (u *SessionUsecase) Logout(ctx context.Context) {
	u.mu.Lock()
	token := u.token
	u.token = ""
	u.mu.Unlock()

	u.store.Delete(sessionTokenKey)
	u.favorites.Bind("")
	u.favorites.Load(ctx)

	if token != "" {
		if err := u.auth.Logout(ctx, token); err != nil {
			logger.Warn().Err(err).Msg("Remote logout failed, local session cleared anyway")
		}
	}
	logger.Info().Msg("User logged out")
}

// Token returns the current session token, empty when anonymous.
func (u *SessionUsecase) Token() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.token
}

// Authenticated reports whether a session credential is present.
func (u *SessionUsecase) Authenticated() bool {
	return u.Token() != ""
}

func (u *SessionUsecase) setToken(token string) {
	u.mu.Lock()
	u.token = token
	u.mu.Unlock()
	u.store.Set(sessionTokenKey, token, cache.NoExpiration)
}
