package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/AdamBeresnev/esports-tracker/internal/esports"
	"github.com/AdamBeresnev/esports-tracker/internal/httputil"
	"github.com/AdamBeresnev/esports-tracker/internal/store"
	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
)

type ContextKey string

const (
	UserIDKey ContextKey = "userID"
	UserKey   ContextKey = "user"

	// SessionUserKey is the session entry holding the acting user's id.
	SessionUserKey = "userID"
)

// LoadActingUser puts the session's user into the request context. Requests
// without one pass through untouched.
func LoadActingUser(sessionManager *scs.SessionManager, userStore *store.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userIDStr := sessionManager.GetString(r.Context(), SessionUserKey)
			if userIDStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := uuid.Parse(userIDStr)
			if err != nil {
				sessionManager.Remove(r.Context(), SessionUserKey)
				next.ServeHTTP(w, r)
				return
			}

			user, err := userStore.GetUser(r.Context(), nil, userID)
			if err != nil {
				if !errors.Is(err, esports.ErrNotFound) {
					slog.Error("failed to load acting user", "user_id", userID, "error", err)
				}
				sessionManager.Remove(r.Context(), SessionUserKey)
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser rejects requests that carry no acting user.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUserIDFromContext(r.Context()); !ok {
			httputil.Unauthorized(w, "An acting user is required, POST /session first")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func WithUser(ctx context.Context, user *esports.User) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, user.ID)
	return context.WithValue(ctx, UserKey, user)
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	val := ctx.Value(UserIDKey)
	if val == nil {
		return uuid.Nil, false
	}

	id, ok := val.(uuid.UUID)
	return id, ok
}

func GetActingUser(ctx context.Context) *esports.User {
	val := ctx.Value(UserKey)
	if val == nil {
		return nil
	}
	user, ok := val.(*esports.User)
	if !ok {
		return nil
	}
	return user
}
