package middleware

import (
	"net/http"
	"strings"

	"github.com/vidstream/vidstream/internal/apperr"
	"github.com/vidstream/vidstream/internal/ctxkeys"
	"github.com/vidstream/vidstream/internal/httpx"
	"github.com/vidstream/vidstream/internal/repository"
	"github.com/vidstream/vidstream/internal/service"
)

// Auth verifies the access token from the accessToken cookie or the
// Authorization header and loads the user into the request context. Requests
// without a valid token continue unauthenticated; RequireAuth decides whether
// that matters.
func Auth(tokens *service.TokenService, users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := accessTokenFrom(r)
			if tokenString == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokens.VerifyAccess(tokenString)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.ByID(claims.UserID)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := ctxkeys.WithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects unauthenticated requests with the 401 error envelope.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxkeys.User(r.Context())
		if user == nil {
			httpx.Error(w, apperr.Unauthorized("unauthorized request"))
			return
		}
		next.ServeHTTP(w, r)
	}
}

func accessTokenFrom(r *http.Request) string {
	cookie, err := r.Cookie("accessToken")
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return after
	}

	return ""
}
