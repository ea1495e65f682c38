package auth

import (
	"log/slog"
	"net/http"

	"github.com/atlas-retail/atlas-retail/internal/platform/httpx"
	"github.com/atlas-retail/atlas-retail/internal/shared"
)

// Middleware guards routes behind a valid session token.
type Middleware struct {
	Tokens *TokenIssuer
	Logger *slog.Logger
}

// RequireAuth rejects requests without a valid token cookie or bearer
// header and stores the user id on the context.
func (m Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := bearerToken(r)
		if tokenString == "" {
			if cookie, err := r.Cookie(CookieName); err == nil {
				tokenString = cookie.Value
			}
		}
		if tokenString == "" {
			httpx.RespondError(w, httpx.ErrUnauthorized)
			return
		}

		claims, err := m.Tokens.Parse(tokenString)
		if err != nil {
			if m.Logger != nil {
				m.Logger.Warn("reject token", slog.String("path", r.URL.Path), slog.Any("error", err))
			}
			httpx.RespondError(w, httpx.ErrUnauthorized)
			return
		}

		ctx := shared.ContextWithUserID(r.Context(), claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	header := r.Header.Get("Authorization")
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}
