package adapter

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"plant-pal/internal/core/model"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

const tokenCookie = "token"

type userKey struct{}

// RequestLogger logs one line per request.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.InfoContext(r.Context(), "request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}

// Session reads the session token from the "token" cookie, then from a Bearer
// header, and puts the user in the request context. A cookie that no longer
// parses is cleared. Requests without a valid token pass through anonymously;
// RequireAuth enforces a session.
func Session(a *Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c, err := r.Cookie(tokenCookie); err == nil && c.Value != "" {
				u, err := a.ParseToken(c.Value)
				if err == nil {
					next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
					return
				}
				clearTokenCookie(w)
			}
			if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
				if u, err := a.ParseToken(strings.TrimPrefix(h, "Bearer ")); err == nil {
					next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func WithUser(ctx context.Context, u model.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// UserFrom returns the signed-in user, if any.
func UserFrom(ctx context.Context) (model.User, bool) {
	u, ok := ctx.Value(userKey{}).(model.User)
	return u, ok
}

// RequireAuth rejects requests without a session with 401. The login link
// brings the user back to the requested URL.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFrom(r.Context()); !ok {
			login := "/login?callbackUrl=" + url.QueryEscape(r.URL.RequestURI())
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "sign in to continue", map[string]interface{}{"login": login})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func setTokenCookie(w http.ResponseWriter, token string, maxAge time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	})
}

func clearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
