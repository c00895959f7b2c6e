package server

import (
	"context"
	"net/http"

	"github.com/curatorhq/social-admin-gateway/internal/auth"
)

type operatorKeyCtx struct{}

// AuthMiddleware validates the Bearer API key on every request and injects
// the matched operator key into the context.
func AuthMiddleware(authenticator *auth.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Liveness probes don't carry credentials.
			if r.URL.Path == "/healthz" {
				next.ServeHTTP(w, r)
				return
			}

			apiKey, err := auth.ExtractAPIKey(r)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}

			key, err := authenticator.ValidateAPIKey(apiKey)
			if err != nil {
				http.Error(w, "Invalid API key", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), operatorKeyCtx{}, key)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetOperatorKey retrieves the authenticated operator key from context.
func GetOperatorKey(ctx context.Context) (auth.Key, bool) {
	k, ok := ctx.Value(operatorKeyCtx{}).(auth.Key)
	return k, ok
}
