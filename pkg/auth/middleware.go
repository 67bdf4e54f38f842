package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/vrudenko/cryptovest/pkg/utils"
)

type ContextKey string

const UserIDKey ContextKey = "userID"

const bearerPrefix = "Bearer "

// AuthMiddleware rejects requests without a valid bearer token and puts
// the authenticated user id on the request context.
func AuthMiddleware(next http.Handler) http.Handler {
	jwtService := &JWTService{}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimPrefix(header, bearerPrefix)
	return token, token != ""
}
