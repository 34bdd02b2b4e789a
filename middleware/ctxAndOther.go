package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"foodgram/auth"
	"foodgram/globals"
	"foodgram/rdx"

	"github.com/julienschmidt/httprouter"
)

// Authenticate rejects requests without a valid, unrevoked bearer token and
// puts the user id into the request context.
func Authenticate(h httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		claims, ok := claimsFromHeader(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		h(w, withClaims(r, claims), ps)
	}
}

// OptionalAuth resolves the user when a token is present but lets anonymous
// requests through. Read endpoints use it to scope is_favorited,
// is_in_shopping_cart and is_subscribed to the requester.
func OptionalAuth(h httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if claims, ok := claimsFromHeader(r); ok {
			r = withClaims(r, claims)
		}
		h(w, r, ps)
	}
}

func claimsFromHeader(r *http.Request) (*auth.Claims, bool) {
	header := r.Header.Get("Authorization")
	tokenString := strings.TrimPrefix(header, "Bearer ")
	if tokenString == "" || tokenString == header {
		return nil, false
	}
	claims, err := auth.ParseToken(tokenString)
	if err != nil {
		return nil, false
	}
	if rdx.IsTokenRevoked(r.Context(), claims.ID) {
		return nil, false
	}
	return claims, true
}

func withClaims(r *http.Request, claims *auth.Claims) *http.Request {
	ctx := context.WithValue(r.Context(), globals.UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, globals.TokenIDKey, claims)
	return r.WithContext(ctx)
}

func RecoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("panic recovered: %v", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
