package mw

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey string

const actorCtxKey contextKey = "actor"

const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
)

// Actor is the caller resolved from the bearer token.
type Actor struct {
	ID   string
	Role string
}

func ActorFromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorCtxKey).(Actor)
	return a, ok
}

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorCtxKey, a)
}

var (
	errNoToken      = errors.New("unauthorized")
	errTokenFormat  = errors.New("invalid token format")
	errTokenInvalid = errors.New("invalid or expired token")
	errSubject      = errors.New("user_id missing or malformed")
)

// AuthMiddleware verifies an HMAC-signed bearer token issued by the identity
// service and stores the resolved Actor on the request context.
func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	key := []byte(jwtSecret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, err := authenticate(r.Header.Get("Authorization"), key)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

func authenticate(header string, key []byte) (Actor, error) {
	if header == "" {
		return Actor{}, errNoToken
	}
	scheme, raw, ok := strings.Cut(header, " ")
	if !ok || scheme != "Bearer" || raw == "" || strings.Contains(raw, " ") {
		return Actor{}, errTokenFormat
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	})
	if err != nil || !token.Valid {
		return Actor{}, errTokenInvalid
	}

	userID, _ := claims["user_id"].(string)
	if _, err := uuid.Parse(userID); err != nil {
		return Actor{}, errSubject
	}
	role, _ := claims["role"].(string)
	return Actor{ID: userID, Role: role}, nil
}

// RequireRole rejects callers whose token carries a different role.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if actor.Role != role {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
