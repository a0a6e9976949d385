package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/brandbite/brandbite-api/internal/pkg/jwt"
	"github.com/brandbite/brandbite-api/internal/pkg/response"
)

type contextKey string

const sessionKey contextKey = "session"

// DemoCookieName selects a persona in development in lieu of real auth.
const DemoCookieName = "bb-demo-user"

// Session is the request-scoped identity resolved once per request.
type Session struct {
	UserID    uuid.UUID
	Role      string
	CompanyID *uuid.UUID
}

// PersonaResolver resolves a demo persona cookie value into a session.
type PersonaResolver interface {
	ResolvePersona(ctx context.Context, persona string) (*Session, error)
}

// Auth returns middleware that resolves the request identity, either from
// a Bearer JWT or, when demo mode is on, from the persona cookie.
func Auth(jwtService *jwt.Service, personas PersonaResolver, demoMode bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")

			if authHeader == "" && demoMode && personas != nil {
				if cookie, err := r.Cookie(DemoCookieName); err == nil && cookie.Value != "" {
					sess, err := personas.ResolvePersona(r.Context(), cookie.Value)
					if err != nil {
						response.Unauthorized(w, "Unknown demo persona")
						return
					}
					next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
					return
				}
			}

			if authHeader == "" {
				response.Unauthorized(w, "Missing authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				response.Unauthorized(w, "Invalid authorization header format")
				return
			}

			claims, err := jwtService.ValidateAccessToken(parts[1])
			if err != nil {
				if err == jwt.ErrExpiredToken {
					response.Unauthorized(w, "Token expired")
				} else {
					response.Unauthorized(w, "Invalid token")
				}
				return
			}

			sess := &Session{
				UserID:    claims.UserID,
				Role:      claims.Role,
				CompanyID: claims.CompanyID,
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		})
	}
}

// WithSession returns a context carrying the session
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// GetSession extracts the session from context
func GetSession(ctx context.Context) *Session {
	if sess, ok := ctx.Value(sessionKey).(*Session); ok {
		return sess
	}
	return nil
}

// GetUserID extracts user ID from context
func GetUserID(ctx context.Context) uuid.UUID {
	if sess := GetSession(ctx); sess != nil {
		return sess.UserID
	}
	return uuid.Nil
}

// GetRole extracts role from context
func GetRole(ctx context.Context) string {
	if sess := GetSession(ctx); sess != nil {
		return sess.Role
	}
	return ""
}

// GetCompanyID extracts the company scope from context
func GetCompanyID(ctx context.Context) uuid.UUID {
	if sess := GetSession(ctx); sess != nil && sess.CompanyID != nil {
		return *sess.CompanyID
	}
	return uuid.Nil
}

// RequireRole returns middleware that checks user role
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userRole := GetRole(r.Context())

			for _, role := range roles {
				if userRole == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, "Insufficient permissions")
		})
	}
}

// RequireAdmin requires a platform admin role
func RequireAdmin() func(http.Handler) http.Handler {
	return RequireRole("SITE_OWNER", "SITE_ADMIN")
}

// RequireCustomer requires the customer role with a company scope
func RequireCustomer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return RequireRole("CUSTOMER")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetCompanyID(r.Context()) == uuid.Nil {
				response.Forbidden(w, "No company scope")
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}

// RequireCreative requires the creative role
func RequireCreative() func(http.Handler) http.Handler {
	return RequireRole("CREATIVE")
}
