package handlers

import (
	"context"
	"net/http"
	"strings"

	"uniprep/internal/models"
	utility "uniprep/internal/utility"
	httpClient "uniprep/internal/utility/http"
)

// Authenticate accepts "Authorization: Bearer <token>" and stores the token
// details in the request context under models.ContextUser.
func (h *Handler) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fields := strings.Fields(r.Header.Get("Authorization"))
		if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
			httpClient.RespondError(w, http.StatusUnauthorized, "Access token required", nil)
			return
		}

		claims, err := utility.ValidateToken(fields[1], h.opts.JWTSecret)
		if err != nil {
			httpClient.RespondError(w, http.StatusForbidden, "Invalid or expired token", err)
			return
		}

		ctx := context.WithValue(r.Context(), models.ContextUser, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func CurrentUser(ctx context.Context) (*utility.SignedDetails, bool) {
	claims, ok := ctx.Value(models.ContextUser).(*utility.SignedDetails)
	return claims, ok
}

// RequireAdmin must run after Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := CurrentUser(r.Context())
		if !ok || !claims.Admin {
			httpClient.RespondError(w, http.StatusForbidden, "Access denied. Admins only.", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) adminOnly() []func(http.Handler) http.Handler {
	if !h.opts.AdminAuth {
		return nil
	}
	return []func(http.Handler) http.Handler{h.Authenticate, RequireAdmin}
}
