package middleware

import (
	"net/http"

	"github.com/dokterku/klinik-backend-go/internal/domain/user"
	"github.com/dokterku/klinik-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RequirePermission authorizes the request against the static role to
// permission mapping. The role travels in the JWT claims, so no database
// lookup happens here.
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Forbidden(w, "Access denied")
				return
			}

			roleStr, ok := claims["role"].(string)
			if !ok {
				response.Forbidden(w, "Access denied")
				return
			}

			if !user.HasPermission(user.Role(roleStr), permission) {
				response.Forbidden(w, "You do not have permission to perform this action")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
