package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/jwt"
)

// RequireHR restricts a route to HR staff
func RequireHR(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := jwt.IdentityFromContext(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if !identity.IsHR() {
			response.Forbidden(w, "HR access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
