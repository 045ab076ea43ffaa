package auth

import (
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"vibecheck/internal/models"
)

// RequireUser resolves the bearer token to a persisted user and injects it
// into the request context. A missing, malformed, or expired token is 401;
// a valid token whose subject no longer exists (account deleted after
// issuance) is 404, matching the contract of GET /api/auth/me.
func RequireUser(db *gorm.DB, tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}
			subject, err := tokens.Verify(strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}
			var u models.User
			if err := db.WithContext(r.Context()).First(&u, "username = ?", subject).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					http.Error(w, "user not found", http.StatusNotFound)
					return
				}
				http.Error(w, "user lookup failed", http.StatusInternalServerError)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), &u)))
		})
	}
}
