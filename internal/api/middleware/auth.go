package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/api/handlers"
)

const msgUnauthorized = "no autorizado"

// AdminAuth проверяет Bearer токен админских маршрутов
// Сравнение постоянного времени: токен долгоживущий
func AdminAuth(adminToken string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(adminToken)) != 1 {
				handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
