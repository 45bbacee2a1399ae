package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
)

// CORS разрешает запросы виджета бронирования с сайта магазина
func CORS(allowedOrigins, allowedMethods, allowedHeaders []string) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return handlers.CORS(
		handlers.AllowedOrigins(allowedOrigins),
		handlers.AllowedMethods(allowedMethods),
		handlers.AllowedHeaders(allowedHeaders),
		handlers.ExposedHeaders([]string{HeaderRequestID}),
	)
}
