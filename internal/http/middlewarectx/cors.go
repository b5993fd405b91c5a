package middlewarectx

import (
	"net/http"
	"net/url"
	"slices"

	"github.com/go-chi/cors"
)

// OriginAllowed разрешает origin из списка, а также любой порт localhost и 127.0.0.1.
func OriginAllowed(allowed []string) func(origin string) bool {
	return func(origin string) bool {
		if origin == "" {
			return false
		}
		if slices.Contains(allowed, origin) {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return false
		}
		host := u.Hostname()
		return host == "localhost" || host == "127.0.0.1"
	}
}

// CORS возвращает middleware с поддержкой кук (credentials).
func CORS(allowed []string) func(http.Handler) http.Handler {
	allow := OriginAllowed(allowed)
	return cors.Handler(cors.Options{
		AllowOriginFunc: func(_ *http.Request, origin string) bool {
			return allow(origin)
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
