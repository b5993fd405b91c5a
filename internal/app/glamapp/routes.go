// Package glamapp собирает HTTP API магазина: хранилище, сессии, сервисы и маршруты.
package glamapp

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	_ "github.com/magabrotheeeer/glam-app/docs"
	"github.com/magabrotheeeer/glam-app/internal/config"
	"github.com/magabrotheeeer/glam-app/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/glam-app/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/glam-app/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/glam-app/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/glam-app/internal/http/handlers/health"
	"github.com/magabrotheeeer/glam-app/internal/http/handlers/product/create"
	productlist "github.com/magabrotheeeer/glam-app/internal/http/handlers/product/list"
	"github.com/magabrotheeeer/glam-app/internal/http/handlers/product/read"
	"github.com/magabrotheeeer/glam-app/internal/http/handlers/product/remove"
	"github.com/magabrotheeeer/glam-app/internal/http/handlers/product/update"
	"github.com/magabrotheeeer/glam-app/internal/http/handlers/sms/send"
	userlist "github.com/magabrotheeeer/glam-app/internal/http/handlers/users/list"
	"github.com/magabrotheeeer/glam-app/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/glam-app/internal/services/auth"
	catalogservice "github.com/magabrotheeeer/glam-app/internal/services/catalog"
	smsservice "github.com/magabrotheeeer/glam-app/internal/services/sms"
	"github.com/magabrotheeeer/glam-app/internal/session"
	"github.com/magabrotheeeer/glam-app/web"
)

// Deps зависимости маршрутов.
type Deps struct {
	Log         *slog.Logger
	Auth        *authservice.AuthService
	Catalog     *catalogservice.CatalogService
	SMS         *smsservice.Service
	Sessions    *session.Manager
	Registry    *prometheus.Registry
	SMSLimiter  *rate.Limiter
	CORS        config.CORS
	Access      config.Access
	ServiceName string
}

// NewRouter регистрирует все маршруты приложения.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	logger := d.Log

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middlewarectx.Tracing(d.ServiceName),
		middlewarectx.NewMetrics(d.Registry).Handler,
		middlewarectx.CORS(d.CORS.AllowedOrigins),
		middlewarectx.LoadSession(d.Sessions, logger),
		middlewarectx.Logger(logger),
	)

	mutationGuard := middlewarectx.RequireAuth(logger)
	if d.Access.AdminOnlyProducts {
		mutationGuard = middlewarectx.RequireAdmin(logger)
	}

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, d.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, d.Auth, d.Sessions).ServeHTTP)
		r.Post("/logout", logout.New(logger, d.Sessions).ServeHTTP)
		r.Get("/products", productlist.New(logger, d.Catalog).ServeHTTP)
		r.Get("/products/{id}", read.New(logger, d.Catalog).ServeHTTP)

		r.With(middlewarectx.RequireAuth(logger)).Get("/me", me.New(logger).ServeHTTP)

		users := userlist.New(logger, d.Auth)
		if d.Access.AdminOnlyUsers {
			r.With(middlewarectx.RequireAdmin(logger)).Get("/users", users.ServeHTTP)
		} else {
			r.Get("/users", users.ServeHTTP)
		}

		r.Group(func(r chi.Router) {
			r.Use(mutationGuard)
			r.Post("/products", create.New(logger, d.Catalog).ServeHTTP)
			r.Put("/products/{id}", update.New(logger, d.Catalog).ServeHTTP)
			r.Delete("/products/{id}", remove.New(logger, d.Catalog).ServeHTTP)
		})
	})

	r.With(middlewarectx.RateLimitMiddleware(logger, d.SMSLimiter)).
		Post("/enviar-sms", send.New(logger, d.SMS).ServeHTTP)

	r.Get("/health", health.New().ServeHTTP)
	r.Handle("/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	r.Get("/docs/*", httpSwagger.WrapHandler)

	r.Handle("/auth/*", http.StripPrefix("/auth/", http.FileServer(http.FS(web.FS))))

	return r
}
