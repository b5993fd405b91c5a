// Package middlewarectx содержит HTTP middleware сервера: загрузку сессии,
// проверки доступа, CORS, ограничение частоты, метрики, трейсинг и журнал запросов.
//
// LoadSession кладёт сессию в контекст, RequireAuth и RequireAdmin только читают её.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/glam-app/internal/http/response"
	"github.com/magabrotheeeer/glam-app/internal/lib/sl"
	"github.com/magabrotheeeer/glam-app/internal/session"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// SessionKey ключ текущей сессии в контексте.
const SessionKey Key = "session"

// SessionManager читает и продлевает сессию запроса.
type SessionManager interface {
	Current(r *http.Request) (*session.Session, error)
	Refresh(w http.ResponseWriter, r *http.Request) error
}

// WithSession возвращает контекст с сессией s.
func WithSession(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(ctx, SessionKey, s)
}

// SessionFrom достаёт сессию из контекста.
func SessionFrom(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(SessionKey).(*session.Session)
	return s, ok && s != nil
}

// LoadSession читает сессию по куке и продлевает её срок.
// Ошибка хранилища сессий не прерывает запрос, он продолжается как анонимный.
func LoadSession(sm SessionManager, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.LoadSession"

			sess, err := sm.Current(r)
			if err != nil {
				log.Error("failed to load session",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					sl.Err(err),
				)
				next.ServeHTTP(w, r)
				return
			}
			if sess == nil {
				next.ServeHTTP(w, r)
				return
			}

			if err := sm.Refresh(w, r); err != nil {
				log.Warn("failed to refresh session", slog.String("op", op), sl.Err(err))
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		})
	}
}

// RequireAuth отвечает 401, если в запросе нет действующей сессии.
func RequireAuth(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := SessionFrom(r.Context()); !ok {
				log.Info("unauthenticated request rejected",
					slog.String("path", r.URL.Path),
					slog.String("request_id", middleware.GetReqID(r.Context())),
				)
				response.Fail(w, r, http.StatusUnauthorized, "not authenticated")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin отвечает 401 без сессии и 403, если флаг администратора в сессии не выставлен.
// Флаг берётся из снимка, сделанного при входе.
func RequireAdmin(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := SessionFrom(r.Context())
			if !ok {
				response.Fail(w, r, http.StatusUnauthorized, "not authenticated")
				return
			}
			if !sess.IsAdmin {
				log.Info("non-admin request rejected",
					slog.String("user_id", sess.UserID),
					slog.String("path", r.URL.Path),
				)
				response.Fail(w, r, http.StatusForbidden, "admin access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
