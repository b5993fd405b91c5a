// Package logout реализует выход: удаляет сессию и стирает куку.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/glam-app/internal/http/response"
	"github.com/magabrotheeeer/glam-app/internal/lib/sl"
)

// Sessions уничтожает сессию запроса.
type Sessions interface {
	Destroy(w http.ResponseWriter, r *http.Request) error
}

// Handler обрабатывает POST /api/logout.
type Handler struct {
	log      *slog.Logger
	sessions Sessions
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, sessions Sessions) *Handler {
	return &Handler{log: log, sessions: sessions}
}

// ServeHTTP godoc
// @Summary Выход
// @Description Удаляет сессию. Без сессии просто стирает куку.
// @Tags Auth
// @Produce json
// @Success 200 {object} response.OK
// @Failure 500 {object} response.ErrorResponse "Не удалось удалить сессию"
// @Router /api/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := h.sessions.Destroy(w, r); err != nil {
		log.Error("failed to destroy session", sl.Err(err))
		response.Fail(w, r, http.StatusInternalServerError, "failed to log out")
		return
	}

	render.JSON(w, r, response.OK{OK: true})
}
