// Package logout реализует HTTP-обработчик завершения сессии.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/members-only/internal/http/middlewarectx"
	"github.com/magabrotheeeer/members-only/internal/lib/session"
)

// Handler обрабатывает выход пользователя.
type Handler struct {
	log *slog.Logger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP сбрасывает сессионную cookie и перенаправляет на главную.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	if user := middlewarectx.CurrentUser(r.Context()); user != nil {
		h.log.Info("user logged out",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("username", user.Username),
		)
	}

	http.SetCookie(w, session.ExpiredCookie())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
