// Package remove реализует HTTP-обработчик удаления сообщения.
//
// Действие доступно только администраторам (middleware RequireAdmin):
// проверка выполняется до любых изменений в хранилище.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/members-only/internal/lib/sl"
	"github.com/magabrotheeeer/members-only/internal/services/board"
)

// Service описывает интерфейс бизнес-логики удаления.
type Service interface {
	Remove(ctx context.Context, id int) error
}

// Handler обрабатывает удаление сообщений.
type Handler struct {
	log   *slog.Logger
	board Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, board Service) *Handler {
	return &Handler{
		log:   log,
		board: board,
	}
}

// ServeHTTP удаляет сообщение с ID из тела формы и перенаправляет на главную.
// Отсутствующее сообщение не является ошибкой для пользователя.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.message.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := r.ParseForm(); err != nil {
		log.Error("failed to parse form", sl.Err(err))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	id, err := strconv.Atoi(r.PostFormValue("id"))
	if err != nil {
		log.Info("invalid message id", slog.String("id", r.PostFormValue("id")))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := h.board.Remove(r.Context(), id); err != nil {
		if errors.Is(err, board.ErrMessageNotFound) {
			log.Info("message already removed", slog.Int("id", id))
		} else {
			log.Error("failed to remove message", sl.Err(err))
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	log.Info("message removed", slog.Int("id", id))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
