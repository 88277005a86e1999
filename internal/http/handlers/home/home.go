// Package home реализует HTTP-обработчик главной страницы со списком сообщений.
//
// Сообщения видны всем посетителям; имя автора раскрывается только
// участникам клуба — проекция выполняется сервисом доски.
package home

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/members-only/internal/http/middlewarectx"
	"github.com/magabrotheeeer/members-only/internal/http/render"
	"github.com/magabrotheeeer/members-only/internal/lib/sl"
	"github.com/magabrotheeeer/members-only/internal/models"
)

// Service описывает интерфейс бизнес-логики доски для главной страницы.
type Service interface {
	List(ctx context.Context, viewer *models.User) ([]*models.MessageItem, error)
}

// Handler обрабатывает запросы главной страницы.
type Handler struct {
	log    *slog.Logger
	board  Service
	render *render.Renderer
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, board Service, render *render.Renderer) *Handler {
	return &Handler{
		log:    log,
		board:  board,
		render: render,
	}
}

type pageData struct {
	CurrentUser *models.User
	Messages    []*models.MessageItem
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.home"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user := middlewarectx.CurrentUser(r.Context())

	messages, err := h.board.List(r.Context(), user)
	if err != nil {
		log.Error("failed to list messages", sl.Err(err))
		h.render.Fail(w, r)
		return
	}

	h.render.Page(w, r, http.StatusOK, "index.html", pageData{
		CurrentUser: user,
		Messages:    messages,
	})
}
