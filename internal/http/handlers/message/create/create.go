// Package create реализует HTTP-обработчики публикации нового сообщения.
//
// Страница доступна только аутентифицированным пользователям (middleware
// RequireUser). Сообщение создаётся с текущим временем и автором из сессии.
package create

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/members-only/internal/http/forms"
	"github.com/magabrotheeeer/members-only/internal/http/middlewarectx"
	"github.com/magabrotheeeer/members-only/internal/http/render"
	"github.com/magabrotheeeer/members-only/internal/lib/sl"
	"github.com/magabrotheeeer/members-only/internal/models"
)

// Service описывает интерфейс бизнес-логики публикации.
type Service interface {
	Create(ctx context.Context, author *models.User, title, text string) (int, error)
}

// Handler обрабатывает публикацию сообщений.
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
	Form   *forms.MessageForm
	Errors []forms.FieldError
}

// Form отображает пустую форму нового сообщения.
func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	h.render.Page(w, r, http.StatusOK, "newmessage.html", pageData{Form: &forms.MessageForm{}})
}

// Submit обрабатывает отправку формы нового сообщения.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.message.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user := middlewarectx.CurrentUser(r.Context())

	if err := r.ParseForm(); err != nil {
		log.Error("failed to parse form", sl.Err(err))
		h.render.Fail(w, r)
		return
	}

	form := forms.ParseMessage(r)
	if errs := form.Validate(); len(errs) > 0 {
		log.Info("validation failed", slog.Int("violations", len(errs)))
		h.render.Page(w, r, http.StatusUnprocessableEntity, "newmessage.html", pageData{
			Form:   form,
			Errors: errs,
		})
		return
	}

	id, err := h.board.Create(r.Context(), user, form.Title, form.Text)
	if err != nil {
		log.Error("failed to create message", sl.Err(err))
		h.render.Fail(w, r)
		return
	}

	log.Info("message created", slog.Int("id", id), slog.String("author", user.Username))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
