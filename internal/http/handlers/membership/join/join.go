// Package join реализует HTTP-обработчики вступления в клуб.
//
// Страница доступна только аутентифицированным пользователям (middleware
// RequireUser). Клубный пароль сравнивается с секретом из конфигурации;
// при совпадении пользователь становится участником. Повторное вступление
// не является ошибкой.
package join

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/members-only/internal/http/forms"
	"github.com/magabrotheeeer/members-only/internal/http/middlewarectx"
	"github.com/magabrotheeeer/members-only/internal/http/render"
	"github.com/magabrotheeeer/members-only/internal/lib/sl"
	"github.com/magabrotheeeer/members-only/internal/models"
	"github.com/magabrotheeeer/members-only/internal/services/auth"
)

// Service описывает интерфейс бизнес-логики членства.
type Service interface {
	JoinClub(ctx context.Context, user *models.User, clubPassword string) error
}

// Handler обрабатывает запросы вступления в клуб.
type Handler struct {
	log    *slog.Logger
	auth   Service
	render *render.Renderer
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, auth Service, render *render.Renderer) *Handler {
	return &Handler{
		log:    log,
		auth:   auth,
		render: render,
	}
}

type pageData struct {
	Member bool
	Errors []forms.FieldError
}

// Form отображает форму вступления в клуб.
func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	user := middlewarectx.CurrentUser(r.Context())
	h.render.Page(w, r, http.StatusOK, "join.html", pageData{Member: user.Member})
}

// Submit обрабатывает отправку клубного пароля.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.membership.join"

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

	form := forms.ParseJoin(r)
	if errs := form.Validate(); len(errs) > 0 {
		h.render.Page(w, r, http.StatusUnprocessableEntity, "join.html", pageData{
			Member: user.Member,
			Errors: errs,
		})
		return
	}

	if err := h.auth.JoinClub(r.Context(), user, form.Password); err != nil {
		if errors.Is(err, auth.ErrWrongClubPassword) {
			log.Info("wrong club password", slog.String("username", user.Username))
			h.render.Page(w, r, http.StatusUnprocessableEntity, "join.html", pageData{
				Member: user.Member,
				Errors: []forms.FieldError{{Field: "password", Message: "Incorrect password"}},
			})
			return
		}
		log.Error("failed to join the club", sl.Err(err))
		h.render.Fail(w, r)
		return
	}

	log.Info("user joined the club", slog.String("username", user.Username))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
