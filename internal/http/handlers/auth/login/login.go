// Package login реализует HTTP-обработчики формы входа.
//
// При успешной аутентификации устанавливается сессионная cookie и
// выполняется redirect на главную; при неудаче форма отображается заново
// с общей ошибкой, не раскрывающей существование username. Пароль
// обратно в форму никогда не подставляется.
package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/members-only/internal/http/forms"
	"github.com/magabrotheeeer/members-only/internal/http/render"
	"github.com/magabrotheeeer/members-only/internal/lib/session"
	"github.com/magabrotheeeer/members-only/internal/lib/sl"
	"github.com/magabrotheeeer/members-only/internal/services/auth"
)

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	Login(ctx context.Context, username, rawPassword string) (string, error)
}

// Handler обрабатывает запросы входа.
type Handler struct {
	log      *slog.Logger
	auth     Service
	render   *render.Renderer
	tokenTTL time.Duration
}

// New создает новый экземпляр Handler. tokenTTL задаёт срок жизни
// сессионной cookie и совпадает с TTL сессионного токена.
func New(log *slog.Logger, auth Service, render *render.Renderer, tokenTTL time.Duration) *Handler {
	return &Handler{
		log:      log,
		auth:     auth,
		render:   render,
		tokenTTL: tokenTTL,
	}
}

type pageData struct {
	Username string
	Errors   []forms.FieldError
}

// Form отображает пустую форму входа.
func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	h.render.Page(w, r, http.StatusOK, "login.html", pageData{})
}

// Submit обрабатывает отправку формы входа.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := r.ParseForm(); err != nil {
		log.Error("failed to parse form", sl.Err(err))
		h.render.Fail(w, r)
		return
	}

	form := forms.ParseLogin(r)
	if errs := form.Validate(); len(errs) > 0 {
		log.Info("validation failed", slog.Int("violations", len(errs)))
		h.render.Page(w, r, http.StatusUnprocessableEntity, "login.html", pageData{
			Username: form.Username,
			Errors:   errs,
		})
		return
	}

	token, err := h.auth.Login(r.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			log.Info("login failed", slog.String("username", form.Username))
			h.render.Page(w, r, http.StatusUnauthorized, "login.html", pageData{
				Username: form.Username,
				Errors:   []forms.FieldError{{Field: "password", Message: "Invalid credentials"}},
			})
			return
		}
		log.Error("login failed", sl.Err(err))
		h.render.Fail(w, r)
		return
	}

	log.Info("login success", slog.String("username", form.Username))
	http.SetCookie(w, session.NewCookie(token, h.tokenTTL))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
