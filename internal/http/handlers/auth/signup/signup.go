// Package signup реализует HTTP-обработчики формы регистрации.
//
// Регистрация: валидация полей → проверка занятости username →
// хэширование пароля → создание учётной записи → redirect на главную.
// При любой ошибке форма отображается заново с введёнными значениями
// и списком нарушений; учётная запись при этом не создаётся.
package signup

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/members-only/internal/http/forms"
	"github.com/magabrotheeeer/members-only/internal/http/render"
	"github.com/magabrotheeeer/members-only/internal/lib/sl"
	"github.com/magabrotheeeer/members-only/internal/services/auth"
)

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, firstName, lastName, username, rawPassword string) (string, error)
}

// Handler обрабатывает запросы регистрации.
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
	Form   *forms.SignUpForm
	Errors []forms.FieldError
}

// Form отображает пустую форму регистрации.
func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	h.render.Page(w, r, http.StatusOK, "signup.html", pageData{Form: &forms.SignUpForm{}})
}

// Submit обрабатывает отправку формы регистрации.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.signup"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := r.ParseForm(); err != nil {
		log.Error("failed to parse form", sl.Err(err))
		h.render.Fail(w, r)
		return
	}

	form := forms.ParseSignUp(r)
	if errs := form.Validate(); len(errs) > 0 {
		log.Info("validation failed", slog.Int("violations", len(errs)))
		h.render.Page(w, r, http.StatusUnprocessableEntity, "signup.html", pageData{
			Form:   form,
			Errors: errs,
		})
		return
	}

	uid, err := h.auth.Register(r.Context(), form.FirstName, form.LastName, form.Username, form.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUsernameTaken) {
			log.Info("username already taken", slog.String("username", form.Username))
			h.render.Page(w, r, http.StatusUnprocessableEntity, "signup.html", pageData{
				Form: form,
				Errors: []forms.FieldError{
					{Field: "username", Message: "A user with that username already exists"},
				},
			})
			return
		}
		log.Error("registration failed", sl.Err(err))
		h.render.Fail(w, r)
		return
	}

	log.Info("user registered", slog.String("uid", uid), slog.String("username", form.Username))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
