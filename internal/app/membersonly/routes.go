// Package membersonly собирает приложение доски объявлений и его маршруты.
package membersonly

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/magabrotheeeer/members-only/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/members-only/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/members-only/internal/http/handlers/auth/signup"
	"github.com/magabrotheeeer/members-only/internal/http/handlers/home"
	"github.com/magabrotheeeer/members-only/internal/http/handlers/membership/join"
	"github.com/magabrotheeeer/members-only/internal/http/handlers/message/create"
	"github.com/magabrotheeeer/members-only/internal/http/handlers/message/remove"
	"github.com/magabrotheeeer/members-only/internal/http/middlewarectx"
	"github.com/magabrotheeeer/members-only/internal/http/render"
	"github.com/magabrotheeeer/members-only/internal/lib/session"
	authservice "github.com/magabrotheeeer/members-only/internal/services/auth"
	boardservice "github.com/magabrotheeeer/members-only/internal/services/board"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	sessions *session.MakerImpl,
	users middlewarectx.UserProvider,
	authService *authservice.AuthService,
	boardService *boardservice.BoardService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.Session(sessions, users, logger),
	)

	renderer := render.New(logger)

	homeHandler := home.New(logger, boardService, renderer)
	signupHandler := signup.New(logger, authService, renderer)
	loginHandler := login.New(logger, authService, renderer, sessions.TTL())
	logoutHandler := logout.New(logger)
	joinHandler := join.New(logger, authService, renderer)
	createHandler := create.New(logger, boardService, renderer)
	removeHandler := remove.New(logger, boardService)

	// Открытые страницы
	r.Get("/", homeHandler.ServeHTTP)
	r.Get("/sign-up", signupHandler.Form)
	r.Post("/sign-up", signupHandler.Submit)
	r.Get("/log-in", loginHandler.Form)
	r.With(middlewarectx.RateLimit(logger)).Post("/log-in", loginHandler.Submit)
	r.Get("/log-out", logoutHandler.ServeHTTP)

	// Страницы, требующие аутентификации
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RequireUser(logger))
		r.Get("/join-the-club", joinHandler.Form)
		r.Post("/join-the-club", joinHandler.Submit)
		r.Get("/new-message", createHandler.Form)
		r.Post("/new-message", createHandler.Submit)
	})

	// Удаление сообщений доступно только администраторам
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RequireAdmin(logger))
		r.Post("/delete-msg", removeHandler.ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
}
