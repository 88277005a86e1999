// Package middlewarectx содержит HTTP middleware приложения.
//
// Session разбирает сессионную cookie, загружает соответствующего
// пользователя из хранилища и кладёт его в контекст запроса: обработчики
// видят текущего пользователя только через контекст, глобального состояния
// нет. Любая проблема с cookie или токеном даёт анонимный запрос.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/members-only/internal/lib/session"
	"github.com/magabrotheeeer/members-only/internal/lib/sl"
	"github.com/magabrotheeeer/members-only/internal/models"
	"github.com/magabrotheeeer/members-only/internal/storage/repository"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// UserKey — ключ для текущего пользователя в контексте.
const UserKey Key = "user"

// UserProvider описывает загрузку пользователя по имени.
type UserProvider interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Session возвращает HTTP middleware, который разрешает текущего
// пользователя по сессионной cookie до запуска обработчиков.
//
// Пользователь загружается из хранилища на каждом запросе, поэтому
// смена флага участника видна без повторного входа.
func Session(maker session.Maker, users UserProvider, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Session"

			cookie, err := r.Cookie(session.CookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := maker.ParseToken(cookie.Value)
			if err != nil {
				// просроченный или повреждённый токен — анонимный запрос
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetUserByUsername(r.Context(), claims.Username)
			if err != nil {
				if !errors.Is(err, repository.ErrUserNotFound) {
					log := log.With(
						slog.String("op", op),
						slog.String("request_id", middleware.GetReqID(r.Context())),
					)
					log.Error("failed to resolve session user", sl.Err(err))
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUser возвращает текущего пользователя из контекста запроса
// или nil для анонимного посетителя.
func CurrentUser(ctx context.Context) *models.User {
	user, _ := ctx.Value(UserKey).(*models.User)
	return user
}
