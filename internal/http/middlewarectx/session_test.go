package middlewarectx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/members-only/internal/lib/session"
	"github.com/magabrotheeeer/members-only/internal/models"
	"github.com/magabrotheeeer/members-only/internal/storage/repository"
)

type UserProviderMock struct {
	mock.Mock
}

func (m *UserProviderMock) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

// captureUser возвращает обработчик, запоминающий текущего пользователя.
func captureUser(dst **models.User) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*dst = CurrentUser(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestSession(t *testing.T) {
	maker := session.NewMaker("test_secret_key", 15*time.Minute)
	ada := &models.User{UID: "uid-1", Username: "ada1", Member: true}

	validToken, err := maker.GenerateToken("ada1")
	require.NoError(t, err)

	expiredMaker := session.NewMaker("test_secret_key", -time.Minute)
	expiredToken, err := expiredMaker.GenerateToken("ada1")
	require.NoError(t, err)

	tests := []struct {
		name      string
		cookie    *http.Cookie
		mockUser  *models.User
		mockErr   error
		wantCalls int
		wantUser  *models.User
	}{
		{
			name:      "no cookie resolves to anonymous",
			cookie:    nil,
			wantCalls: 0,
			wantUser:  nil,
		},
		{
			name:      "valid cookie resolves the account",
			cookie:    session.NewCookie(validToken, time.Hour),
			mockUser:  ada,
			wantCalls: 1,
			wantUser:  ada,
		},
		{
			name:      "expired token resolves to anonymous",
			cookie:    session.NewCookie(expiredToken, time.Hour),
			wantCalls: 0,
			wantUser:  nil,
		},
		{
			name:      "garbage token resolves to anonymous",
			cookie:    session.NewCookie("garbage", time.Hour),
			wantCalls: 0,
			wantUser:  nil,
		},
		{
			name:      "deleted account resolves to anonymous",
			cookie:    session.NewCookie(validToken, time.Hour),
			mockErr:   repository.ErrUserNotFound,
			wantCalls: 1,
			wantUser:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UserProviderMock)
			if tt.wantCalls > 0 {
				users.On("GetUserByUsername", mock.Anything, "ada1").
					Return(tt.mockUser, tt.mockErr).Times(tt.wantCalls)
			}

			var got *models.User
			handler := Session(maker, users, newNoopLogger())(captureUser(&got))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantUser, got)
			users.AssertExpectations(t)
		})
	}
}

func TestRequireUser(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireUser(newNoopLogger())(next)

	t.Run("anonymous request is redirected home", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/new-message", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
	})

	t.Run("authenticated request passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/new-message", nil)
		ctx := context.WithValue(req.Context(), UserKey, &models.User{Username: "ada1"})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req.WithContext(ctx))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireAdmin(newNoopLogger())(next)

	tests := []struct {
		name     string
		user     *models.User
		wantCode int
	}{
		{
			name:     "anonymous is redirected",
			user:     nil,
			wantCode: http.StatusSeeOther,
		},
		{
			name:     "member without admin flag is redirected",
			user:     &models.User{Username: "ada1", Member: true},
			wantCode: http.StatusSeeOther,
		},
		{
			name:     "admin passes",
			user:     &models.User{Username: "root", Admin: true},
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/delete-msg", nil)
			if tt.user != nil {
				ctx := context.WithValue(req.Context(), UserKey, tt.user)
				req = req.WithContext(ctx)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
