package login

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/members-only/internal/http/render"
	"github.com/magabrotheeeer/members-only/internal/lib/session"
	"github.com/magabrotheeeer/members-only/internal/services/auth"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Login(ctx context.Context, username, rawPassword string) (string, error) {
	args := m.Called(ctx, username, rawPassword)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestLoginHandler_Submit(t *testing.T) {
	tests := []struct {
		name       string
		form       url.Values
		mockToken  string
		mockErr    error
		expectCall bool
		wantCode   int
		wantBody   string
		wantCookie bool
	}{
		{
			name:       "correct credentials set the session cookie",
			form:       url.Values{"username": {"ada1"}, "password": {"s3cret"}},
			mockToken:  "signed-token",
			expectCall: true,
			wantCode:   http.StatusSeeOther,
			wantCookie: true,
		},
		{
			name:       "invalid credentials keep the visitor anonymous",
			form:       url.Values{"username": {"ada1"}, "password": {"wrong"}},
			mockErr:    auth.ErrInvalidCredentials,
			expectCall: true,
			wantCode:   http.StatusUnauthorized,
			wantBody:   "Invalid credentials",
		},
		{
			name:     "missing password is a validation error",
			form:     url.Values{"username": {"ada1"}},
			wantCode: http.StatusUnprocessableEntity,
			wantBody: "Password is required",
		},
		{
			name:       "backend failure yields a generic error page",
			form:       url.Values{"username": {"ada1"}, "password": {"s3cret"}},
			mockErr:    assert.AnError,
			expectCall: true,
			wantCode:   http.StatusInternalServerError,
			wantBody:   "Something went wrong",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.expectCall {
				svc.On("Login", mock.Anything, tt.form.Get("username"), tt.form.Get("password")).
					Return(tt.mockToken, tt.mockErr).Once()
			}

			handler := New(newNoopLogger(), svc, render.New(newNoopLogger()), time.Hour)

			req := httptest.NewRequest(http.MethodPost, "/log-in", strings.NewReader(tt.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec := httptest.NewRecorder()

			handler.Submit(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}

			cookies := rec.Result().Cookies()
			if tt.wantCookie {
				require.Len(t, cookies, 1)
				assert.Equal(t, session.CookieName, cookies[0].Name)
				assert.Equal(t, "signed-token", cookies[0].Value)
				assert.True(t, cookies[0].HttpOnly)
			} else {
				assert.Empty(t, cookies)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestLoginHandler_Submit_NeverEchoesPassword(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("Login", mock.Anything, "ada1", "sup3r-secret-value").
		Return("", auth.ErrInvalidCredentials).Once()

	handler := New(newNoopLogger(), svc, render.New(newNoopLogger()), time.Hour)

	form := url.Values{"username": {"ada1"}, "password": {"sup3r-secret-value"}}
	req := httptest.NewRequest(http.MethodPost, "/log-in", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	handler.Submit(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, `value="ada1"`)
	assert.NotContains(t, body, "sup3r-secret-value")
}

func TestLoginHandler_Form(t *testing.T) {
	handler := New(newNoopLogger(), new(ServiceMock), render.New(newNoopLogger()), time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/log-in", nil)
	rec := httptest.NewRecorder()

	handler.Form(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/log-in"`)
}
