// Package auth содержит логику бизнес-уровня для работы с пользователями:
// регистрацию, аутентификацию и вступление в клуб.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/members-only/internal/lib/password"
	"github.com/magabrotheeeer/members-only/internal/lib/session"
	"github.com/magabrotheeeer/members-only/internal/models"
	"github.com/magabrotheeeer/members-only/internal/storage/repository"
)

// ErrUsernameTaken возвращается при регистрации с занятым username.
var ErrUsernameTaken = errors.New("username already taken")

// ErrInvalidCredentials возвращается при неудачной аутентификации.
// Ошибка не различает неизвестный username и неверный пароль.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrWrongClubPassword возвращается при неверном клубном пароле.
var ErrWrongClubPassword = errors.New("wrong club password")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его UID.
	CreateUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUsername возвращает пользователя по имени
	// или repository.ErrUserNotFound, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// SetMember обновляет флаг участника клуба.
	SetMember(ctx context.Context, userUID string, member bool) error
}

// AuthService отвечает за регистрацию, авторизацию и членство в клубе.
type AuthService struct {
	users        UserRepository
	sessions     session.Maker
	clubPassword string
	bcryptCost   int
}

// New создает новый экземпляр AuthService.
func New(users UserRepository, sessions session.Maker, clubPassword string, bcryptCost int) *AuthService {
	return &AuthService{
		users:        users,
		sessions:     sessions,
		clubPassword: clubPassword,
		bcryptCost:   bcryptCost,
	}
}

// Register создает нового пользователя: проверяет занятость username,
// хэширует пароль и сохраняет учётную запись с member=false, admin=false.
// Хэширование и запись выполняются последовательно в рамках одного вызова.
func (s *AuthService) Register(ctx context.Context, firstName, lastName, username, rawPassword string) (string, error) {
	const op = "auth.Register"

	_, err := s.users.GetUserByUsername(ctx, username)
	if err == nil {
		return "", ErrUsernameTaken
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(rawPassword, s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		FirstName:    firstName,
		LastName:     lastName,
		Username:     username,
		PasswordHash: hashed,
		Member:       false,
		Admin:        false,
	}
	uid, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return uid, nil
}

// Login проверяет пароль пользователя и выпускает сессионный токен.
// Неизвестный username и неверный пароль дают одинаковую ошибку.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (string, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.sessions.GenerateToken(user.Username)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// JoinClub сравнивает клубный пароль с секретом и при совпадении
// делает пользователя участником клуба. Повторное вступление допустимо.
func (s *AuthService) JoinClub(ctx context.Context, user *models.User, clubPassword string) error {
	const op = "auth.JoinClub"

	if subtle.ConstantTimeCompare([]byte(clubPassword), []byte(s.clubPassword)) != 1 {
		return ErrWrongClubPassword
	}
	if err := s.users.SetMember(ctx, user.UID, true); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
