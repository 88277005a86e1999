// Package session реализует выпуск и разбор подписанных сессионных токенов,
// а также работу с сессионной cookie.
//
// Maker определяет интерфейс для создания и проверки токенов с username.
// MakerImpl — конкретная реализация с использованием секретного ключа и срока
package session

import (
	"time"
)

// Maker описывает интерфейс для генерации и парсинга сессионных токенов.
//
// Методы позволяют создавать токен с указанием username,
// а также разбирать токен и извлекать из него кастомные данные.
type Maker interface {
	// GenerateToken создаёт токен для указанного username
	GenerateToken(username string) (string, error)
	// ParseToken возвращает *CustomClaims с username
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}

// TTL возвращает время жизни выпускаемых токенов.
func (m *MakerImpl) TTL() time.Duration {
	return m.tokenTTL
}
