// Package models содержит доменную модель пользователя доски объявлений,
// включающую данные учётной записи, хэш пароля и флаги доступа.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string // Уникальный идентификатор пользователя
	FirstName    string // Имя
	LastName     string // Фамилия
	Username     string // Имя пользователя (уникальное)
	PasswordHash string // Хэш пароля пользователя
	Member       bool   // Является ли пользователь участником клуба
	Admin        bool   // Является ли пользователь администратором
}

// FullName возвращает полное имя пользователя: имя и фамилию через пробел.
// Значение вычисляется, в хранилище не сохраняется.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
