// Package models содержит доменные структуры сообщений доски объявлений.
package models

import "time"

// Message представляет собой сообщение, опубликованное участником клуба.
// Поле AuthorUID ссылается на пользователя-автора; сообщение никогда
// не обновляется после создания.
type Message struct {
	ID        int       // Идентификатор сообщения
	Title     string    // Заголовок
	Text      string    // Текст сообщения
	CreatedAt time.Time // Время публикации
	AuthorUID string    // UID автора
}

// MessageItem — элемент списка сообщений главной страницы.
// AuthorName заполняется только для участников клуба; для остальных
// посетителей поле остаётся пустым.
type MessageItem struct {
	ID         int       `json:"id"`
	Title      string    `json:"title"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
	AuthorName string    `json:"author_name,omitempty"`
}
