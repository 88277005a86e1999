// Package board содержит бизнес-логику доски объявлений:
// список сообщений с кешированием, публикацию и удаление.
package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/members-only/internal/lib/sl"
	"github.com/magabrotheeeer/members-only/internal/models"
)

// ErrMessageNotFound возвращается при удалении несуществующего сообщения.
var ErrMessageNotFound = errors.New("message not found")

// listCacheKey ключ кеша полного списка сообщений (с именами авторов).
const listCacheKey = "messages:all"

// listCacheTTL время жизни кеша списка.
const listCacheTTL = time.Hour

// MessageRepository определяет методы для работы с сообщениями в хранилище.
type MessageRepository interface {
	// CreateMessage добавляет новое сообщение и возвращает его ID.
	CreateMessage(ctx context.Context, msg models.Message) (int, error)
	// ListMessages возвращает все сообщения с именами авторов.
	ListMessages(ctx context.Context) ([]*models.MessageItem, error)
	// DeleteMessage удаляет сообщение по ID и возвращает количество удалённых записей.
	DeleteMessage(ctx context.Context, id int) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// BoardService реализует бизнес-логику доски объявлений, включая кеширование.
type BoardService struct {
	repo  MessageRepository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр BoardService.
func New(repo MessageRepository, cache Cache, log *slog.Logger) *BoardService {
	return &BoardService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// List возвращает сообщения доски для указанного посетителя.
// Имя автора раскрывается только участникам клуба; сами сообщения
// видны всем. Полный список кешируется, проекция применяется после.
func (s *BoardService) List(ctx context.Context, viewer *models.User) ([]*models.MessageItem, error) {
	var items []*models.MessageItem

	found, err := s.cache.Get(listCacheKey, &items)
	if err != nil {
		s.log.Warn("failed to read messages from cache", sl.Err(err))
		found = false
	}
	if !found {
		items, err = s.repo.ListMessages(ctx)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(listCacheKey, items, listCacheTTL); err != nil {
			s.log.Warn("failed to cache messages", slog.String("key", listCacheKey), sl.Err(err))
		}
	}

	if viewer != nil && viewer.Member {
		return items, nil
	}

	// для анонимов и не-участников имя автора скрывается
	stripped := make([]*models.MessageItem, 0, len(items))
	for _, item := range items {
		stripped = append(stripped, &models.MessageItem{
			ID:        item.ID,
			Title:     item.Title,
			Text:      item.Text,
			CreatedAt: item.CreatedAt,
		})
	}
	return stripped, nil
}

// Create публикует новое сообщение от имени автора,
// проставляя текущее время, и инвалидирует кеш списка.
func (s *BoardService) Create(ctx context.Context, author *models.User, title, text string) (int, error) {
	msg := models.Message{
		Title:     title,
		Text:      text,
		CreatedAt: time.Now().UTC(),
		AuthorUID: author.UID,
	}

	id, err := s.repo.CreateMessage(ctx, msg)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new message", slog.Int("id", id), slog.String("author", author.Username))

	if err := s.cache.Invalidate(listCacheKey); err != nil {
		s.log.Warn("failed to invalidate messages cache", slog.String("key", listCacheKey), sl.Err(err))
	}
	return id, nil
}

// Remove удаляет сообщение по ID и инвалидирует кеш списка.
func (s *BoardService) Remove(ctx context.Context, id int) error {
	if err := s.cache.Invalidate(listCacheKey); err != nil {
		s.log.Warn("failed to invalidate messages cache", slog.String("key", listCacheKey), sl.Err(err))
	}

	count, err := s.repo.DeleteMessage(ctx, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("remove message %d: %w", id, ErrMessageNotFound)
	}
	return nil
}
