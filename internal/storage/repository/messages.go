package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/members-only/internal/models"
)

// CreateMessage сохраняет новое сообщение и возвращает его ID.
func (s *Storage) CreateMessage(ctx context.Context, msg models.Message) (int, error) {
	const op = "storage.CreateMessage"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int
	query := `INSERT INTO messages (title, body, created_at, author_uid)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		msg.Title, msg.Text, msg.CreatedAt, msg.AuthorUID).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListMessages возвращает все сообщения доски вместе с полным именем автора,
// от новых к старым.
func (s *Storage) ListMessages(ctx context.Context) ([]*models.MessageItem, error) {
	const op = "storage.ListMessages"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT m.id, m.title, m.body, m.created_at,
			      u.first_name || ' ' || u.last_name
			  FROM messages m
			  JOIN users u ON u.uid = m.author_uid
			  ORDER BY m.created_at DESC, m.id DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.MessageItem
	for rows.Next() {
		var item models.MessageItem
		if err = rows.Scan(&item.ID, &item.Title, &item.Text,
			&item.CreatedAt, &item.AuthorName); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// DeleteMessage удаляет сообщение по ID и возвращает количество удалённых записей.
func (s *Storage) DeleteMessage(ctx context.Context, id int) (int, error) {
	const op = "storage.DeleteMessage"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM messages WHERE id = $1`
	res, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(affected), nil
}
