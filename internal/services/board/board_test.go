package board

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/members-only/internal/models"
)

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) CreateMessage(ctx context.Context, msg models.Message) (int, error) {
	args := m.Called(ctx, msg)
	return args.Int(0), args.Error(1)
}

func (m *MessageRepositoryMock) ListMessages(ctx context.Context) ([]*models.MessageItem, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]*models.MessageItem)
	return items, args.Error(1)
}

func (m *MessageRepositoryMock) DeleteMessage(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

// fakeCache — кеш в памяти с той же JSON-семантикой, что и redis-кеш.
type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (c *fakeCache) Get(key string, result any) (bool, error) {
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, result)
}

func (c *fakeCache) Set(key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *fakeCache) Invalidate(key string) error {
	delete(c.data, key)
	return nil
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func sampleItems() []*models.MessageItem {
	return []*models.MessageItem{
		{ID: 2, Title: "second", Text: "newer", CreatedAt: time.Now().UTC(), AuthorName: "Ada Lovelace"},
		{ID: 1, Title: "first", Text: "older", CreatedAt: time.Now().UTC().Add(-time.Hour), AuthorName: "Bob Builder"},
	}
}

func TestBoardService_List_Projection(t *testing.T) {
	tests := []struct {
		name        string
		viewer      *models.User
		wantAuthors bool
	}{
		{
			name:        "anonymous visitor sees no authors",
			viewer:      nil,
			wantAuthors: false,
		},
		{
			name:        "registered non-member sees no authors",
			viewer:      &models.User{Username: "bob", Member: false},
			wantAuthors: false,
		},
		{
			name:        "member sees author full names",
			viewer:      &models.User{Username: "ada1", Member: true},
			wantAuthors: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MessageRepositoryMock)
			repo.On("ListMessages", mock.Anything).Return(sampleItems(), nil).Once()

			svc := New(repo, newFakeCache(), newNoopLogger())

			items, err := svc.List(context.Background(), tt.viewer)
			require.NoError(t, err)
			require.Len(t, items, 2)

			for _, item := range items {
				assert.NotEmpty(t, item.Title)
				assert.NotEmpty(t, item.Text)
				if tt.wantAuthors {
					assert.NotEmpty(t, item.AuthorName)
				} else {
					assert.Empty(t, item.AuthorName)
				}
			}
		})
	}
}

func TestBoardService_List_UsesCache(t *testing.T) {
	repo := new(MessageRepositoryMock)
	repo.On("ListMessages", mock.Anything).Return(sampleItems(), nil).Once()

	svc := New(repo, newFakeCache(), newNoopLogger())
	member := &models.User{Username: "ada1", Member: true}

	_, err := svc.List(context.Background(), member)
	require.NoError(t, err)

	// второй запрос обслуживается из кеша
	items, err := svc.List(context.Background(), member)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Ada Lovelace", items[0].AuthorName)

	repo.AssertNumberOfCalls(t, "ListMessages", 1)
}

func TestBoardService_Create(t *testing.T) {
	repo := new(MessageRepositoryMock)
	cache := newFakeCache()
	svc := New(repo, cache, newNoopLogger())

	require.NoError(t, cache.Set("messages:all", sampleItems(), time.Hour))

	author := &models.User{UID: "uid-1", Username: "ada1", Member: true}
	before := time.Now().UTC()

	repo.On("CreateMessage", mock.Anything, mock.MatchedBy(func(m models.Message) bool {
		return m.Title == "hello" &&
			m.Text == "world" &&
			m.AuthorUID == "uid-1" &&
			!m.CreatedAt.Before(before)
	})).Return(7, nil).Once()

	id, err := svc.Create(context.Background(), author, "hello", "world")
	require.NoError(t, err)
	assert.Equal(t, 7, id)

	// кеш списка инвалидирован
	var out []*models.MessageItem
	found, err := cache.Get("messages:all", &out)
	require.NoError(t, err)
	assert.False(t, found)

	repo.AssertExpectations(t)
}

func TestBoardService_Remove(t *testing.T) {
	t.Run("existing message", func(t *testing.T) {
		repo := new(MessageRepositoryMock)
		repo.On("DeleteMessage", mock.Anything, 7).Return(1, nil).Once()

		svc := New(repo, newFakeCache(), newNoopLogger())
		require.NoError(t, svc.Remove(context.Background(), 7))
	})

	t.Run("missing message", func(t *testing.T) {
		repo := new(MessageRepositoryMock)
		repo.On("DeleteMessage", mock.Anything, 404).Return(0, nil).Once()

		svc := New(repo, newFakeCache(), newNoopLogger())
		err := svc.Remove(context.Background(), 404)
		assert.ErrorIs(t, err, ErrMessageNotFound)
	})
}
