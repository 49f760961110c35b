package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/neurotechh/tempus_bot/internal/repository/base"
)

// KVRepository строковое key-value хранилище с областью чата.
// Реализует service.KV поверх таблицы kv_store.
type KVRepository struct {
	*base.Repository
}

func NewKVRepository(pool *pgxpool.Pool) *KVRepository {
	return &KVRepository{Repository: base.NewRepository(pool)}
}

// Get читает значение ключа; (_, false, nil) если ключа нет
func (r *KVRepository) Get(ctx context.Context, chatID int64, key string) (string, bool, error) {
	query := `
		SELECT value
		FROM kv_store
		WHERE chat_id = $1 AND key = $2
	`

	var value string
	err := r.QueryRow(ctx, query, chatID, key).Scan(&value)
	if err != nil {
		if base.IsNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get kv value: %w", err)
	}

	return value, true, nil
}

// Set записывает значение ключа, перезаписывая прежнее
func (r *KVRepository) Set(ctx context.Context, chatID int64, key, value string) error {
	query := `
		INSERT INTO kv_store (chat_id, key, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (chat_id, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`

	if _, err := r.ExecAffected(ctx, query, chatID, key, value); err != nil {
		return fmt.Errorf("set kv value: %w", err)
	}
	return nil
}

// Remove удаляет ключ; отсутствие ключа не ошибка
func (r *KVRepository) Remove(ctx context.Context, chatID int64, key string) error {
	query := `
		DELETE FROM kv_store
		WHERE chat_id = $1 AND key = $2
	`

	if _, err := r.ExecAffected(ctx, query, chatID, key); err != nil {
		return fmt.Errorf("remove kv value: %w", err)
	}
	return nil
}
