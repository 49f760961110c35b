package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/neurotechh/tempus_bot/internal/model"
)

// timetableKey фиксированный ключ расписания в key-value хранилище
const timetableKey = "saved_timetable"

var ErrCorruptState = errors.New("stored timetable is unreadable")

// KV внешняя key-value способность: строковое хранилище с областью чата
type KV interface {
	Get(ctx context.Context, chatID int64, key string) (string, bool, error)
	Set(ctx context.Context, chatID int64, key, value string) error
	Remove(ctx context.Context, chatID int64, key string) error
}

// TimetableStore хранит каноническое расписание одной строкой под фиксированным ключом.
// Собственного кэша нет: всегда отражает текущее состояние хранилища.
type TimetableStore struct {
	kv KV
}

// NewTimetableStore создаёт хранилище расписаний поверх key-value способности
func NewTimetableStore(kv KV) *TimetableStore {
	return &TimetableStore{kv: kv}
}

// Save сериализует каноническую модель и перезаписывает прежнее значение
func (s *TimetableStore) Save(ctx context.Context, chatID int64, timetable *model.Timetable) error {
	data, err := timetable.Encode()
	if err != nil {
		return fmt.Errorf("save timetable: %w", err)
	}

	if err := s.kv.Set(ctx, chatID, timetableKey, string(data)); err != nil {
		return fmt.Errorf("save timetable: %w", err)
	}
	return nil
}

// Load читает сохранённое расписание.
// Отсутствие значения - не ошибка: возвращается (nil, nil).
// Нечитаемое значение - ErrCorruptState, частично разобранная модель не возвращается.
func (s *TimetableStore) Load(ctx context.Context, chatID int64) (*model.Timetable, error) {
	value, ok, err := s.kv.Get(ctx, chatID, timetableKey)
	if err != nil {
		return nil, fmt.Errorf("load timetable: %w", err)
	}
	if !ok {
		return nil, nil
	}

	timetable, err := model.ParseTimetable([]byte(value))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	return timetable, nil
}

// Clear удаляет сохранённое расписание; повторный вызов не ошибка
func (s *TimetableStore) Clear(ctx context.Context, chatID int64) error {
	if err := s.kv.Remove(ctx, chatID, timetableKey); err != nil {
		return fmt.Errorf("clear timetable: %w", err)
	}
	return nil
}
