package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/neurotechh/tempus_bot/internal/model"
	"go.uber.org/zap"
)

var (
	ErrNotLoaded      = errors.New("no timetable loaded")
	ErrIngestInFlight = errors.New("another upload is already being processed")
)

// View текущее состояние для слоя UI: выбранный день и его проекция
type View struct {
	Day   model.Day
	Slots []model.ClassSlot
}

// session состояние Loaded одного чата
type session struct {
	timetable   *model.Timetable
	selectedDay model.Day
}

// TimetableService оркестратор расписаний: parse -> save -> project.
// Держит по одной живой модели на чат; хранилище владеет долговременной копией.
type TimetableService struct {
	store  *TimetableStore
	logger *zap.Logger

	mu        sync.Mutex
	sessions  map[int64]*session
	ingesting map[int64]bool

	// подменяется в тестах
	now func() time.Time
}

// NewTimetableService создаёт сервис расписаний
func NewTimetableService(store *TimetableStore, logger *zap.Logger) *TimetableService {
	return &TimetableService{
		store:     store,
		logger:    logger,
		sessions:  make(map[int64]*session),
		ingesting: make(map[int64]bool),
		now:       time.Now,
	}
}

// Ingest разбирает сырой JSON от OCR, сохраняет каноническую форму
// и сразу проецирует сегодняшний день.
// На один чат допускается не больше одной загрузки одновременно:
// параллельный второй вызов отклоняется с ErrIngestInFlight, чтобы два
// сохранения не перемешали персистентное значение.
func (s *TimetableService) Ingest(ctx context.Context, chatID int64, raw []byte) (*View, error) {
	s.mu.Lock()
	if s.ingesting[chatID] {
		s.mu.Unlock()
		return nil, ErrIngestInFlight
	}
	s.ingesting[chatID] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.ingesting, chatID)
		s.mu.Unlock()
	}()

	timetable, err := model.ParseTimetable(raw)
	if err != nil {
		// состояние чата не меняется
		return nil, err
	}

	if err := s.store.Save(ctx, chatID, timetable); err != nil {
		return nil, err
	}

	day := model.DayOf(s.now())

	s.mu.Lock()
	s.sessions[chatID] = &session{timetable: timetable, selectedDay: day}
	s.mu.Unlock()

	s.logger.Info("Timetable ingested",
		zap.Int64("chat_id", chatID),
		zap.Int("rows", len(timetable.Rows)))

	return &View{Day: day, Slots: timetable.SlotsFor(day)}, nil
}

// Restore поднимает расписание из хранилища при старте фичи.
// Возвращает (nil, nil), если расписания нет. Нечитаемое значение
// логируется и трактуется так же, как отсутствие, - пользователя
// попросят загрузить расписание заново.
func (s *TimetableService) Restore(ctx context.Context, chatID int64) (*View, error) {
	s.mu.Lock()
	if sess, ok := s.sessions[chatID]; ok {
		day := model.DayOf(s.now())
		sess.selectedDay = day
		view := &View{Day: day, Slots: sess.timetable.SlotsFor(day)}
		s.mu.Unlock()
		return view, nil
	}
	s.mu.Unlock()

	timetable, err := s.store.Load(ctx, chatID)
	if err != nil {
		if errors.Is(err, ErrCorruptState) {
			s.logger.Warn("Stored timetable is corrupt, treating as empty",
				zap.Int64("chat_id", chatID),
				zap.Error(err))
			return nil, nil
		}
		return nil, err
	}
	if timetable == nil {
		return nil, nil
	}

	day := model.DayOf(s.now())

	s.mu.Lock()
	s.sessions[chatID] = &session{timetable: timetable, selectedDay: day}
	s.mu.Unlock()

	return &View{Day: day, Slots: timetable.SlotsFor(day)}, nil
}

// SelectDay переключает проекцию на выбранный день.
// Неизвестное имя дня - ErrUnknownDay, вызов без загруженного расписания - ErrNotLoaded;
// в обоих случаях состояние не меняется.
func (s *TimetableService) SelectDay(ctx context.Context, chatID int64, input string) (*View, error) {
	day, err := model.ParseDay(input)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[chatID]
	if !ok {
		return nil, ErrNotLoaded
	}

	sess.selectedDay = day
	return &View{Day: day, Slots: sess.timetable.SlotsFor(day)}, nil
}

// Delete стирает расписание из хранилища и возвращает чат в пустое состояние
func (s *TimetableService) Delete(ctx context.Context, chatID int64) error {
	s.mu.Lock()
	_, ok := s.sessions[chatID]
	s.mu.Unlock()

	if !ok {
		return ErrNotLoaded
	}

	if err := s.store.Clear(ctx, chatID); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.sessions, chatID)
	s.mu.Unlock()

	s.logger.Info("Timetable deleted", zap.Int64("chat_id", chatID))
	return nil
}

// Loaded сообщает, загружено ли расписание чата в память
func (s *TimetableService) Loaded(chatID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[chatID]
	return ok
}
