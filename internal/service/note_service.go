package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/neurotechh/tempus_bot/internal/model"
	"go.uber.org/zap"
)

// ValidSubjects допустимые коды предметов для конспектов
var ValidSubjects = []string{"ai", "ivp", "se"}

// допустимые типы файлов конспектов
var allowedNoteMimeTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
}

var (
	ErrInvalidSubject  = errors.New("invalid subject")
	ErrInvalidFileType = errors.New("invalid file type, allowed: PDF, JPEG, PNG")
)

// NoteRepo доступ к метаданным конспектов
type NoteRepo interface {
	Create(ctx context.Context, note *model.Note) error
	GetByID(ctx context.Context, id string) (*model.Note, error)
	Search(ctx context.Context, subject, search string, limit int) ([]*model.Note, error)
}

// NoteService обмен конспектами: файлы живут в Telegram, метаданные - в базе
type NoteService struct {
	noteRepo NoteRepo
	logger   *zap.Logger
}

func NewNoteService(noteRepo NoteRepo, logger *zap.Logger) *NoteService {
	return &NoteService{
		noteRepo: noteRepo,
		logger:   logger,
	}
}

// PublishParams входные данные загрузки конспекта
type PublishParams struct {
	FileID      string
	Name        string
	Subject     string
	Year        *string
	UploadedBy  string
	FileSize    int64
	FileType    string
	Description string
}

// Publish валидирует и сохраняет метаданные нового конспекта
func (s *NoteService) Publish(ctx context.Context, params PublishParams) (*model.Note, error) {
	subject := strings.ToLower(strings.TrimSpace(params.Subject))
	if !IsValidSubject(subject) {
		return nil, fmt.Errorf("%w: %q, must be one of: %s",
			ErrInvalidSubject, params.Subject, strings.Join(ValidSubjects, ", "))
	}

	if !allowedNoteMimeTypes[strings.ToLower(params.FileType)] {
		return nil, ErrInvalidFileType
	}

	note := &model.Note{
		ID:          uuid.NewString(),
		FileID:      params.FileID,
		Name:        params.Name,
		Subject:     subject,
		Year:        params.Year,
		UploadedBy:  params.UploadedBy,
		FileSize:    params.FileSize,
		FileType:    params.FileType,
		Description: strings.TrimSpace(params.Description),
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}

	s.logger.Info("Note published",
		zap.String("note_id", note.ID),
		zap.String("subject", note.Subject),
		zap.String("uploaded_by", note.UploadedBy))

	return note, nil
}

// Find ищет конспекты по предмету и/или подстроке, свежие первыми
func (s *NoteService) Find(ctx context.Context, subject, search string, limit int) ([]*model.Note, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.noteRepo.Search(ctx, strings.ToLower(strings.TrimSpace(subject)), strings.TrimSpace(search), limit)
}

// Get возвращает конспект по ID; (nil, nil) если его нет
func (s *NoteService) Get(ctx context.Context, id string) (*model.Note, error) {
	return s.noteRepo.GetByID(ctx, id)
}

// IsValidSubject проверяет код предмета
func IsValidSubject(subject string) bool {
	for _, valid := range ValidSubjects {
		if strings.EqualFold(subject, valid) {
			return true
		}
	}
	return false
}
