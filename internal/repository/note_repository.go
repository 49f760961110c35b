package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/neurotechh/tempus_bot/internal/model"
	"github.com/neurotechh/tempus_bot/internal/repository/base"
)

const noteColumns = "id, file_id, name, subject, year, uploaded_by, file_size, file_type, description, upload_date"

type NoteRepository struct {
	*base.Repository
}

func NewNoteRepository(pool *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{Repository: base.NewRepository(pool)}
}

// Create сохраняет метаданные конспекта
func (r *NoteRepository) Create(ctx context.Context, note *model.Note) error {
	query := `
		INSERT INTO notes (id, file_id, name, subject, year, uploaded_by, file_size, file_type, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING upload_date
	`

	err := r.QueryRow(
		ctx, query,
		note.ID,
		note.FileID,
		note.Name,
		note.Subject,
		note.Year,
		note.UploadedBy,
		note.FileSize,
		note.FileType,
		note.Description,
	).Scan(&note.UploadDate)

	if err != nil {
		return fmt.Errorf("create note: %w", err)
	}

	return nil
}

// GetByID получает конспект по ID
func (r *NoteRepository) GetByID(ctx context.Context, id string) (*model.Note, error) {
	query := `
		SELECT ` + noteColumns + `
		FROM notes
		WHERE id = $1
	`

	var note model.Note
	err := r.QueryRow(ctx, query, id).Scan(
		&note.ID,
		&note.FileID,
		&note.Name,
		&note.Subject,
		&note.Year,
		&note.UploadedBy,
		&note.FileSize,
		&note.FileType,
		&note.Description,
		&note.UploadDate,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get note by id: %w", err)
	}

	return &note, nil
}

// Search получает конспекты, свежие первыми.
// Фильтр по предмету и подстроке в имени/описании - оба опциональны.
func (r *NoteRepository) Search(ctx context.Context, subject, search string, limit int) ([]*model.Note, error) {
	query := `
		SELECT ` + noteColumns + `
		FROM notes
		WHERE ($1 = '' OR lower(subject) = lower($1))
		  AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR description ILIKE '%' || $2 || '%')
		ORDER BY upload_date DESC
		LIMIT $3
	`

	rows, err := r.Query(ctx, query, subject, search, limit)
	if err != nil {
		return nil, fmt.Errorf("search notes: %w", err)
	}
	defer rows.Close()

	var notes []*model.Note
	for rows.Next() {
		var note model.Note
		err := rows.Scan(
			&note.ID,
			&note.FileID,
			&note.Name,
			&note.Subject,
			&note.Year,
			&note.UploadedBy,
			&note.FileSize,
			&note.FileType,
			&note.Description,
			&note.UploadDate,
		)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, &note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}

	return notes, nil
}
