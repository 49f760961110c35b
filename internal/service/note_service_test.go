package service

import (
	"context"
	"errors"
	"testing"

	"github.com/neurotechh/tempus_bot/internal/model"
	"go.uber.org/zap"
)

type fakeNoteRepo struct {
	created []*model.Note
}

func (f *fakeNoteRepo) Create(_ context.Context, note *model.Note) error {
	f.created = append(f.created, note)
	return nil
}

func (f *fakeNoteRepo) GetByID(_ context.Context, id string) (*model.Note, error) {
	for _, note := range f.created {
		if note.ID == id {
			return note, nil
		}
	}
	return nil, nil
}

func (f *fakeNoteRepo) Search(_ context.Context, subject, _ string, limit int) ([]*model.Note, error) {
	var out []*model.Note
	for _, note := range f.created {
		if subject != "" && note.Subject != subject {
			continue
		}
		out = append(out, note)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func TestPublish_AssignsIDAndNormalizesSubject(t *testing.T) {
	repo := &fakeNoteRepo{}
	svc := NewNoteService(repo, zap.NewNop())

	note, err := svc.Publish(context.Background(), PublishParams{
		FileID:     "tg-file-1",
		Name:       "unit3.pdf",
		Subject:    " AI ",
		UploadedBy: "student42",
		FileSize:   1024,
		FileType:   "application/pdf",
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	if note.ID == "" {
		t.Error("note ID must be assigned")
	}
	if note.Subject != "ai" {
		t.Errorf("subject = %q, want ai", note.Subject)
	}
	if len(repo.created) != 1 {
		t.Errorf("expected 1 stored note, got %d", len(repo.created))
	}
}

func TestPublish_RejectsUnknownSubject(t *testing.T) {
	svc := NewNoteService(&fakeNoteRepo{}, zap.NewNop())

	_, err := svc.Publish(context.Background(), PublishParams{
		FileID:   "tg-file-1",
		Name:     "unit3.pdf",
		Subject:  "history",
		FileType: "application/pdf",
	})
	if !errors.Is(err, ErrInvalidSubject) {
		t.Errorf("expected ErrInvalidSubject, got %v", err)
	}
}

func TestPublish_RejectsUnsupportedFileType(t *testing.T) {
	svc := NewNoteService(&fakeNoteRepo{}, zap.NewNop())

	_, err := svc.Publish(context.Background(), PublishParams{
		FileID:   "tg-file-1",
		Name:     "unit3.docx",
		Subject:  "se",
		FileType: "application/msword",
	})
	if !errors.Is(err, ErrInvalidFileType) {
		t.Errorf("expected ErrInvalidFileType, got %v", err)
	}
}

func TestFind_FiltersBySubject(t *testing.T) {
	repo := &fakeNoteRepo{}
	svc := NewNoteService(repo, zap.NewNop())
	ctx := context.Background()

	for _, subject := range []string{"ai", "se", "ai"} {
		if _, err := svc.Publish(ctx, PublishParams{
			FileID:   "f-" + subject,
			Name:     subject + ".pdf",
			Subject:  subject,
			FileType: "application/pdf",
		}); err != nil {
			t.Fatalf("publish %s: %v", subject, err)
		}
	}

	notes, err := svc.Find(ctx, "AI", "", 10)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(notes) != 2 {
		t.Errorf("expected 2 ai notes, got %d", len(notes))
	}
}
