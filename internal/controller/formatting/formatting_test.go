package formatting

import (
	"strings"
	"testing"
	"time"

	"github.com/neurotechh/tempus_bot/internal/model"
)

func TestFormatDaySchedule(t *testing.T) {
	slots := []model.ClassSlot{
		{Time: "9-10", Subject: "Maths"},
		{Time: "10-11", Subject: "Physics"},
	}

	text := FormatDaySchedule(model.DayMonday, slots)

	for _, want := range []string{"Monday", "9-10", "Maths", "10-11", "Physics", "Всего пар: 2"} {
		if !strings.Contains(text, want) {
			t.Errorf("formatted schedule missing %q:\n%s", want, text)
		}
	}
}

func TestFormatDaySchedule_EmptyDay(t *testing.T) {
	text := FormatDaySchedule(model.DaySunday, nil)

	if !strings.Contains(text, "Sunday") {
		t.Errorf("empty day must still name the day:\n%s", text)
	}
	if !strings.Contains(text, "свободный день") {
		t.Errorf("expected empty state text:\n%s", text)
	}
}

func TestFormatNoteShort(t *testing.T) {
	note := &model.Note{
		Name:       "unit3.pdf",
		Subject:    "ai",
		FileSize:   2 << 20,
		UploadDate: time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC),
	}

	text := FormatNoteShort(note, 1)

	for _, want := range []string{"unit3.pdf", "AI", "2.0 MB", "05.03.2026"} {
		if !strings.Contains(text, want) {
			t.Errorf("note line missing %q:\n%s", want, text)
		}
	}
}

func TestFormatFileSize(t *testing.T) {
	cases := map[int64]string{
		512:          "512 B",
		2048:         "2.0 KB",
		3 * (1 << 20): "3.0 MB",
	}

	for size, want := range cases {
		if got := FormatFileSize(size); got != want {
			t.Errorf("FormatFileSize(%d) = %q, want %q", size, got, want)
		}
	}
}
