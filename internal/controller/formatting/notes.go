package formatting

import (
	"fmt"
	"strings"

	"github.com/neurotechh/tempus_bot/internal/model"
)

// FormatNoteShort форматирует краткую строку списка конспектов
func FormatNoteShort(note *model.Note, index int) string {
	return fmt.Sprintf(
		"%d. 📄 <b>%s</b>\n"+
			"   📚 %s | %s | %s",
		index,
		note.Name,
		strings.ToUpper(note.Subject),
		FormatFileSize(note.FileSize),
		note.UploadDate.Format("02.01.2006"),
	)
}

// FormatNoteInfo форматирует подробную карточку конспекта
func FormatNoteInfo(note *model.Note) string {
	text := fmt.Sprintf(
		"📄 <b>%s</b>\n\n"+
			"📚 Предмет: %s\n"+
			"💾 Размер: %s\n"+
			"📅 Загружен: %s",
		note.Name,
		strings.ToUpper(note.Subject),
		FormatFileSize(note.FileSize),
		note.UploadDate.Format("02.01.2006 15:04"),
	)

	if note.UploadedBy != "" {
		text += fmt.Sprintf("\n👤 Автор: %s", note.UploadedBy)
	}
	if note.Description != "" {
		text += fmt.Sprintf("\n📝 %s", note.Description)
	}

	return text
}

// FormatFileSize форматирует размер файла в человекочитаемый вид
func FormatFileSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(size)/(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}
