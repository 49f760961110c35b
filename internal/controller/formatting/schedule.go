package formatting

import (
	"fmt"

	"github.com/neurotechh/tempus_bot/internal/model"
)

// FormatDaySchedule форматирует проекцию дня в HTML сообщение
func FormatDaySchedule(day model.Day, slots []model.ClassSlot) string {
	if len(slots) == 0 {
		return fmt.Sprintf("📅 <b>%s</b>\n\n🎉 Занятий нет - свободный день!", day)
	}

	text := fmt.Sprintf("📅 <b>%s</b>\n\n", day)
	for _, slot := range slots {
		text += fmt.Sprintf("🕐 <b>%s</b> - %s\n", slot.Time, slot.Subject)
	}
	text += fmt.Sprintf("\nВсего пар: %d", len(slots))

	return text
}

// FormatNoTimetable подсказка для пустого состояния
func FormatNoTimetable() string {
	return "📭 Расписание ещё не загружено.\n\n" +
		"Пришлите PDF или фото своего недельного расписания - " +
		"я распознаю его и буду показывать занятия по дням."
}
