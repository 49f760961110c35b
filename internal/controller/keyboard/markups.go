package keyboard

import (
	"github.com/go-telegram/bot/models"
	"github.com/neurotechh/tempus_bot/internal/model"
)

// Callback data форматы, общие для handlers и callbacks
const (
	CallbackSelectDay     = "day:"  // day:Monday
	CallbackViewNote      = "note:" // note:<uuid>
	CallbackDeleteConfirm = "delete_confirm"
	CallbackDeleteCancel  = "delete_cancel"
)

// Days клавиатура выбора дня; выбранный день помечен точкой
func Days(selected model.Day) *models.InlineKeyboardMarkup {
	builder := NewBuilder()

	var row []models.InlineKeyboardButton
	for _, day := range model.Days {
		label := day.Short()
		if day == selected {
			label = "• " + label + " •"
		}
		row = append(row, Button(label, CallbackSelectDay+string(day)))

		// дни раскладываются в два ряда: MON-THU и FRI-SUN
		if len(row) == 4 {
			builder.Row(row...)
			row = nil
		}
	}
	builder.Row(row...)

	return builder.Build()
}

// DeleteConfirm клавиатура подтверждения удаления расписания
func DeleteConfirm() *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(
			Button("🗑 Удалить", CallbackDeleteConfirm),
			Button("Отмена", CallbackDeleteCancel),
		).
		Build()
}

// Notes клавиатура со списком конспектов (по кнопке на конспект)
func Notes(notes []*model.Note) *models.InlineKeyboardMarkup {
	builder := NewBuilder()
	for _, note := range notes {
		builder.Row(Button("📄 "+note.Name, CallbackViewNote+note.ID))
	}
	return builder.Build()
}
