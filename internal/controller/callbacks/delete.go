package callbacks

import (
	"context"
	"errors"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/neurotechh/tempus_bot/internal/service"
	"go.uber.org/zap"
)

// HandleDeleteConfirm удаляет сохранённое расписание после подтверждения
func HandleDeleteConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	message := GetMessageFromCallback(callback)
	if message == nil {
		AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	chatID := message.Chat.ID

	err := h.TimetableService.Delete(ctx, chatID)
	if errors.Is(err, service.ErrNotLoaded) {
		// сессия могла погибнуть при рестарте бота - поднимаем из хранилища
		if _, restoreErr := h.TimetableService.Restore(ctx, chatID); restoreErr == nil {
			err = h.TimetableService.Delete(ctx, chatID)
		}
		if errors.Is(err, service.ErrNotLoaded) {
			AnswerCallbackAlert(ctx, b, callback.ID, "📭 Расписание не загружено")
			return
		}
	}
	if err != nil {
		h.Logger.Error("Failed to delete timetable", zap.Int64("chat_id", chatID), zap.Error(err))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Не удалось удалить расписание")
		return
	}

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: message.ID,
		Text:      "✅ Расписание удалено.\n\nПришлите PDF или фото расписания, чтобы загрузить новое.",
	})

	AnswerCallback(ctx, b, callback.ID, "Расписание удалено")
}

// HandleDeleteCancel отменяет удаление расписания
func HandleDeleteCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	message := GetMessageFromCallback(callback)
	if message == nil {
		AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    message.Chat.ID,
		MessageID: message.ID,
		Text:      "Удаление отменено. Расписание на месте 👌",
	})

	AnswerCallback(ctx, b, callback.ID, "")
}
