package callbacks

import (
	"context"
	"errors"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/neurotechh/tempus_bot/internal/controller/formatting"
	"github.com/neurotechh/tempus_bot/internal/controller/keyboard"
	"github.com/neurotechh/tempus_bot/internal/model"
	"github.com/neurotechh/tempus_bot/internal/service"
	"go.uber.org/zap"
)

// HandleSelectDay переключает карточку расписания на выбранный день
func HandleSelectDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	message := GetMessageFromCallback(callback)
	if message == nil {
		AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	chatID := message.Chat.ID
	dayInput := strings.TrimPrefix(callback.Data, keyboard.CallbackSelectDay)

	view, err := h.TimetableService.SelectDay(ctx, chatID, dayInput)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotLoaded):
			// сессия могла погибнуть при рестарте бота - поднимаем из хранилища
			if _, restoreErr := h.TimetableService.Restore(ctx, chatID); restoreErr == nil {
				view, err = h.TimetableService.SelectDay(ctx, chatID, dayInput)
			}
			if err != nil {
				AnswerCallbackAlert(ctx, b, callback.ID, "📭 Расписание не загружено")
				return
			}
		case errors.Is(err, model.ErrUnknownDay):
			h.Logger.Error("Unknown day in callback", zap.String("data", callback.Data))
			AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неизвестный день")
			return
		default:
			h.Logger.Error("Failed to select day", zap.Int64("chat_id", chatID), zap.Error(err))
			AnswerCallbackAlert(ctx, b, callback.ID, "❌ Ошибка, попробуйте позже")
			return
		}
	}

	text := formatting.FormatDaySchedule(view.Day, view.Slots)
	markup := keyboard.Days(view.Day)

	// карточка дня может быть и фото (с подписью), и обычным текстом
	if len(message.Photo) > 0 {
		b.EditMessageCaption(ctx, &bot.EditMessageCaptionParams{
			ChatID:      chatID,
			MessageID:   message.ID,
			Caption:     text,
			ParseMode:   models.ParseModeHTML,
			ReplyMarkup: markup,
		})
	} else {
		b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:      chatID,
			MessageID:   message.ID,
			Text:        text,
			ParseMode:   models.ParseModeHTML,
			ReplyMarkup: markup,
		})
	}

	AnswerCallback(ctx, b, callback.ID, "")
}
