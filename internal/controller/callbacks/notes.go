package callbacks

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/neurotechh/tempus_bot/internal/controller/formatting"
	"github.com/neurotechh/tempus_bot/internal/controller/keyboard"
	"go.uber.org/zap"
)

// HandleViewNote отправляет пользователю файл выбранного конспекта
func HandleViewNote(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	message := GetMessageFromCallback(callback)
	if message == nil {
		AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	chatID := message.Chat.ID
	noteID := strings.TrimPrefix(callback.Data, keyboard.CallbackViewNote)

	note, err := h.NoteService.Get(ctx, noteID)
	if err != nil {
		h.Logger.Error("Failed to get note", zap.String("note_id", noteID), zap.Error(err))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Ошибка, попробуйте позже")
		return
	}
	if note == nil {
		AnswerCallbackAlert(ctx, b, callback.ID, "📭 Конспект не найден")
		return
	}

	// файл хранится в Telegram, пересылаем его по file_id
	_, err = b.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID:    chatID,
		Document:  &models.InputFileString{Data: note.FileID},
		Caption:   formatting.FormatNoteInfo(note),
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		h.Logger.Error("Failed to send note document", zap.String("note_id", noteID), zap.Error(err))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Не удалось отправить файл")
		return
	}

	AnswerCallback(ctx, b, callback.ID, "")
}
