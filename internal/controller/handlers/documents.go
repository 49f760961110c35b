package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/neurotechh/tempus_bot/internal/api"
	"github.com/neurotechh/tempus_bot/internal/controller/state"
	"github.com/neurotechh/tempus_bot/internal/model"
	"github.com/neurotechh/tempus_bot/internal/service"
	"go.uber.org/zap"
)

// HandleDocument обрабатывает присланный файл.
// Внутри диалога загрузки конспекта файл становится конспектом,
// в остальных случаях это загрузка расписания.
func (h *Handlers) HandleDocument(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	inNoteDialog := h.stateManager.GetState(update.Message.From.ID) == state.StateNoteFile

	if doc := update.Message.Document; doc != nil {
		if inNoteDialog {
			h.publishNote(ctx, b, update, doc)
			return
		}
		h.ingestTimetable(ctx, b, update, doc)
		return
	}

	// фото приходят без имени и mime-типа, Telegram всегда отдаёт их как JPEG
	if photos := update.Message.Photo; len(photos) > 0 {
		if inNoteDialog {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: update.Message.Chat.ID,
				Text:   "📎 Конспект нужно прислать файлом (без сжатия), а не фото.",
			})
			return
		}
		largest := photos[len(photos)-1]
		h.ingestTimetable(ctx, b, update, &models.Document{
			FileID:   largest.FileID,
			FileName: "timetable.jpg",
			MimeType: "image/jpeg",
			FileSize: int64(largest.FileSize),
		})
	}
}

// ingestTimetable скачивает файл, прогоняет его через OCR и сохраняет расписание
func (h *Handlers) ingestTimetable(ctx context.Context, b *bot.Bot, update *models.Update, doc *models.Document) {
	chatID := update.Message.Chat.ID

	if !api.AllowedUploadTypes[strings.ToLower(doc.MimeType)] {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Такой файл не подходит. Пришлите расписание как PDF, JPG или PNG.",
		})
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "🔄 Распознаю расписание, это может занять до минуты...",
	})

	fileData, err := h.downloadTelegramFile(ctx, b, doc.FileID)
	if err != nil {
		h.logger.Error("Failed to download document",
			zap.Int64("chat_id", chatID),
			zap.String("file_id", doc.FileID),
			zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Не удалось скачать файл. Попробуйте ещё раз.",
		})
		return
	}
	defer fileData.Close()

	rawTimetable, err := h.apiClient.ExtractTimetable(ctx, doc.FileName, doc.MimeType, fileData)
	if err != nil {
		h.logger.Error("OCR extraction failed", zap.Int64("chat_id", chatID), zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Не удалось распознать расписание. Убедитесь, что на файле таблица, и попробуйте ещё раз.",
		})
		return
	}

	view, err := h.timetableService.Ingest(ctx, chatID, rawTimetable)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrMalformedPayload):
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: chatID,
				Text:   "❌ Загрузка не удалась: OCR вернул не таблицу расписания. Попробуйте другой файл.",
			})
		case errors.Is(err, service.ErrIngestInFlight):
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: chatID,
				Text:   "⏳ Предыдущая загрузка ещё обрабатывается, подождите.",
			})
		default:
			h.logger.Error("Failed to ingest timetable", zap.Int64("chat_id", chatID), zap.Error(err))
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: chatID,
				Text:   "❌ Не удалось сохранить расписание. Попробуйте позже.",
			})
		}
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "✅ Расписание загружено!",
	})
	h.sendDayView(ctx, b, chatID, view)
}

// downloadTelegramFile скачивает файл пользователя с серверов Telegram
func (h *Handlers) downloadTelegramFile(ctx context.Context, b *bot.Bot, fileID string) (io.ReadCloser, error) {
	file, err := b.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.FileDownloadLink(file), nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}

	resp, err := h.downloadClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("download file: unexpected status %d", resp.StatusCode)
	}

	return resp.Body, nil
}
