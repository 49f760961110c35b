package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/neurotechh/tempus_bot/internal/controller/formatting"
	"github.com/neurotechh/tempus_bot/internal/controller/keyboard"
	"github.com/neurotechh/tempus_bot/internal/controller/state"
	"github.com/neurotechh/tempus_bot/internal/service"
	"go.uber.org/zap"
)

const notesPageSize = 10

// HandleNotes обрабатывает команду /notes [предмет или поисковый запрос]
func (h *Handlers) HandleNotes(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	query := strings.TrimSpace(strings.TrimPrefix(update.Message.Text, "/notes"))

	// аргумент-код предмета фильтрует, любой другой текст ищет по названию
	var subject, search string
	if service.IsValidSubject(query) {
		subject = query
	} else {
		search = query
	}

	notes, err := h.noteService.Find(ctx, subject, search, notesPageSize)
	if err != nil {
		h.logger.Error("Failed to list notes", zap.Int64("chat_id", chatID), zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Не удалось получить список конспектов. Попробуйте позже.",
		})
		return
	}

	if len(notes) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text: "📭 Конспектов пока нет.\n\n" +
				"Загрузите свой командой /uploadnote - другим пригодится!",
		})
		return
	}

	text := "📚 <b>Конспекты</b>"
	if query != "" {
		text += fmt.Sprintf(" по запросу «%s»", query)
	}
	text += "\n\n"
	for i, note := range notes {
		text += formatting.FormatNoteShort(note, i+1) + "\n"
	}
	text += "\nНажмите на кнопку, чтобы получить файл."

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: keyboard.Notes(notes),
	})
}

// HandleUploadNote обрабатывает команду /uploadnote - начало диалога загрузки
func (h *Handlers) HandleUploadNote(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.stateManager.SetState(update.Message.From.ID, state.StateNoteSubject)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text: fmt.Sprintf("📚 По какому предмету конспект?\n\nДоступные предметы: %s",
			strings.Join(service.ValidSubjects, ", ")),
	})
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния диалога
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Команды обрабатываются другими handlers
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)

	switch h.stateManager.GetState(telegramID) {
	case state.StateNoteSubject:
		if !service.IsValidSubject(text) {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: chatID,
				Text: fmt.Sprintf("❌ Неизвестный предмет «%s».\n\nВыберите один из: %s",
					text, strings.Join(service.ValidSubjects, ", ")),
			})
			return
		}

		h.stateManager.SetData(telegramID, "note_subject", strings.ToLower(text))
		h.stateManager.SetState(telegramID, state.StateNoteDescription)

		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "📝 Добавьте короткое описание (или отправьте «-», чтобы пропустить).",
		})

	case state.StateNoteDescription:
		if text != "-" {
			h.stateManager.SetData(telegramID, "note_description", text)
		}
		h.stateManager.SetState(telegramID, state.StateNoteFile)

		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "📎 Теперь пришлите сам файл (PDF, JPG или PNG).",
		})

	case state.StateNoteFile:
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "📎 Жду файл конспекта. Отправьте документ или /cancel для отмены.",
		})
	}
}

// publishNote завершает диалог загрузки: сохраняет метаданные присланного файла
func (h *Handlers) publishNote(ctx context.Context, b *bot.Bot, update *models.Update, doc *models.Document) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	subject, _ := h.stateManager.GetData(telegramID, "note_subject")
	description, _ := h.stateManager.GetData(telegramID, "note_description")

	params := service.PublishParams{
		FileID:     doc.FileID,
		Name:       doc.FileName,
		Subject:    fmt.Sprint(subject),
		UploadedBy: update.Message.From.Username,
		FileSize:   doc.FileSize,
		FileType:   doc.MimeType,
	}
	if description != nil {
		params.Description = fmt.Sprint(description)
	}

	note, err := h.noteService.Publish(ctx, params)
	if err != nil {
		h.logger.Error("Failed to publish note", zap.Int64("chat_id", chatID), zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   fmt.Sprintf("❌ Не удалось сохранить конспект: %s", err),
		})
		return
	}

	h.stateManager.ClearState(telegramID)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      "✅ Конспект сохранён!\n\n" + formatting.FormatNoteInfo(note),
		ParseMode: models.ParseModeHTML,
	})
}
