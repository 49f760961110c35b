package handlers

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/neurotechh/tempus_bot/internal/controller/formatting"
	"github.com/neurotechh/tempus_bot/internal/controller/keyboard"
	"github.com/neurotechh/tempus_bot/internal/controller/render"
	"github.com/neurotechh/tempus_bot/internal/controller/state"
	"github.com/neurotechh/tempus_bot/internal/service"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID

	// Если расписание уже сохранено, сразу показываем сегодняшний день
	view, err := h.timetableService.Restore(ctx, chatID)
	if err != nil {
		h.logger.Error("Failed to restore timetable", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	if view != nil {
		h.sendDayView(ctx, b, chatID, view)
		return
	}

	welcomeText := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Я Tempus - помощник по учёбе.\n\n"+
			"Пришлите PDF или фото недельного расписания, и я буду показывать занятия по дням.\n\n"+
			"Доступные команды:\n"+
			"/today - Расписание на сегодня\n"+
			"/delete - Удалить расписание\n"+
			"/notes - Конспекты по предметам\n"+
			"/uploadnote - Поделиться конспектом\n"+
			"/classroom - Найти аудиторию\n"+
			"/help - Справка",
		update.Message.From.FirstName,
	)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   welcomeText,
	})
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Справка по командам:\n\n" +
		"Расписание:\n" +
		"/today - Занятия на сегодня (кнопками можно переключать день)\n" +
		"/delete - Удалить сохранённое расписание\n" +
		"Чтобы загрузить расписание, просто пришлите PDF или фото файлом.\n\n" +
		"Конспекты:\n" +
		"/notes [предмет или поиск] - Список конспектов\n" +
		"/uploadnote - Загрузить свой конспект\n\n" +
		"Кампус:\n" +
		"/classroom cr301 - План этажа с аудиторией\n\n" +
		"/cancel - Отменить текущую операцию"

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   helpText,
	})
}

// HandleToday обрабатывает команду /today - расписание на сегодня
func (h *Handlers) HandleToday(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID

	view, err := h.timetableService.Restore(ctx, chatID)
	if err != nil {
		h.logger.Error("Failed to restore timetable", zap.Int64("chat_id", chatID), zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Не удалось загрузить расписание. Попробуйте позже.",
		})
		return
	}

	if view == nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   formatting.FormatNoTimetable(),
		})
		return
	}

	h.sendDayView(ctx, b, chatID, view)
}

// sendDayView отправляет карточку дня с клавиатурой выбора дня
func (h *Handlers) sendDayView(ctx context.Context, b *bot.Bot, chatID int64, view *service.View) {
	caption := formatting.FormatDaySchedule(view.Day, view.Slots)
	markup := keyboard.Days(view.Day)

	imageData, err := render.DayCard(view.Day, view.Slots)
	if err != nil {
		h.logger.Warn("Failed to render day card, falling back to text",
			zap.Int64("chat_id", chatID), zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        caption,
			ParseMode:   models.ParseModeHTML,
			ReplyMarkup: markup,
		})
		return
	}

	b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:      chatID,
		Photo:       &models.InputFileUpload{Filename: "day.png", Data: bytes.NewReader(imageData)},
		Caption:     caption,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: markup,
	})
}

// HandleDelete обрабатывает команду /delete - запрос подтверждения
func (h *Handlers) HandleDelete(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID

	view, err := h.timetableService.Restore(ctx, chatID)
	if err != nil {
		h.logger.Error("Failed to restore timetable", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	if view == nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "📭 Удалять нечего - расписание не загружено.",
		})
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "Удалить расписание? Это действие нельзя отменить.",
		ReplyMarkup: keyboard.DeleteConfirm(),
	})
}

// roomQueryPattern разбирает запрос вида "cr301", "cc 602", "tr-302"
var roomQueryPattern = regexp.MustCompile(`(?i)^(cr|tr|cc|cl)[\s-]*([0-9a-z]+)$`)

// HandleClassroom обрабатывает команду /classroom - поиск аудитории
func (h *Handlers) HandleClassroom(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	query := strings.TrimSpace(strings.TrimPrefix(update.Message.Text, "/classroom"))

	match := roomQueryPattern.FindStringSubmatch(query)
	if match == nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text: "🏫 Укажите аудиторию, например: /classroom cr301\n\n" +
				"Типы: cr - classroom, tr - tutorial room, cc - computer lab, cl - conference/lab",
		})
		return
	}

	roomType := strings.ToLower(match[1])
	roomNumber := strings.ToLower(match[2])

	room, err := h.apiClient.FindRoom(ctx, roomType, roomNumber)
	if err != nil {
		h.logger.Error("Failed to find room",
			zap.String("room_type", roomType),
			zap.String("room_number", roomNumber),
			zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Не удалось получить план этажа. Попробуйте позже.",
		})
		return
	}

	if room == nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   fmt.Sprintf("🔍 Аудитория %s%s не найдена.", roomType, roomNumber),
		})
		return
	}

	b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:  chatID,
		Photo:   &models.InputFileString{Data: room.ImageURL},
		Caption: fmt.Sprintf("🏫 %s %s (этаж %s)", room.RoomTypeFull, room.RoomNumber, room.Floor),
	})
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID

	if h.stateManager.GetState(telegramID) == state.StateNone {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Нет активных операций для отмены.",
		})
		return
	}

	h.stateManager.ClearState(telegramID)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   "✅ Операция отменена.",
	})
}
