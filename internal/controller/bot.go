package controller

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/neurotechh/tempus_bot/internal/api"
	"github.com/neurotechh/tempus_bot/internal/controller/callbacks"
	"github.com/neurotechh/tempus_bot/internal/controller/handlers"
	"github.com/neurotechh/tempus_bot/internal/controller/state"
	"github.com/neurotechh/tempus_bot/internal/service"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	timetableService *service.TimetableService,
	noteService *service.NoteService,
	apiClient *api.Client,
	logger *zap.Logger,
) *BotController {
	// Создаём менеджер состояний
	stateManager := state.NewManager()

	// Создаём обработчики команд
	cmdHandlers := handlers.NewHandlers(
		timetableService,
		noteService,
		apiClient,
		stateManager,
		logger,
	)

	// Создаём callback handler с зависимостями
	callbackHandler := callbacks.NewHandler(
		timetableService,
		noteService,
		logger,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	// Регистрируем команды
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/today", bot.MatchTypeExact, c.handlers.HandleToday)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/delete", bot.MatchTypeExact, c.handlers.HandleDelete)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/uploadnote", bot.MatchTypeExact, c.handlers.HandleUploadNote)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Команды с аргументами
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/classroom", bot.MatchTypePrefix, c.handlers.HandleClassroom)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/notes", bot.MatchTypePrefix, c.handlers.HandleNotes)

	// Обработчик документов и фото (загрузка расписания и конспектов).
	// Регистрируется до текстового catch-all: у сообщения с файлом Text пустой,
	// и префикс "" его тоже матчит.
	c.bot.RegisterHandlerMatchFunc(matchDocumentOrPhoto, c.handlers.HandleDocument)

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

func matchDocumentOrPhoto(update *models.Update) bool {
	if update.Message == nil {
		return false
	}
	return update.Message.Document != nil || len(update.Message.Photo) > 0
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "help", Description: "❓ Справка по командам"},
		{Command: "today", Description: "📅 Расписание на сегодня"},
		{Command: "delete", Description: "🗑 Удалить расписание"},
		{Command: "classroom", Description: "🗺 Найти аудиторию (например /classroom CR-12)"},
		{Command: "notes", Description: "📚 Поиск конспектов"},
		{Command: "uploadnote", Description: "📤 Загрузить конспект"},
		{Command: "cancel", Description: "❌ Отменить текущий диалог"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
