package callbacks

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/neurotechh/tempus_bot/internal/service"
	"go.uber.org/zap"
)

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	TimetableService *service.TimetableService
	NoteService      *service.NoteService
	Logger           *zap.Logger
}

// NewHandler создаёт новый обработчик callbacks с зависимостями
func NewHandler(
	timetableService *service.TimetableService,
	noteService *service.NoteService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		TimetableService: timetableService,
		NoteService:      noteService,
		Logger:           logger,
	}
}

// HandleCallbackQuery - главный обработчик callback queries
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := update.CallbackQuery

	h.Logger.Info("Callback received",
		zap.String("data", callback.Data),
		zap.Int64("user_id", callback.From.ID))

	Route(ctx, b, callback, h)
}
