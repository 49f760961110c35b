package callbacks

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/neurotechh/tempus_bot/internal/controller/keyboard"
)

// Route направляет callback query нужному обработчику по формату data
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	data := callback.Data

	switch {
	case strings.HasPrefix(data, keyboard.CallbackSelectDay):
		HandleSelectDay(ctx, b, callback, h)
	case data == keyboard.CallbackDeleteConfirm:
		HandleDeleteConfirm(ctx, b, callback, h)
	case data == keyboard.CallbackDeleteCancel:
		HandleDeleteCancel(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.CallbackViewNote):
		HandleViewNote(ctx, b, callback, h)
	default:
		AnswerCallback(ctx, b, callback.ID, "")
	}
}
