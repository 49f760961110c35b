package handlers

import (
	"net/http"
	"time"

	"github.com/neurotechh/tempus_bot/internal/api"
	"github.com/neurotechh/tempus_bot/internal/controller/state"
	"github.com/neurotechh/tempus_bot/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	timetableService *service.TimetableService
	noteService      *service.NoteService
	apiClient        *api.Client
	stateManager     *state.Manager
	logger           *zap.Logger

	// для скачивания файлов пользователя из Telegram
	downloadClient *http.Client
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	timetableService *service.TimetableService,
	noteService *service.NoteService,
	apiClient *api.Client,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		timetableService: timetableService,
		noteService:      noteService,
		apiClient:        apiClient,
		stateManager:     stateManager,
		logger:           logger,
		downloadClient:   &http.Client{Timeout: 1 * time.Minute},
	}
}
