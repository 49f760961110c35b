package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrNoPages OCR не нашёл ни одной страницы в документе
var ErrNoPages = errors.New("no pages found in OCR response")

// AllowedUploadTypes типы файлов, которые принимает OCR
var AllowedUploadTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
}

// Client клиент Tempus API (OCR и поиск аудиторий)
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient создаёт клиент Tempus API
func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			// OCR обрабатывает PDF заметно дольше обычного запроса
			Timeout: 2 * time.Minute,
		},
		logger: logger,
	}
}

// extractEnvelope ответ POST /ocr/extract-timetable
type extractEnvelope struct {
	Success    bool   `json:"success"`
	TotalPages int    `json:"total_pages"`
	Detail     string `json:"detail"`
	Results    []struct {
		PageNumber int             `json:"page_number"`
		Data       json.RawMessage `json:"data"`
	} `json:"results"`
}

// ExtractTimetable отправляет файл расписания в OCR и возвращает сырой
// JSON таблицы первой страницы - ровно то, что потребляет ParseTimetable.
func (c *Client) ExtractTimetable(ctx context.Context, fileName, contentType string, file io.Reader) ([]byte, error) {
	if !AllowedUploadTypes[strings.ToLower(contentType)] {
		return nil, fmt.Errorf("invalid file type %q, allowed: PDF, JPEG, PNG", contentType)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, fileName))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("create multipart: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("copy file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ocr/extract-timetable", &body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call ocr api: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read ocr response: %w", err)
	}

	var envelope extractEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("decode ocr response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if envelope.Detail != "" {
			return nil, fmt.Errorf("ocr api: %s", envelope.Detail)
		}
		return nil, fmt.Errorf("ocr api: unexpected status %d", resp.StatusCode)
	}

	if !envelope.Success || len(envelope.Results) == 0 {
		return nil, ErrNoPages
	}

	c.logger.Info("Timetable extracted",
		zap.String("file", fileName),
		zap.Int("total_pages", envelope.TotalPages),
		zap.Duration("took", time.Since(started)))

	// клиент всегда берёт первую страницу
	return envelope.Results[0].Data, nil
}

// Room аудитория из каталога планов этажей
type Room struct {
	ID           string `json:"id"`
	Floor        string `json:"floor"`
	RoomNumber   string `json:"room_number"`
	RoomType     string `json:"room_type"`
	RoomTypeFull string `json:"room_type_full"`
	ImageURL     string `json:"image_url"`
}

type findRoomEnvelope struct {
	Success bool   `json:"success"`
	Detail  string `json:"detail"`
	Room    *Room  `json:"room"`
}

// FindRoom ищет аудиторию по типу и номеру (например cr и 301).
// Возвращает (nil, nil), если аудитория не найдена.
func (c *Client) FindRoom(ctx context.Context, roomType, roomNumber string) (*Room, error) {
	url := fmt.Sprintf("%s/floor/find/%s/%s", c.baseURL, roomType, roomNumber)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call floor api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	var envelope findRoomEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode floor response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if envelope.Detail != "" {
			return nil, fmt.Errorf("floor api: %s", envelope.Detail)
		}
		return nil, fmt.Errorf("floor api: unexpected status %d", resp.StatusCode)
	}
	if !envelope.Success || envelope.Room == nil {
		return nil, nil
	}

	return envelope.Room, nil
}
