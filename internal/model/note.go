package model

import "time"

// Note загруженный студентом конспект.
// Сам файл остаётся в Telegram, храним только file_id и метаданные.
type Note struct {
	ID          string    `json:"id"`
	FileID      string    `json:"file_id"`
	Name        string    `json:"name"`
	Subject     string    `json:"subject"`
	Year        *string   `json:"year"`
	UploadedBy  string    `json:"uploaded_by"`
	FileSize    int64     `json:"file_size"`
	FileType    string    `json:"file_type"`
	Description string    `json:"description"`
	UploadDate  time.Time `json:"upload_date"`
}
