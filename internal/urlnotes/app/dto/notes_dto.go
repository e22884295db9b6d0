package dto

import "urlnotes/internal/urlnotes/domain/entities"

// SaveNoteRequest содержит данные для сохранения заметки.
// Отсутствующие поля: note и url - пустые строки, timestamp - 0 (текущее время).
type SaveNoteRequest struct {
	Note      string
	URL       string
	Timestamp int64
}

// ParseSaveNoteRequest разбирает тело запроса без строгой валидации.
func ParseSaveNoteRequest(body []byte) *SaveNoteRequest {
	f := parseFields(body)
	return &SaveNoteRequest{
		Note:      f.String("note"),
		URL:       f.String("url"),
		Timestamp: f.Timestamp("timestamp"),
	}
}

// ToEntity преобразует запрос в доменную заметку.
func (r *SaveNoteRequest) ToEntity(id string) *entities.Note {
	return &entities.Note{
		ID:        id,
		Content:   r.Note,
		URL:       r.URL,
		Timestamp: r.Timestamp,
	}
}

// GetNoteResponse - ответ на чтение заметки.
type GetNoteResponse struct {
	Note string `json:"note"`
}

// SaveNoteResponse - ответ на сохранение заметки.
type SaveNoteResponse struct {
	Status    string `json:"status"`
	Note      string `json:"note"`
	URL       string `json:"url"`
	Timestamp int64  `json:"timestamp"`
}

// NewSaveNoteResponse создает ответ по сохраненной заметке.
func NewSaveNoteResponse(note *entities.Note) *SaveNoteResponse {
	return &SaveNoteResponse{
		Status:    StatusSaved,
		Note:      note.Content,
		URL:       note.URL,
		Timestamp: note.Timestamp,
	}
}
