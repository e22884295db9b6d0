package dto

import (
	"encoding/json"

	"urlnotes/internal/urlnotes/domain/entities"
)

// SaveDrawingRequest содержит данные для сохранения рисунка.
// Отсутствующий drawing заменяется пустым объектом при сохранении.
type SaveDrawingRequest struct {
	Drawing   json.RawMessage
	URL       string
	Timestamp int64
}

// ParseSaveDrawingRequest разбирает тело запроса без строгой валидации.
func ParseSaveDrawingRequest(body []byte) *SaveDrawingRequest {
	f := parseFields(body)
	return &SaveDrawingRequest{
		Drawing:   f.Raw("drawing"),
		URL:       f.String("url"),
		Timestamp: f.Timestamp("timestamp"),
	}
}

// ToEntity преобразует запрос в доменный рисунок.
func (r *SaveDrawingRequest) ToEntity(id string) *entities.Drawing {
	return &entities.Drawing{
		ID:        id,
		Payload:   r.Drawing,
		URL:       r.URL,
		Timestamp: r.Timestamp,
	}
}

// GetDrawingResponse - ответ на чтение рисунка; nil кодируется как null.
type GetDrawingResponse struct {
	Drawing json.RawMessage `json:"drawing"`
}

// SaveDrawingResponse - ответ на сохранение рисунка.
type SaveDrawingResponse struct {
	Status    string          `json:"status"`
	Drawing   json.RawMessage `json:"drawing"`
	URL       string          `json:"url"`
	Timestamp int64           `json:"timestamp"`
}

// NewSaveDrawingResponse создает ответ по сохраненному рисунку.
func NewSaveDrawingResponse(drawing *entities.Drawing) *SaveDrawingResponse {
	return &SaveDrawingResponse{
		Status:    StatusSaved,
		Drawing:   drawing.Payload,
		URL:       drawing.URL,
		Timestamp: drawing.Timestamp,
	}
}
