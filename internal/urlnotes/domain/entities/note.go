// Package entities содержит доменные сущности сервиса заметок.
package entities

import "encoding/json"

// Kind определяет вид хранилища.
type Kind string

// Виды хранилищ.
const (
	KindNote    Kind = "note"
	KindDrawing Kind = "drawing"
)

// Extension возвращает расширение файла для вида хранилища.
func (k Kind) Extension() string {
	if k == KindDrawing {
		return "json"
	}
	return "md"
}

// Note представляет собой заметку, привязанную к URL.
type Note struct {
	ID        string
	Content   string
	URL       string
	Timestamp int64
}

// Drawing представляет собой рисунок, привязанный к URL.
// Payload хранится как есть, без интерпретации.
type Drawing struct {
	ID        string
	Payload   json.RawMessage
	URL       string
	Timestamp int64
}
