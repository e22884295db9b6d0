// Package dto содержит модели запросов и ответов HTTP API.
package dto

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Статусы ответов.
const (
	StatusSaved   = "saved"
	StatusDeleted = "deleted"
	StatusOK      = "ok"
)

// DeleteResponse - ответ на удаление записи.
type DeleteResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}

// NewDeleteResponse создает ответ на удаление записи id.
func NewDeleteResponse(id string) *DeleteResponse {
	return &DeleteResponse{Status: StatusDeleted, ID: id}
}

// ErrorResponse - единый ответ об ошибке.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HealthResponse - ответ проверки работоспособности.
type HealthResponse struct {
	Status string `json:"status"`
}

// fields - тело запроса, разобранное до уровня полей верхнего уровня.
// Неразбираемое тело трактуется как пустой объект.
type fields map[string]json.RawMessage

func parseFields(body []byte) fields {
	var f fields
	if err := json.Unmarshal(body, &f); err != nil || f == nil {
		return fields{}
	}
	return f
}

// String возвращает строковое поле или "" при отсутствии либо неверном типе.
func (f fields) String(name string) string {
	var s string
	if raw, ok := f[name]; ok {
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
	}
	return s
}

// Timestamp возвращает целочисленную метку времени или 0 при отсутствии либо неверном типе.
func (f fields) Timestamp(name string) int64 {
	raw, ok := f[name]
	if !ok {
		return 0
	}

	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		return 0
	}
	if i, err := num.Int64(); err == nil {
		return i
	}
	if fl, err := strconv.ParseFloat(num.String(), 64); err == nil && !math.IsInf(fl, 0) && !math.IsNaN(fl) {
		if fl >= math.MinInt64 && fl < math.MaxInt64 {
			return int64(fl)
		}
	}
	return 0
}

// Raw возвращает поле как есть; null и отсутствие поля дают nil.
func (f fields) Raw(name string) json.RawMessage {
	raw, ok := f[name]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	return raw
}
