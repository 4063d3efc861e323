package shop_api

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/BearBump/LlantaBox/internal/apperr"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	msgSomethingWrong   = "Something went wrong!"
	msgStoreUnavailable = "Service temporarily unavailable"
)

type errorBody struct {
	Error string `json:"error"`
}

type failBody struct {
	Success bool     `json:"success"`
	Error   string   `json:"error"`
	Fields  []string `json:"fields,omitempty"`
}

type dataBody struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

type listBody struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
	Count   int  `json:"count"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func ok(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, dataBody{Success: true, Message: message, Data: data})
}

func okList[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, listBody{Success: true, Data: items, Count: len(items)})
}

// fail переводит ошибки сервисов в коды ответа. notFoundMsg это текст
// для apperr.ErrNotFound, свой у каждого ресурса.
func (a *ShopAPI) fail(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	var ve *apperr.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, failBody{Error: ve.Message, Fields: ve.Fields})
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, failBody{Error: notFoundMsg})
	case errors.Is(err, apperr.ErrStoreUnavailable):
		a.log.Warn("store unavailable",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeJSON(w, http.StatusServiceUnavailable, failBody{Error: msgStoreUnavailable})
	default:
		a.log.Error("request failed",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: msgSomethingWrong})
	}
}

// decodeBody разбирает тело по полям. Поле неверного типа не обнуляет
// остальные: число или bool в строковом поле берётся как текст, прочее
// пропускается. Битый JSON даёт пустой T, и валидация сообщит о полях.
func decodeBody[T any](r *http.Request) T {
	var dst T
	if r.Body == nil {
		return dst
	}
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return dst
	}
	for name, val := range raw {
		if json.Unmarshal(oneField(name, val), &dst) == nil {
			continue
		}
		lit := bytes.TrimSpace(val)
		if len(lit) == 0 || bytes.IndexByte([]byte(`"{[`), lit[0]) >= 0 {
			continue
		}
		if text, err := json.Marshal(string(lit)); err == nil {
			_ = json.Unmarshal(oneField(name, text), &dst)
		}
	}
	return dst
}

func oneField(name string, val json.RawMessage) []byte {
	b, _ := json.Marshal(map[string]json.RawMessage{name: val})
	return b
}
