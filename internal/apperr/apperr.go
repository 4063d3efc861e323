// Package apperr описывает ошибки, общие для сервисов и хендлеров.
package apperr

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError перечисляет поля, не прошедшие проверку.
type ValidationError struct {
	Fields  []string
	Message string
}

func NewValidation(message string, fields ...string) *ValidationError {
	return &ValidationError{Fields: fields, Message: message}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return e.Message + " (" + strings.Join(e.Fields, ", ") + ")"
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsDomain сообщает, что err ожидаемый исход, а не сбой хранилища.
// На доменных ошибках fallback не включается.
func IsDomain(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrAlreadyExists) || IsValidation(err)
}
