package models

import (
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeEmail обрезает пробелы и приводит адрес к нижнему регистру.
// Результат служит ключом уникальности подписчика.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail проверяет форму local@domain.tld без пробелов.
func ValidEmail(email string) bool {
	return emailRe.MatchString(email)
}
