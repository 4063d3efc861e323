package models

import "time"

const (
	ContactStatusNew     = "new"
	ContactStatusRead    = "read"
	ContactStatusReplied = "replied"
)

type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ContactInput struct {
	Name    string
	Email   string
	Phone   *string
	Message string
}

// ContactReceipt возвращается после успешной отправки обращения.
type ContactReceipt struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}
