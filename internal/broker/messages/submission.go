package messages

import (
	"encoding/json"
	"time"
)

// Типы событий в топике заявок.
const (
	KindContactReceived   = "contact.received"
	KindNewsletterChanged = "newsletter.changed"
)

// SubmissionEvent публикуется после приёма обращения или подписки,
// в каком бы хранилище она ни оказалась.
type SubmissionEvent struct {
	Kind       string    `json:"kind"`
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Status     string    `json:"status"`
	Store      string    `json:"store"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e SubmissionEvent) Key() []byte {
	return []byte(e.Email)
}

func (e SubmissionEvent) Encode() ([]byte, error) {
	return json.Marshal(e)
}
