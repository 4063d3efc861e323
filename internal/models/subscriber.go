package models

import "time"

const (
	SubscriberStatusActive       = "active"
	SubscriberStatusUnsubscribed = "unsubscribed"

	DefaultSubscriberSource = "website"
)

type Subscriber struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SubscriptionOutcome говорит, какой переход сделал subscribe.
type SubscriptionOutcome int

const (
	SubscriptionCreated SubscriptionOutcome = iota + 1
	SubscriptionAlreadyActive
	SubscriptionReactivated
)

type SubscriptionReceipt struct {
	ID        string              `json:"id"`
	Email     string              `json:"email"`
	Timestamp time.Time           `json:"timestamp"`
	Outcome   SubscriptionOutcome `json:"-"`
}
