package shop_api

import (
	"net/http"

	"github.com/BearBump/LlantaBox/internal/models"
)

const (
	msgSubscribed        = "Thank you for subscribing to our newsletter!"
	msgAlreadySubscribed = "You are already subscribed to our newsletter!"
	msgResubscribed      = "Welcome back! You have been resubscribed to our newsletter."
	msgUnsubscribed      = "You have been unsubscribed from our newsletter."
	msgEmailNotFound     = "Email not found in our newsletter list"
)

type subscribeRequest struct {
	Email  string `json:"email"`
	Source string `json:"source"`
}

func (a *ShopAPI) subscribe(w http.ResponseWriter, r *http.Request) {
	req := decodeBody[subscribeRequest](r)
	rec, err := a.newsletter.Subscribe(r.Context(), req.Email, req.Source)
	if err != nil {
		a.fail(w, r, err, msgEmailNotFound)
		return
	}
	switch rec.Outcome {
	case models.SubscriptionAlreadyActive:
		ok(w, http.StatusOK, msgAlreadySubscribed, rec)
	case models.SubscriptionReactivated:
		ok(w, http.StatusOK, msgResubscribed, rec)
	default:
		ok(w, http.StatusCreated, msgSubscribed, rec)
	}
}

func (a *ShopAPI) unsubscribe(w http.ResponseWriter, r *http.Request) {
	req := decodeBody[subscribeRequest](r)
	if _, err := a.newsletter.Unsubscribe(r.Context(), req.Email); err != nil {
		a.fail(w, r, err, msgEmailNotFound)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}{true, msgUnsubscribed})
}

func (a *ShopAPI) listSubscribers(w http.ResponseWriter, r *http.Request) {
	list, err := a.newsletter.List(r.Context())
	if err != nil {
		a.fail(w, r, err, msgEmailNotFound)
		return
	}
	okList(w, list)
}
