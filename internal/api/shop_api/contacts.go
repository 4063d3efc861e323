package shop_api

import (
	"net/http"

	"github.com/BearBump/LlantaBox/internal/models"
	"github.com/go-chi/chi/v5"
)

const (
	msgContactThanks   = "Thank you for your message! We'll get back to you soon."
	msgContactNotFound = "Contact message not found"
)

type contactRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Message string  `json:"message"`
}

func (a *ShopAPI) submitContact(w http.ResponseWriter, r *http.Request) {
	req := decodeBody[contactRequest](r)
	receipt, err := a.contacts.Submit(r.Context(), models.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		a.fail(w, r, err, msgContactNotFound)
		return
	}
	ok(w, http.StatusCreated, msgContactThanks, receipt)
}

func (a *ShopAPI) listContacts(w http.ResponseWriter, r *http.Request) {
	list, err := a.contacts.List(r.Context())
	if err != nil {
		a.fail(w, r, err, msgContactNotFound)
		return
	}
	okList(w, list)
}

func (a *ShopAPI) getContact(w http.ResponseWriter, r *http.Request) {
	m, err := a.contacts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err, msgContactNotFound)
		return
	}
	ok(w, http.StatusOK, "", m)
}
