package shop_api

import (
	"net/http"

	"github.com/BearBump/LlantaBox/internal/models"
	"github.com/go-chi/chi/v5"
)

const msgTireNotFound = "Tire not found"

func (a *ShopAPI) listTires(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := models.TireFilter{
		Category: q.Get("category"),
		Brand:    q.Get("brand"),
		Size:     q.Get("size"),
	}
	tires, err := a.catalog.ListTires(r.Context(), f)
	if err != nil {
		a.fail(w, r, err, msgTireNotFound)
		return
	}
	okList(w, tires)
}

func (a *ShopAPI) getTire(w http.ResponseWriter, r *http.Request) {
	tire, err := a.catalog.GetTire(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err, msgTireNotFound)
		return
	}
	ok(w, http.StatusOK, "", tire)
}

func (a *ShopAPI) listCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := a.catalog.ListCategories(r.Context())
	if err != nil {
		a.fail(w, r, err, msgTireNotFound)
		return
	}
	if cats == nil {
		cats = []string{}
	}
	ok(w, http.StatusOK, "", cats)
}

func (a *ShopAPI) listBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := a.catalog.ListBrands(r.Context())
	if err != nil {
		a.fail(w, r, err, msgTireNotFound)
		return
	}
	if brands == nil {
		brands = []string{}
	}
	ok(w, http.StatusOK, "", brands)
}
