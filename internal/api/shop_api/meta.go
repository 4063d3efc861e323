package shop_api

import (
	"net/http"
	"time"

	"github.com/BearBump/LlantaBox/internal/i18n"
	"github.com/go-chi/chi/v5"
)

type healthBody struct {
	Status      string  `json:"status"`
	Timestamp   string  `json:"timestamp"`
	Uptime      float64 `json:"uptime"`
	Environment string  `json:"environment"`
}

func (a *ShopAPI) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthBody{
		Status:      "ok",
		Timestamp:   time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Uptime:      time.Since(a.started).Seconds(),
		Environment: a.env,
	})
}

type infoBody struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

func (a *ShopAPI) info(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, infoBody{
		Message: "LlantaBox tire shop API",
		Version: apiVersion,
		Endpoints: map[string]string{
			"health":     "/api/health",
			"tires":      "/api/tires",
			"contact":    "/api/contact",
			"newsletter": "/api/newsletter",
			"i18n":       "/api/i18n",
			"docs":       "/api/docs/index.html",
		},
	})
}

type messagesBody struct {
	Language string            `json:"language"`
	Messages map[string]string `json:"messages"`
}

// messages отдаёт словарь: язык из пути, затем ?lang=, затем Accept-Language.
func (a *ShopAPI) messages(w http.ResponseWriter, r *http.Request) {
	lang := chi.URLParam(r, "lang")
	if lang == "" {
		lang = r.URL.Query().Get("lang")
	}
	if lang == "" {
		lang = a.i18n.Match(r.Header.Get("Accept-Language"))
	}
	lang = i18n.Normalize(lang)
	ok(w, http.StatusOK, "", messagesBody{Language: lang, Messages: a.i18n.Messages(lang)})
}
