package shop_api

import (
	"net/http"
	"strings"
	"time"

	"github.com/BearBump/LlantaBox/internal/api/docs"
	"github.com/BearBump/LlantaBox/internal/i18n"
	"github.com/BearBump/LlantaBox/internal/services/catalog"
	"github.com/BearBump/LlantaBox/internal/services/contacts"
	"github.com/BearBump/LlantaBox/internal/services/newsletter"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

const (
	apiVersion     = "1.0.0"
	defaultTimeout = 30 * time.Second
)

type Deps struct {
	Catalog    *catalog.Service
	Contacts   *contacts.Service
	Newsletter *newsletter.Service
	I18n       *i18n.Resolver

	Environment string
	// FrontendDir с index.html; пустая строка или каталог без index.html
	// означает, что фронтенд деплоится отдельно.
	FrontendDir string
	Logger      *zap.Logger
}

type ShopAPI struct {
	catalog    *catalog.Service
	contacts   *contacts.Service
	newsletter *newsletter.Service
	i18n       *i18n.Resolver

	env     string
	static  http.Handler
	log     *zap.Logger
	started time.Time
}

func New(d Deps) *ShopAPI {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	tr := d.I18n
	if tr == nil {
		tr = i18n.MustNew()
	}
	env := d.Environment
	if env == "" {
		env = "development"
	}
	return &ShopAPI{
		catalog:    d.Catalog,
		contacts:   d.Contacts,
		newsletter: d.Newsletter,
		i18n:       tr,
		env:        env,
		static:     newSPAHandler(d.FrontendDir),
		log:        log,
		started:    time.Now(),
	}
}

// Routes собирает chi-роутер с общим набором middleware.
func (a *ShopAPI) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(a.log))
	r.Use(recoverer(a.log))
	r.Use(middleware.Timeout(defaultTimeout))

	r.NotFound(a.notFound)
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "Method not allowed"})
	})

	r.Get("/", a.root)

	r.Route("/api", func(api chi.Router) {
		api.Get("/", a.info)
		api.Get("/health", a.health)

		api.Get("/swagger.json", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(docs.SwaggerJSON)
		})
		api.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/api/swagger.json")))

		api.Route("/tires", func(tr chi.Router) {
			tr.Get("/", a.listTires)
			tr.Get("/categories", a.listCategories)
			tr.Get("/brands", a.listBrands)
			tr.Get("/{id}", a.getTire)
		})

		api.Route("/contact", func(cr chi.Router) {
			cr.Post("/", a.submitContact)
			cr.Get("/", a.listContacts)
			cr.Get("/{id}", a.getContact)
		})

		api.Route("/newsletter", func(nr chi.Router) {
			nr.Post("/subscribe", a.subscribe)
			nr.Post("/unsubscribe", a.unsubscribe)
			nr.Get("/subscribers", a.listSubscribers)
		})

		api.Get("/i18n", a.messages)
		api.Get("/i18n/{lang}", a.messages)
	})

	return r
}

func (a *ShopAPI) notFound(w http.ResponseWriter, r *http.Request) {
	if isAPIPath(r.URL.Path) || (r.Method != http.MethodGet && r.Method != http.MethodHead) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "Route not found"})
		return
	}
	if a.static == nil {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "Frontend not found. Please deploy frontend separately."})
		return
	}
	a.static.ServeHTTP(w, r)
}

func (a *ShopAPI) root(w http.ResponseWriter, r *http.Request) {
	if a.static != nil {
		a.static.ServeHTTP(w, r)
		return
	}
	a.info(w, r)
}

func isAPIPath(p string) bool {
	return p == "/api" || strings.HasPrefix(p, "/api/")
}
