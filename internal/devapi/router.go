package devapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/pharmadesk/internal/logging"
)

// NewRouter builds the API handler mounted under /api.
func NewRouter(store *Store, tokens *TokenIssuer, log logging.Logger, idsAsStrings bool) http.Handler {
	h := &handlers{store: store, tokens: tokens, log: log, idsAsStrings: idsAsStrings}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(h.requestFields)
	r.Use(h.requestLog)
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.fail(r.Context(), w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		h.fail(r.Context(), w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", h.login)

		r.Group(func(r chi.Router) {
			r.Use(h.bearer)
			r.Post("/auth/logout", h.logout)
			r.Get("/products", h.listProducts)
			r.Post("/products", h.createProduct)
			r.Delete("/products/{id}", h.deleteProduct)
		})
	})

	return r
}
