package webapp

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func router(webapp *WebApp) http.Handler {
	r := chi.NewRouter()

	r.Get("/api/runs", webapp.runs())
	r.Get("/api/duplicates", webapp.duplicates())
	r.Get("/api/modified", webapp.modified())

	r.NotFound(webapp.notFoundHandler())

	return r
}
