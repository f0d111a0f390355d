package webapp

import (
	"log"
	"net/http"

	"github.com/jordan52/data-horder-dupe-finder/app"
	"github.com/jordan52/data-horder-dupe-finder/models"
)

func (webapp *WebApp) runs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runs, err := app.ListRuns(webapp.DB)
		if err != nil {
			log.Printf("Unable to list runs: %v\n", err)
			webapp.renderError(w, http.StatusInternalServerError, "")
			return
		}
		if runs == nil {
			runs = []models.ScanRun{}
		}
		writeJSON(w, http.StatusOK, runs)
	}
}

func (webapp *WebApp) duplicates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groups, err := app.FindDuplicates(webapp.DB)
		if err != nil {
			log.Printf("Unable to find duplicates: %v\n", err)
			webapp.renderError(w, http.StatusInternalServerError, "")
			return
		}
		if groups == nil {
			groups = []models.DuplicateGroup{}
		}
		writeJSON(w, http.StatusOK, groups)
	}
}

func (webapp *WebApp) modified() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groups, err := app.FindModified(webapp.DB)
		if err != nil {
			log.Printf("Unable to find modified files: %v\n", err)
			webapp.renderError(w, http.StatusInternalServerError, "")
			return
		}
		if groups == nil {
			groups = []models.ModifiedGroup{}
		}
		writeJSON(w, http.StatusOK, groups)
	}
}
