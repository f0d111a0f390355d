package webapp

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/jordan52/data-horder-dupe-finder/models"
)

// WebApp serves the accumulated store read-only as JSON.
type WebApp struct {
	DB        *sql.DB
	AppConfig *models.AppConfig
}

func NewWebApp(db *sql.DB, cfg *models.AppConfig) *WebApp {
	return &WebApp{DB: db, AppConfig: cfg}
}

func (webapp *WebApp) GetListenAddr() string {
	port := 8080
	if webapp.AppConfig != nil && webapp.AppConfig.Server.Port > 0 {
		port = webapp.AppConfig.Server.Port
	}
	return fmt.Sprintf(":%d", port)
}

func (webapp *WebApp) GetRouter() http.Handler {
	return router(webapp)
}
