// boatd/handlers/handlers.go

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/christianErichsen/Baatkompany/database"
	"github.com/christianErichsen/Baatkompany/models"
)

// App is an interface that defines the dependencies our handlers need.
type App interface {
	DB() *database.DatabaseService
	Logger() *slog.Logger
	Notifier() models.Notifier
	AdminToken() string
	UploadWidget() models.UploadWidget
}

// MakeHandler adapts an App-aware handler function into a http.HandlerFunc.
func MakeHandler(app App, fn func(http.ResponseWriter, *http.Request, App)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fn(w, r, app)
	}
}

// respondJSON sends a JSON response with a given status code.
func respondJSON(w http.ResponseWriter, status int, payload interface{}, app App) {
	response, err := json.Marshal(payload)
	if err != nil {
		app.Logger().Error("Failed to marshal JSON payload", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		if _, werr := w.Write([]byte(`{"error":"Failed to marshal JSON response"}`)); werr != nil {
			app.Logger().Error("Failed to write internal server error response", "error", werr)
		}
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(response); err != nil {
		app.Logger().Error("Failed to write JSON response", "error", err)
	}
}

// HandleHome renders the marketplace front page with all current listings.
func HandleHome(w http.ResponseWriter, r *http.Request, app App) {
	listings, err := app.DB().GetListings(r.Context())
	if err != nil {
		app.Logger().Error("Failed to load listings for front page", "error", err)
		renderError(w, r, app, http.StatusInternalServerError, "Feil ved henting av forsiden.")
		return
	}
	render(w, r, app, http.StatusOK, "home.html", map[string]interface{}{
		"Title":    "viwaco-boatd – kjøp, salg og reparasjon",
		"Listings": listings,
	})
}

// HandleListingsJSON serves the raw listing records in the same order as the
// front page.
func HandleListingsJSON(w http.ResponseWriter, r *http.Request, app App) {
	listings, err := app.DB().GetListings(r.Context())
	if err != nil {
		app.Logger().Error("Failed to load listings for JSON endpoint", "error", err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "Kunne ikke hente listings"}, app)
		return
	}
	if listings == nil {
		listings = []models.Listing{}
	}
	respondJSON(w, http.StatusOK, listings, app)
}

// HandleSellPage renders the listing submission form.
func HandleSellPage(w http.ResponseWriter, r *http.Request, app App) {
	render(w, r, app, http.StatusOK, "sell.html", map[string]interface{}{
		"Title":  "Selg båt – viwaco-boatd",
		"Upload": app.UploadWidget(),
	})
}

// HandleRepairPage renders the repair inquiry form.
func HandleRepairPage(w http.ResponseWriter, r *http.Request, app App) {
	render(w, r, app, http.StatusOK, "repair.html", map[string]interface{}{
		"Title": "Bestill reparasjon – viwaco-boatd",
	})
}

// HandleNewsPage lists all published news posts, newest first.
func HandleNewsPage(w http.ResponseWriter, r *http.Request, app App) {
	posts, err := app.DB().GetNewsPosts(r.Context())
	if err != nil {
		app.Logger().Error("Failed to load news posts", "error", err)
		renderError(w, r, app, http.StatusInternalServerError, "Klarte ikke å hente nyheter.")
		return
	}
	render(w, r, app, http.StatusOK, "news.html", map[string]interface{}{
		"Title": "Nyheter – viwaco-boatd",
		"News":  posts,
	})
}

// HandleNotFound serves the shared 404 page for any unmatched route.
func HandleNotFound(w http.ResponseWriter, r *http.Request, app App) {
	render(w, r, app, http.StatusNotFound, "notfound.html", map[string]interface{}{
		"Title": "404 – viwaco-boatd",
	})
}
