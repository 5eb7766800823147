// boatd/handlers/admin.go
package handlers

import (
	"net/http"

	"github.com/christianErichsen/Baatkompany/utils"
)

// HandleAdmin renders the moderation dashboard. Without credentials it shows
// an instructional access page with status 200, matching the public site's
// tone rather than an HTTP error.
func HandleAdmin(w http.ResponseWriter, r *http.Request, app App) {
	logger := app.Logger().With("handler", "HandleAdmin")

	// A correct ?token= exchange sets the signed session cookie and then
	// strips the secret from the URL via redirect.
	if token := r.URL.Query().Get("token"); token != "" {
		if utils.SecureCompare(token, app.AdminToken()) {
			grantAdminSession(w, r, app)
			http.Redirect(w, r, "/admin", http.StatusSeeOther)
			return
		}
		logger.Warn("Admin access attempt with invalid token")
	}

	if !hasAdminSession(r, app) {
		render(w, r, app, http.StatusOK, "admin_denied.html", map[string]interface{}{
			"Title": "Admin – viwaco-boatd",
		})
		return
	}

	ctx := r.Context()
	listings, err := app.DB().GetListings(ctx)
	if err != nil {
		logger.Error("Failed to load listings for admin view", "error", err)
		renderError(w, r, app, http.StatusInternalServerError, "Klarte ikke å hente admin-data.")
		return
	}
	repairs, err := app.DB().GetRepairRequests(ctx)
	if err != nil {
		logger.Error("Failed to load repair requests for admin view", "error", err)
		renderError(w, r, app, http.StatusInternalServerError, "Klarte ikke å hente admin-data.")
		return
	}
	submissions, err := app.DB().GetSellSubmissions(ctx)
	if err != nil {
		logger.Error("Failed to load sell submissions for admin view", "error", err)
		renderError(w, r, app, http.StatusInternalServerError, "Klarte ikke å hente admin-data.")
		return
	}
	news, err := app.DB().GetNewsPosts(ctx)
	if err != nil {
		logger.Error("Failed to load news posts for admin view", "error", err)
		renderError(w, r, app, http.StatusInternalServerError, "Klarte ikke å hente admin-data.")
		return
	}

	render(w, r, app, http.StatusOK, "admin.html", map[string]interface{}{
		"Title":       "Admin – viwaco-boatd",
		"Listings":    listings,
		"Repairs":     repairs,
		"Submissions": submissions,
		"News":        news,
	})
}
