// boatd/handlers/actions.go
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/christianErichsen/Baatkompany/config"
	"github.com/christianErichsen/Baatkompany/models"
	"github.com/christianErichsen/Baatkompany/utils"
)

// authorizeAdmin accepts the shared secret from the submitted form or an
// existing signed admin session.
func authorizeAdmin(r *http.Request, app App) bool {
	if token := r.FormValue("token"); token != "" && utils.SecureCompare(token, app.AdminToken()) {
		return true
	}
	return hasAdminSession(r, app)
}

func hasAdminSession(r *http.Request, app App) bool {
	cookie, err := r.Cookie(utils.AdminSessionCookie)
	return err == nil && utils.VerifyAdminSession(app.AdminToken(), cookie.Value)
}

// grantAdminSession sets the signed session cookie so the admin secret never
// has to travel in a URL again.
func grantAdminSession(w http.ResponseWriter, r *http.Request, app App) {
	http.SetCookie(w, &http.Cookie{
		Name:     utils.AdminSessionCookie,
		Value:    utils.NewAdminSession(app.AdminToken(), config.AdminSessionTTL),
		Path:     "/",
		MaxAge:   int(config.AdminSessionTTL / time.Second),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// HandleSellPost validates and publishes a new listing. The listing and its
// audit submission are written in one transaction; a rejected request writes
// nothing.
func HandleSellPost(w http.ResponseWriter, r *http.Request, app App) {
	logger := app.Logger().With("handler", "HandleSellPost")

	if err := r.ParseForm(); err != nil {
		logger.Warn("Form parsing error", "error", err)
		renderError(w, r, app, http.StatusBadRequest, "Ugyldig skjema.")
		return
	}
	if !authorizeAdmin(r, app) {
		logger.Warn("Listing submission with invalid admin token")
		renderError(w, r, app, http.StatusUnauthorized, "Ugyldig admin token.")
		return
	}

	input := models.ListingInput{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Location:    strings.TrimSpace(r.FormValue("location")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Phone:       strings.TrimSpace(r.FormValue("phone")),
		ImageURL:    strings.TrimSpace(r.FormValue("image_url")),
	}

	price, err := strconv.ParseInt(strings.TrimSpace(r.FormValue("priceNOK")), 10, 64)
	if err != nil || price < 0 {
		renderError(w, r, app, http.StatusBadRequest, "Ugyldig pris. Oppgi et ikke-negativt heltall i NOK.")
		return
	}
	input.PriceNOK = price

	if input.Title == "" {
		renderError(w, r, app, http.StatusBadRequest, "Tittel kan ikke være tom.")
		return
	}
	if len(input.Title) > config.MaxTitleLen || len(input.Location) > config.MaxLocationLen ||
		len(input.Phone) > config.MaxPhoneLen || len(input.Description) > config.MaxDescriptionLen {
		renderError(w, r, app, http.StatusBadRequest, "Et skjemafelt er for langt.")
		return
	}

	id, err := app.DB().CreateListing(r.Context(), input)
	if err != nil {
		logger.Error("Failed to store listing", "error", err)
		renderError(w, r, app, http.StatusInternalServerError, "Klarte ikke å lagre annonsen.")
		return
	}

	logger.Info("Listing published", "listing_id", id)
	http.Redirect(w, r, "/#kjop", http.StatusSeeOther)
}

// HandleRepairPost stores a repair inquiry and kicks off the best-effort
// notification. The confirmation never depends on the notification outcome.
func HandleRepairPost(w http.ResponseWriter, r *http.Request, app App) {
	logger := app.Logger().With("handler", "HandleRepairPost")

	if err := r.ParseForm(); err != nil {
		logger.Warn("Form parsing error", "error", err)
		renderError(w, r, app, http.StatusBadRequest, "Ugyldig skjema.")
		return
	}

	req := models.RepairRequest{
		Name:  strings.TrimSpace(r.FormValue("name")),
		Phone: strings.TrimSpace(r.FormValue("phone")),
		Boat:  strings.TrimSpace(r.FormValue("boat")),
		Issue: strings.TrimSpace(r.FormValue("issue")),
	}
	if len(req.Name) > config.MaxNameLen || len(req.Phone) > config.MaxPhoneLen ||
		len(req.Boat) > config.MaxTitleLen || len(req.Issue) > config.MaxDescriptionLen {
		renderError(w, r, app, http.StatusBadRequest, "Et skjemafelt er for langt.")
		return
	}

	id, err := app.DB().CreateRepairRequest(r.Context(), req)
	if err != nil {
		logger.Error("Failed to store repair request", "error", err)
		renderError(w, r, app, http.StatusInternalServerError, "Klarte ikke å lagre service-forespørselen.")
		return
	}
	req.ID = id

	dispatchRepairNotice(app, logger, req)

	render(w, r, app, http.StatusOK, "repair_done.html", map[string]interface{}{
		"Title": "Takk! – viwaco-boatd",
		"Phone": req.Phone,
	})
}

// dispatchRepairNotice sends the notification in the background. The request
// row is already committed; a failed send is logged and goes no further.
func dispatchRepairNotice(app App, logger *slog.Logger, req models.RepairRequest) {
	notifier := app.Notifier()
	if notifier == nil {
		logger.Debug("No notifier configured, skipping repair notice")
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), config.MailTimeout)
		defer cancel()
		if err := notifier.RepairRequestReceived(ctx, req); err != nil {
			logger.Error("Failed to send repair notification", "request_id", req.ID, "error", err)
		}
	}()
}

// HandleNewsPost publishes an announcement. Admin only.
func HandleNewsPost(w http.ResponseWriter, r *http.Request, app App) {
	logger := app.Logger().With("handler", "HandleNewsPost")

	if err := r.ParseForm(); err != nil {
		logger.Warn("Form parsing error", "error", err)
		renderError(w, r, app, http.StatusBadRequest, "Ugyldig skjema.")
		return
	}
	if !authorizeAdmin(r, app) {
		logger.Warn("News submission with invalid admin token")
		renderError(w, r, app, http.StatusUnauthorized, "Ugyldig admin token.")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	body := strings.TrimSpace(r.FormValue("body"))
	if title == "" || body == "" {
		renderError(w, r, app, http.StatusBadRequest, "Tittel og innhold kan ikke være tomme.")
		return
	}
	if len(title) > config.MaxTitleLen || len(body) > config.MaxBodyLen {
		renderError(w, r, app, http.StatusBadRequest, "Et skjemafelt er for langt.")
		return
	}

	id, err := app.DB().CreateNewsPost(r.Context(), title, body)
	if err != nil {
		logger.Error("Failed to store news post", "error", err)
		renderError(w, r, app, http.StatusInternalServerError, "Klarte ikke å lagre nyheten.")
		return
	}
	logger.Info("News post published", "news_id", id)

	if !hasAdminSession(r, app) {
		grantAdminSession(w, r, app)
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// HandleDeleteListing hard-deletes a listing. Admin only. Deleting an id
// that does not exist is a no-op; the audit submission always survives.
func HandleDeleteListing(w http.ResponseWriter, r *http.Request, app App) {
	logger := app.Logger().With("handler", "HandleDeleteListing")

	if err := r.ParseForm(); err != nil {
		logger.Warn("Form parsing error", "error", err)
		renderError(w, r, app, http.StatusBadRequest, "Ugyldig skjema.")
		return
	}
	if !authorizeAdmin(r, app) {
		logger.Warn("Listing deletion with invalid admin token")
		renderError(w, r, app, http.StatusUnauthorized, "Ugyldig admin token.")
		return
	}

	id, err := strconv.ParseInt(strings.TrimSpace(r.FormValue("id")), 10, 64)
	if err != nil {
		renderError(w, r, app, http.StatusBadRequest, "Ugyldig annonse-id.")
		return
	}

	if err := app.DB().DeleteListing(r.Context(), id); err != nil {
		logger.Error("Failed to delete listing", "listing_id", id, "error", err)
		renderError(w, r, app, http.StatusInternalServerError, "Klarte ikke å slette annonsen.")
		return
	}
	logger.Info("Listing deleted", "listing_id", id)

	if !hasAdminSession(r, app) {
		grantAdminSession(w, r, app)
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}
