package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/christianErichsen/Baatkompany/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getPath(handler http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestHandleHome(t *testing.T) {
	app := setupTestApp(t)
	handler := http.HandlerFunc(MakeHandler(app, HandleHome))

	t.Run("shows seeded listings", func(t *testing.T) {
		rr := getPath(handler, "/")

		require.Equal(t, http.StatusOK, rr.Code)
		body := rr.Body.String()
		assert.Contains(t, body, "Uttern 4602 (2004)")
		assert.Contains(t, body, "Askeladden 475 Freestyle (2011)")
		assert.Contains(t, body, "Båter til salgs")
	})

	t.Run("escapes hostile field values", func(t *testing.T) {
		_, err := app.db.CreateListing(context.Background(), models.ListingInput{
			Title: `<script>alert(1)</script>`, PriceNOK: 1, Location: "Oslo", Description: "d", Phone: "p",
		})
		require.NoError(t, err)

		rr := getPath(handler, "/")

		body := rr.Body.String()
		assert.NotContains(t, body, "<script>alert(1)</script>")
		assert.Contains(t, body, "&lt;script&gt;")
	})
}

func TestHandleListingsJSON(t *testing.T) {
	app := setupTestApp(t)
	handler := http.HandlerFunc(MakeHandler(app, HandleListingsJSON))

	t.Run("returns listings newest first", func(t *testing.T) {
		_, err := app.db.CreateListing(context.Background(), models.ListingInput{
			Title: "Nyeste båt", PriceNOK: 99000, Location: "Stavanger", Description: "d", Phone: "p",
		})
		require.NoError(t, err)

		rr := getPath(handler, "/listings.json")

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

		var listings []models.Listing
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listings))
		require.Len(t, listings, 3)
		assert.Equal(t, "Nyeste båt", listings[0].Title)
		assert.Equal(t, int64(99000), listings[0].PriceNOK)
	})

	t.Run("matches the HTML view", func(t *testing.T) {
		rr := getPath(handler, "/listings.json")
		var listings []models.Listing
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listings))

		home := getPath(http.HandlerFunc(MakeHandler(app, HandleHome)), "/")
		for _, l := range listings {
			assert.Contains(t, home.Body.String(), l.Title)
		}
	})

	t.Run("reports store failure as a JSON error", func(t *testing.T) {
		broken := setupTestApp(t)
		require.NoError(t, broken.db.DB.Close())

		rr := getPath(http.HandlerFunc(MakeHandler(broken, HandleListingsJSON)), "/listings.json")

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "Kunne ikke hente listings", resp["error"])
	})
}

func TestHandleAdmin(t *testing.T) {
	app := setupTestApp(t)
	handler := http.HandlerFunc(MakeHandler(app, HandleAdmin))

	t.Run("shows instructions without credentials", func(t *testing.T) {
		rr := getPath(handler, "/admin")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "?token=DITT_TOKEN")
	})

	t.Run("wrong token still shows instructions", func(t *testing.T) {
		rr := getPath(handler, "/admin?token=wrong")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "?token=DITT_TOKEN")
		assert.Empty(t, rr.Result().Cookies())
	})

	t.Run("correct token grants a session and strips the secret", func(t *testing.T) {
		rr := getPath(handler, "/admin?token="+testAdminToken)

		require.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/admin", rr.Header().Get("Location"))
		require.NotEmpty(t, rr.Result().Cookies(), "Expected a session cookie")
	})

	t.Run("valid session renders the dashboard", func(t *testing.T) {
		_, err := app.db.CreateRepairRequest(context.Background(), models.RepairRequest{
			Name: "Ola", Phone: "123", Boat: "Jolle", Issue: "Lekker",
		})
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/admin", nil)
		req.AddCookie(adminSessionCookie())
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		body := rr.Body.String()
		assert.Contains(t, body, "Serviceforespørsler (1)")
		assert.Contains(t, body, "Innsendte salgsdata")
		assert.Contains(t, body, "Ola")
	})
}

func TestRouterNotFound(t *testing.T) {
	app := setupTestApp(t)
	mux := SetupRouter(app)

	rr := getPath(mux, "/finnes-ikke")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Siden finnes ikke")
}

func TestFormatNOK(t *testing.T) {
	require.NoError(t, LoadTemplates())

	t.Run("locale-aware formatting", func(t *testing.T) {
		got := FormatNOK(45000)
		assert.True(t, strings.HasPrefix(got, "kr"), "got %q", got)
		assert.Contains(t, got, "45")
		assert.Contains(t, got, "000")
	})

	t.Run("fallback without locale data", func(t *testing.T) {
		saved := nokPrinter
		nokPrinter = nil
		defer func() { nokPrinter = saved }()

		assert.Equal(t, "45000 NOK", FormatNOK(45000))
	})
}
