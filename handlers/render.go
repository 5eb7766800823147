// boatd/handlers/render.go

package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/christianErichsen/Baatkompany/config"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	templates  *template.Template
	nokPrinter *message.Printer
)

// LoadTemplates parses the embedded HTML templates and prepares the
// Norwegian number printer used for price formatting.
func LoadTemplates() error {
	if tag, err := language.Parse("nb-NO"); err == nil {
		nokPrinter = message.NewPrinter(tag)
	}

	funcMap := template.FuncMap{
		"formatNOK":  FormatNOK,
		"formatTime": func(t time.Time) string { return t.Format("02.01.2006 15:04") },
	}
	t, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	templates = t
	return nil
}

// FormatNOK renders a whole-kroner amount with Norwegian digit grouping and
// no fraction digits. When locale data is unavailable it falls back to a
// plain "<amount> NOK" string.
func FormatNOK(amount int64) string {
	if nokPrinter == nil {
		return fmt.Sprintf("%d NOK", amount)
	}
	return nokPrinter.Sprintf("kr %v", number.Decimal(amount))
}

// render executes the content template into a buffer and wraps it in the
// site layout. Every record field passes through html/template escaping.
func render(w http.ResponseWriter, r *http.Request, app App, status int, contentTmpl string, data map[string]interface{}) {
	if data == nil {
		data = make(map[string]interface{})
	}
	data["AppVersion"] = config.AppVersion
	data["Year"] = time.Now().Year()
	if _, ok := data["Title"]; !ok {
		data["Title"] = "viwaco-boatd"
	}

	contentBuf := new(bytes.Buffer)
	if err := templates.ExecuteTemplate(contentBuf, contentTmpl, data); err != nil {
		app.Logger().Error("Error rendering content template", "template", contentTmpl, "error", err)
		http.Error(w, "Failed to render page content", http.StatusInternalServerError)
		return
	}
	data["Content"] = template.HTML(contentBuf.String())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.ExecuteTemplate(w, "layout.html", data); err != nil {
		app.Logger().Error("Error rendering layout template", "error", err)
	}
}

// renderError shows the shared page shell with an inline error message.
func renderError(w http.ResponseWriter, r *http.Request, app App, status int, msg string) {
	render(w, r, app, status, "error.html", map[string]interface{}{
		"Title":   "Feil – viwaco-boatd",
		"Message": msg,
	})
}
