package web

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"flaskr/internal/metrics"
	"flaskr/internal/models"
	"flaskr/internal/utils"
)

// Layout is the data every page shares through layout.html.
type Layout struct {
	LoggedIn bool
	Flashes  []string
}

func (l *Layout) setLayout(v Layout) { *l = v }

type page interface {
	setLayout(Layout)
}

type ShowEntriesPageData struct {
	Layout
	Entries []models.Entry
}

type LoginPageData struct {
	Layout
	Error string
}

var errMissingField = errors.New("missing form field")

func (app *App) ShowEntriesHandler(w http.ResponseWriter, r *http.Request) {
	sess := app.session(r)

	entries, err := app.Entries.All(r.Context())
	if err != nil {
		slog.Error("Failed to load entries", "error", err)
		http.Error(w, "Failed to load entries", http.StatusInternalServerError)
		return
	}

	app.render(w, r, sess, "show_entries", &ShowEntriesPageData{Entries: entries})
}

func (app *App) AddEntryHandler(w http.ResponseWriter, r *http.Request) {
	sess := app.session(r)
	if !sess.LoggedIn {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	values, err := postFormValues(r, "title", "text")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	entry := models.Entry{Title: values[0], Text: values[1]}

	err = app.Entries.Append(r.Context(), entry)
	if err != nil {
		slog.Error("Failed to add entry", "error", err)
		http.Error(w, "Failed to add entry", http.StatusInternalServerError)
		return
	}
	metrics.RecordEntryAppended()
	slog.Info("Entry added", "title_length", len(entry.Title), "text_length", len(entry.Text))

	sess.Flash("New entry was successfully posted")
	app.redirect(w, r, sess, "/")
}

func (app *App) LoginHandler(w http.ResponseWriter, r *http.Request) {
	sess := app.session(r)
	page := &LoginPageData{}

	if r.Method == http.MethodPost {
		values, err := postFormValues(r, "username", "password")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		username, password := values[0], values[1]

		switch {
		case username != app.Config.Username:
			page.Error = "Invalid username"
			metrics.RecordLogin("invalid_username")
		case !utils.MatchPassword(app.Config.Password, password):
			page.Error = "Invalid password"
			metrics.RecordLogin("invalid_password")
		default:
			metrics.RecordLogin("success")
			sess.LogIn()
			sess.Flash("You were logged in")
			app.redirect(w, r, sess, "/")
			return
		}
		slog.Info("Rejected login", "username", username, "reason", page.Error)
	}

	app.render(w, r, sess, "login", page)
}

func (app *App) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	sess := app.session(r)
	sess.LogOut()
	sess.Flash("You were logged out")
	app.redirect(w, r, sess, "/")
}

// render drains the flash queue into the page, so each message is shown by
// exactly one response. The cookie is only rewritten once the template has
// executed, so a failed render leaves the queue for the next page.
func (app *App) render(w http.ResponseWriter, r *http.Request, sess *Session, name string, p page) {
	tmpl, ok := app.Pages[name]
	if !ok {
		slog.Error("Unknown page", "page", name)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	p.setLayout(Layout{LoggedIn: sess.LoggedIn, Flashes: sess.DrainFlashes()})

	var buf bytes.Buffer
	err := tmpl.ExecuteTemplate(&buf, "layout", p)
	if err != nil {
		slog.Error("Failed to render page", "page", name, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := sess.Save(w, r); err != nil {
		slog.Error("Failed to save session", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (app *App) redirect(w http.ResponseWriter, r *http.Request, sess *Session, to string) {
	if err := sess.Save(w, r); err != nil {
		slog.Error("Failed to save session", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// postFormValues returns the named fields of a form body. A field that is
// present but empty is accepted; one that is absent is not.
func postFormValues(r *http.Request, names ...string) ([]string, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	values := make([]string, len(names))
	for i, name := range names {
		v, ok := r.PostForm[name]
		if !ok || len(v) == 0 {
			return nil, fmt.Errorf("%w: %s", errMissingField, name)
		}
		values[i] = v[0]
	}
	return values, nil
}
