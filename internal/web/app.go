package web

import (
	"html/template"

	"flaskr/internal/config"
	"flaskr/internal/storage"

	"github.com/gorilla/sessions"
)

// App carries everything a handler needs. It is built once in main and
// never changed afterwards.
type App struct {
	Entries storage.EntryList
	Store   sessions.Store
	Pages   map[string]*template.Template
	Config  config.Config
}
