package web

import (
	"flaskr/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (app *App) NewRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.InstrumentHandler)

	r.Get("/", app.ShowEntriesHandler)
	r.Post("/add", app.AddEntryHandler)

	r.Get("/login", app.LoginHandler)
	r.Post("/login", app.LoginHandler)

	r.Get("/logout", app.LogoutHandler)

	r.Handle("/static/*", staticFileServer())
	r.Handle("/metrics", metrics.Handler())

	return r
}
