package handlers

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func SetupRouter(app App) *chi.Mux {
	mux := chi.NewRouter()

	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(NewStructuredLogger(app.Logger()))
	mux.Use(middleware.Recoverer)

	// Public pages
	mux.Get("/", MakeHandler(app, HandleHome))
	mux.Get("/listings.json", MakeHandler(app, HandleListingsJSON))
	mux.Get("/sell", MakeHandler(app, HandleSellPage))
	mux.Get("/repair", MakeHandler(app, HandleRepairPage))
	mux.Get("/news", MakeHandler(app, HandleNewsPage))

	// Form actions
	mux.Post("/sell", MakeHandler(app, HandleSellPost))
	mux.Post("/repair", MakeHandler(app, HandleRepairPost))
	mux.Post("/news", MakeHandler(app, HandleNewsPost))
	mux.Post("/delete-listing", MakeHandler(app, HandleDeleteListing))

	// Admin dashboard
	mux.Get("/admin", MakeHandler(app, HandleAdmin))

	mux.NotFound(MakeHandler(app, HandleNotFound))

	return mux
}
