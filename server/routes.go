package server

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/myliquor/myliquor-server/handlers"
	"github.com/myliquor/myliquor-server/middlewares"
	"github.com/myliquor/myliquor-server/models"
	"github.com/myliquor/myliquor-server/utils"
)

type Server struct {
	chi.Router
}

// SetupRoutes provides all the routes that can be used
func SetupRoutes() *Server {
	router := chi.NewRouter()
	router.Route("/api", func(r chi.Router) {
		r.Use(middlewares.CommonMiddlewares()...)

		// health endpoint
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			utils.RespondJSON(w, 200, models.Response{Success: true})
		})

		// public routes
		r.Post("/admin/login", handlers.AdminLogin)
		r.Get("/site/info", handlers.GetStoreInfo)
		r.Get("/site/locations", handlers.GetLocations)
		r.Get("/sale/active", handlers.GetActiveSale)
		r.Get("/sale/{saleId}/print", handlers.PrintFlyer)
		r.Get("/events/{table}", handlers.StreamEvents)

		// private routes- admin only
		r.Route("/admin", func(admin chi.Router) {
			admin.Group(adminRoutes)
		})
	})
	return &Server{Router: router}
}

func (svc *Server) Run(port string) error {
	return http.ListenAndServe(port, svc)
}
