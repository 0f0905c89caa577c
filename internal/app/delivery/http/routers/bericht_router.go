package routers

import (
	"isik-bericht-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachBerichtRoutes(router chi.Router, berichtController *controllers.BerichtController) {
	router.Post("/", berichtController.CreateBericht)
	router.Post("/from-server", berichtController.CreateBerichtFromServer)
	router.Get("/{bericht_id}", berichtController.FindBerichtByID)
}
