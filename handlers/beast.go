package handlers

import (
	"arenarise-service/services"

	"github.com/gofiber/fiber/v2"
)

func SetupBeastRoutes(app *fiber.App, beastService *services.BeastService) {
	app.Get("/beasts", beastService.ListBeasts)
	app.Get("/beasts/:id", beastService.GetBeast)
	app.Post("/beasts", beastService.RegisterBeast)
	app.Patch("/beasts/:id/activate", beastService.ActivateBeast)
	app.Post("/beasts/:id/moves", beastService.AssignMoves)
	app.Post("/beasts/:id/purchase", beastService.TransferBeast)

	app.Get("/moves", beastService.ListMoveCatalog)
}
