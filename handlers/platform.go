package handlers

import (
	"arenarise-service/services"

	"github.com/gofiber/fiber/v2"
)

func SetupPlatformRoutes(app *fiber.App, userService *services.UserService, statsService *services.StatsService) {
	app.Post("/users/connect", userService.ConnectWallet)
	app.Get("/users/:wallet", userService.GetUser)

	app.Get("/stats", statsService.GetStats)
}
