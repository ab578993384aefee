package handlers

import (
	"arenarise-service/services"

	"github.com/gofiber/fiber/v2"
)

func SetupBattleRoutes(app *fiber.App, battleService *services.BattleService, moveService *services.MoveService, roomService *services.RoomService, stakeService *services.StakeService, rewardService *services.RewardService) {
	// Battle lifecycle
	app.Post("/battles/pve", battleService.CreatePVEBattle)
	app.Post("/battles", battleService.CreatePVPBattle)
	app.Get("/battles", battleService.GetBattles)
	app.Get("/battles/history", battleService.GetHistory)

	// Move resolution
	app.Post("/battles/moves", moveService.SubmitMove)
	app.Get("/battles/moves", moveService.ListMoves)

	// Rooms
	app.Post("/battles/rooms", roomService.CreateRoom)
	app.Get("/battles/rooms", roomService.ListOpenRooms)
	app.Post("/battles/rooms/:id/join", roomService.JoinRoom)
	app.Delete("/battles/rooms/:id", roomService.CancelRoom)

	// Stakes
	app.Post("/battles/stake", stakeService.RecordStake)
	app.Get("/battles/stake", stakeService.GetStake)

	// Rewards awaiting payout
	app.Get("/battles/rewards/pending", rewardService.GetPendingRewards)
}
