package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"arenarise-service/handlers"
	"arenarise-service/middleware"
	"arenarise-service/models"
	"arenarise-service/services"
	"arenarise-service/utils"
	"arenarise-service/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		AppName: "arenarise-service",
	})

	app.Use(middleware.ServiceAuthMiddleware())

	allowedOrigins := utils.LookupEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	originsList := strings.Split(allowedOrigins, ",")
	for i, origin := range originsList {
		originsList[i] = strings.TrimSpace(origin)
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(originsList, ","),
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Requested-With",
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Beast{},
		&models.Move{},
		&models.BeastMove{},
		&models.Battle{},
		&models.BattleMove{},
		&models.StakeTransaction{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if err := models.SeedMoveCatalog(db); err != nil {
		log.Fatal("failed to seed move catalog:", err)
	}

	// Optional 30s stats cache
	var rdb *redis.Client
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Printf("⚠️  Redis unreachable at %s, stats cache disabled: %v", redisAddr, err)
			rdb = nil
		}
	}

	// Optional trait-metadata archive
	if os.Getenv("CLOUDFLARE_ACCOUNT_ID") != "" {
		if err := utils.InitR2(); err != nil {
			log.Fatal("failed to initialize R2 client:", err)
		}
	} else {
		log.Println("⚠️  CLOUDFLARE_ACCOUNT_ID not set — trait metadata archive disabled")
	}

	rewardService := services.NewRewardService(db)
	battleService := services.NewBattleService(db)
	moveService := services.NewMoveService(db, rewardService)
	roomService := services.NewRoomService(db)
	stakeService := services.NewStakeService(db)
	beastService := services.NewBeastService(db)
	userService := services.NewUserService(db)
	statsService := services.NewStatsService(db, rdb)

	payoutBaseURL := os.Getenv("PAYOUT_BACKEND_URL")
	if payoutBaseURL == "" {
		log.Fatal("PAYOUT_BACKEND_URL environment variable not set")
	}
	payoutToken := os.Getenv("PAYOUT_SERVICE_TOKEN")
	if payoutToken == "" {
		log.Fatal("PAYOUT_SERVICE_TOKEN environment variable not set")
	}
	payoutClient := services.NewPayoutClient(services.PayoutConfig{
		BaseURL:      payoutBaseURL,
		ServiceToken: payoutToken,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	payoutWorker := workers.NewPayoutWorker(db, payoutClient)
	payoutWorker.Start(ctx)

	roomService.StartRoomSweeper()

	handlers.SetupBattleRoutes(app, battleService, moveService, roomService, stakeService, rewardService)
	handlers.SetupBeastRoutes(app, beastService)
	handlers.SetupPlatformRoutes(app, userService, statsService)

	port := utils.LookupEnv("PORT", "5300")
	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Println("✅ Payout worker running (every 30s)")
	log.Println("✅ Stale-room sweeper running (every 1m)")

	<-ctx.Done()
	log.Println("Shutting down server...")
}
