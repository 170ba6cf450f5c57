package main

import (
	"os"

	"github.com/benbeisheim/chessrules/internal/config"
	"github.com/benbeisheim/chessrules/internal/controller"
	"github.com/benbeisheim/chessrules/internal/game"
	"github.com/benbeisheim/chessrules/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalw("invalid configuration", "error", err)
	}
	log.SetLevel(cfg.LogLevel)

	app := fiber.New(fiber.Config{
		AppName: "chessrules",
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	gameManager := service.NewGameManager(game.Options{
		Castling: cfg.Castling,
		Anarchy:  cfg.Anarchy,
	})
	gameService := service.NewGameService(gameManager)

	controller.SetupRoutes(app, gameService, cfg.Origins())

	log.Infow("listening", "addr", cfg.Addr, "castling", cfg.Castling, "anarchy", cfg.Anarchy)
	log.Fatal(app.Listen(cfg.Addr))
}
