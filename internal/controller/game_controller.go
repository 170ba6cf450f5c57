package controller

import (
	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/service"
	"github.com/benbeisheim/chessrules/internal/ws"
	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(gameState)
}

// LegalMoves answers GET /:gameId/moves?x=&y=.
func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	from := model.Position{X: c.QueryInt("x", -1), Y: c.QueryInt("y", -1)}

	moves, err := gc.gameService.LegalMoves(c.Params("gameId"), from)
	if err != nil {
		return sendError(c, err)
	}
	if moves == nil {
		moves = []model.Position{}
	}
	return c.JSON(ws.LegalMovesPayload{From: from, Moves: moves})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	var move ws.MovePayload
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid move: " + err.Error(),
		})
	}

	out, err := gc.gameService.HandleMove(gameID, playerID, model.SimpleMove{From: move.From, To: move.To})
	if err != nil {
		return sendError(c, err)
	}
	state, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"result": out.Result.String(),
		"state":  state,
	})
}

// Reset takes an optional {"fen": "..."} body; without one the standard
// position is restored.
func (gc *GameController) Reset(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	var body ws.ResetPayload
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid reset request: " + err.Error(),
			})
		}
	}

	if err := gc.gameService.ResetGame(gameID, playerID, body.FEN); err != nil {
		return sendError(c, err)
	}
	return gc.GetGameState(c)
}

func (gc *GameController) SetAnarchy(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	var body ws.AnarchyPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid anarchy request: " + err.Error(),
		})
	}

	if err := gc.gameService.SetAnarchy(gameID, playerID, body.Enabled); err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"anarchy": body.Enabled,
	})
}

func (gc *GameController) IsKingInCheck(c *fiber.Ctx) error {
	color, ok := model.ParseColor(c.Params("color"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "color must be white or black",
		})
	}

	inCheck, err := gc.gameService.IsKingInCheck(c.Params("gameId"), color)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"color":   color,
		"inCheck": inCheck,
	})
}
