package controller

import (
	"errors"

	"github.com/benbeisheim/chessrules/internal/game"
	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, game.ErrGameFull), errors.Is(err, game.ErrNotYourTurn), errors.Is(err, service.ErrGameExists):
		return fiber.StatusConflict
	case errors.Is(err, game.ErrNotInGame):
		return fiber.StatusForbidden
	case errors.Is(err, game.ErrIllegalMove), errors.Is(err, game.ErrNoPiece):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, game.ErrOutOfBounds), errors.Is(err, model.ErrInvalidFEN):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func sendError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Errorw("request failed", "path", c.Path(), "error", err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
