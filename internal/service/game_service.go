package service

import (
	"fmt"

	"github.com/benbeisheim/chessrules/internal/game"
	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/rules"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := uuid.New().String()

	if _, err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.Color, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) GetGameState(gameID string) (game.State, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) HandleMove(gameID string, playerID string, move model.SimpleMove) (rules.Outcome, error) {
	return gs.gameManager.MakeMove(gameID, playerID, move)
}

func (gs *GameService) LegalMoves(gameID string, from model.Position) ([]model.Position, error) {
	return gs.gameManager.LegalMoves(gameID, from)
}

func (gs *GameService) IsKingInCheck(gameID string, color model.Color) (bool, error) {
	return gs.gameManager.IsKingInCheck(gameID, color)
}

// ResetGame is open to seated players only.
func (gs *GameService) ResetGame(gameID string, playerID string, fen string) error {
	g, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	if !g.IsPlayerInGame(playerID) {
		return game.ErrNotInGame
	}
	return gs.gameManager.Reset(gameID, fen)
}

func (gs *GameService) SetAnarchy(gameID string, playerID string, enabled bool) error {
	return gs.gameManager.SetAnarchy(gameID, playerID, enabled)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn game.Sender) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn game.Sender) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}
