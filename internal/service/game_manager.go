// service/game_manager.go
package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/benbeisheim/chessrules/internal/game"
	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/rules"
	"github.com/gofiber/fiber/v2/log"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

// GameManager owns every live game. Each game guards its own state, so the
// manager lock only covers the map.
type GameManager struct {
	games map[string]*game.Game
	opts  game.Options
	mu    sync.RWMutex
}

func NewGameManager(opts game.Options) *GameManager {
	return &GameManager{
		games: make(map[string]*game.Game),
		opts:  opts,
	}
}

func (gm *GameManager) CreateGame(gameID string) (*game.Game, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return nil, fmt.Errorf("%w: %s", ErrGameExists, gameID)
	}

	g := game.NewGame(gameID, gm.opts)
	gm.games[gameID] = g
	log.Infow("game created", "game", gameID, "castling", gm.opts.Castling, "anarchy", gm.opts.Anarchy)
	return g, nil
}

func (gm *GameManager) GetGame(gameID string) (*game.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	g, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return g, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.Color, error) {
	g, err := gm.GetGame(gameID)
	if err != nil {
		return model.White, err
	}
	return g.AddPlayer(playerID)
}

func (gm *GameManager) GetGameState(gameID string) (game.State, error) {
	g, err := gm.GetGame(gameID)
	if err != nil {
		return game.State{}, err
	}
	return g.State(), nil
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move model.SimpleMove) (rules.Outcome, error) {
	g, err := gm.GetGame(gameID)
	if err != nil {
		return rules.Outcome{}, err
	}
	return g.MakeMove(playerID, move)
}

func (gm *GameManager) LegalMoves(gameID string, from model.Position) ([]model.Position, error) {
	g, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return g.LegalMoves(from)
}

func (gm *GameManager) IsKingInCheck(gameID string, color model.Color) (bool, error) {
	g, err := gm.GetGame(gameID)
	if err != nil {
		return false, err
	}
	return g.IsKingInCheck(color), nil
}

// Reset restores the standard position, or the one in fen when it is set.
func (gm *GameManager) Reset(gameID string, fen string) error {
	g, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	if fen == "" {
		g.Reset()
		return nil
	}
	return g.ResetFromFEN(fen)
}

func (gm *GameManager) SetAnarchy(gameID string, playerID string, enabled bool) error {
	g, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return g.SetAnarchy(playerID, enabled)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn game.Sender) error {
	g, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return g.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn game.Sender) {
	g, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	g.UnregisterConnection(playerID, conn)
}
