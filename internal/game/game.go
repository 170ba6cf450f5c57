package game

import (
	"fmt"
	"sync"

	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/rules"
	"github.com/gofiber/fiber/v2/log"
)

type Options struct {
	Castling rules.CastlingPolicy
	Anarchy  bool
}

// The Game struct focuses on a single game's state and its observers
type Game struct {
	ID          string
	mu          sync.Mutex
	board       *model.Board
	engine      *rules.Engine
	toMove      model.Color
	isCheck     bool
	history     []model.Ply
	captured    CapturedPieces
	players     Players
	lastMove    *model.SimpleMove
	stale       bool
	version     uint64
	connections *Connections
}

type State struct {
	ID             string            `json:"id"`
	Version        uint64            `json:"version"`
	Board          model.Grid        `json:"board"`
	ToMove         model.Color       `json:"toMove"`
	IsCheck        bool              `json:"isCheck"`
	Anarchy        bool              `json:"anarchy"`
	Castling       string            `json:"castling"`
	MoveHistory    []model.Ply       `json:"moveHistory"`
	CapturedPieces CapturedPieces    `json:"capturedPieces"`
	Players        Players           `json:"players"`
	LastMove       *model.SimpleMove `json:"lastMove"`
	EnPassantPawn  *model.Position   `json:"enPassantPawn"`
}

func NewGame(id string, opts Options) *Game {
	g := &Game{
		ID:          id,
		board:       model.NewBoard(),
		engine:      rules.NewEngine(rules.Options{Castling: opts.Castling, Anarchy: opts.Anarchy}),
		toMove:      model.White,
		history:     make([]model.Ply, 0),
		captured:    newCapturedPieces(),
		connections: NewConnections(),
	}
	g.board.Observe(func(*model.Piece) { g.stale = true })
	return g
}

func (g *Game) AddPlayer(playerID string) (model.Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if color, ok := g.players.seat(playerID); ok {
		return color, nil
	}
	if g.players.White.ID == "" {
		g.players.White = ClientPlayer{ID: playerID, Color: model.White}
		log.Infow("player seated", "game", g.ID, "player", playerID, "color", model.White)
		return model.White, nil
	}
	if g.players.Black.ID == "" {
		g.players.Black = ClientPlayer{ID: playerID, Color: model.Black}
		log.Infow("player seated", "game", g.ID, "player", playerID, "color", model.Black)
		return model.Black, nil
	}
	return model.White, ErrGameFull
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.players.seat(playerID)
	return ok
}

func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state()
}

// state snapshots the game. Nothing in it aliases the live board.
func (g *Game) state() State {
	grid := g.board.Grid()
	s := State{
		ID:             g.ID,
		Version:        g.version,
		Board:          grid.Detached(),
		ToMove:         g.toMove,
		IsCheck:        g.isCheck,
		Anarchy:        g.engine.Anarchy(),
		Castling:       g.engine.Castling().String(),
		MoveHistory:    append(make([]model.Ply, 0, len(g.history)), g.history...),
		CapturedPieces: g.captured.clone(),
		Players:        g.players,
		LastMove:       g.lastMove,
	}
	if p := g.board.DoublePushPawn(); p != nil {
		pos := p.Position
		s.EnPassantPawn = &pos
	}
	return s
}

// LegalMoves lists where the piece on from may go. It does not depend on
// whose turn it is.
func (g *Game) LegalMoves(from model.Position) ([]model.Position, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !from.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrOutOfBounds, from)
	}
	piece := g.board.PieceAt(from)
	if piece == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoPiece, from)
	}
	return g.engine.LegalMoves(piece, g.board).Squares(), nil
}

func (g *Game) IsKingInCheck(color model.Color) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.engine.IsKingInCheck(g.board, color)
}

// MakeMove plays a move for playerID. Outside anarchy mode the player must be
// seated, on turn, and moving their own piece; the rules decide the rest.
func (g *Game) MakeMove(playerID string, move model.SimpleMove) (rules.Outcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	defer g.flush()

	if !move.From.Valid() || !move.To.Valid() {
		return rules.Outcome{}, fmt.Errorf("%w: %v-%v", ErrOutOfBounds, move.From, move.To)
	}
	color, seated := g.players.seat(playerID)
	if !seated {
		return rules.Outcome{}, ErrNotInGame
	}
	piece := g.board.PieceAt(move.From)
	if piece == nil {
		return rules.Outcome{}, fmt.Errorf("%w: %s", ErrNoPiece, move.From)
	}
	anarchy := g.engine.Anarchy()
	if !anarchy {
		if color != g.toMove {
			return rules.Outcome{}, ErrNotYourTurn
		}
		if piece.Color != color {
			return rules.Outcome{}, fmt.Errorf("%w: %s belongs to %s", ErrIllegalMove, move.From, piece.Color)
		}
	}

	before := *piece
	out := g.engine.AttemptMove(piece, move.To, g.board, nil)
	if out.Result == rules.Rejected {
		return out, fmt.Errorf("%w: %s-%s", ErrIllegalMove, move.From, move.To)
	}

	ply := model.Ply{
		Piece:          before,
		From:           out.From,
		To:             out.To,
		CastleRookMove: out.CastleRookMove,
		EnPassant:      out.EnPassant,
		Anarchy:        anarchy,
	}
	if out.CapturedPiece != nil {
		captured := *out.CapturedPiece
		ply.CapturedPiece = &captured
		g.captured.add(before.Color, captured)
	}
	g.history = append(g.history, ply)
	g.lastMove = &model.SimpleMove{From: out.From, To: out.To}
	g.toMove = before.Color.Opponent()
	g.isCheck = g.engine.IsKingInCheck(g.board, g.toMove)

	log.Debugw("move played", "game", g.ID, "piece", before.Type, "from", out.From, "to", out.To, "result", out.Result)
	return out, nil
}

// SetAnarchy switches rule enforcement off or on. Only seated players may
// flip it.
func (g *Game) SetAnarchy(playerID string, enabled bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.players.seat(playerID); !ok {
		return ErrNotInGame
	}
	g.engine.SetAnarchyMode(enabled)
	g.stale = true
	g.flush()
	log.Infow("anarchy mode changed", "game", g.ID, "player", playerID, "enabled", enabled)
	return nil
}

// Reset returns the game to the standard starting position with white to
// move. Seats are kept.
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.engine.ResetToStandardPosition(g.board)
	g.restart(model.White)
}

// ResetFromFEN replaces the position with the one described by fen.
func (g *Game) ResetFromFEN(fen string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	toMove, err := g.board.LoadFEN(fen)
	if err != nil {
		return err
	}
	g.restart(toMove)
	return nil
}

func (g *Game) restart(toMove model.Color) {
	g.toMove = toMove
	g.history = make([]model.Ply, 0)
	g.captured = newCapturedPieces()
	g.lastMove = nil
	g.isCheck = g.engine.IsKingInCheck(g.board, toMove)
	g.stale = true
	g.flush()
}

// flush pushes the state to every connection if the board changed since
// the last push. Pushes may land out of order; clients keep the highest
// version. Callers hold g.mu.
func (g *Game) flush() {
	if !g.stale {
		return
	}
	g.stale = false
	g.version++
	go g.broadcast(g.state())
}
