package contract

import (
	"context"
	"fmt"

	"quizpot/sdk"
)

// Engine runs the game lifecycle against the host collaborators. Every
// operation is a single atomically-applied unit: all validations pass
// before any record is written, and a collaborator failure aborts the
// whole call. The engine holds no locks; the host serializes conflicting
// writes to the same records.
type Engine struct {
	store  sdk.Store
	escrow sdk.Escrow
	clock  sdk.Clock
	events sdk.EventSink
}

func New(store sdk.Store, escrow sdk.Escrow, clock sdk.Clock, events sdk.EventSink) *Engine {
	return &Engine{store: store, escrow: escrow, clock: clock, events: events}
}

// ---------- Record access ----------

func (e *Engine) loadGame(ctx context.Context, admin, code string) (*GameRecord, error) {
	raw, err := e.store.Get(ctx, gameKey(admin, code))
	if err != nil {
		return nil, fmt.Errorf("load game: %w", err)
	}
	if raw == nil {
		return nil, ErrGameNotFound
	}
	return decodeGame(raw)
}

func (e *Engine) saveGame(ctx context.Context, g *GameRecord) error {
	if err := e.store.Set(ctx, gameKey(g.Admin, g.Code), encodeGame(g)); err != nil {
		return fmt.Errorf("save game: %w", err)
	}
	return nil
}

func (e *Engine) loadPlayer(ctx context.Context, g *GameRecord, player string) (*PlayerRecord, error) {
	raw, err := e.store.Get(ctx, playerKey(g.Admin, g.Code, player))
	if err != nil {
		return nil, fmt.Errorf("load player: %w", err)
	}
	if raw == nil {
		return nil, ErrPlayerNotFound
	}
	return decodePlayer(raw)
}

func (e *Engine) savePlayer(ctx context.Context, g *GameRecord, p *PlayerRecord) error {
	if err := e.store.Set(ctx, playerKey(g.Admin, g.Code, p.Player), encodePlayer(p)); err != nil {
		return fmt.Errorf("save player: %w", err)
	}
	return nil
}

// loadWinners returns ErrWinnersNotDeclared when no set exists yet.
func (e *Engine) loadWinners(ctx context.Context, g *GameRecord) (*WinnerSet, error) {
	raw, err := e.store.Get(ctx, winnersKey(g.Admin, g.Code))
	if err != nil {
		return nil, fmt.Errorf("load winners: %w", err)
	}
	if raw == nil {
		return nil, ErrWinnersNotDeclared
	}
	return decodeWinners(raw)
}

func (e *Engine) saveWinners(ctx context.Context, g *GameRecord, w *WinnerSet) error {
	if err := e.store.Set(ctx, winnersKey(g.Admin, g.Code), encodeWinners(w)); err != nil {
		return fmt.Errorf("save winners: %w", err)
	}
	return nil
}

func (e *Engine) loadConfig(ctx context.Context) (*ProgramConfig, error) {
	raw, err := e.store.Get(ctx, configKey)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if raw == nil {
		return nil, ErrConfigNotFound
	}
	return decodeConfig(raw)
}

func (e *Engine) saveConfig(ctx context.Context, c *ProgramConfig) error {
	if err := e.store.Set(ctx, configKey, encodeConfig(c)); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

// ---------- Queries ----------

// GetGame returns a game record for display.
func (e *Engine) GetGame(ctx context.Context, admin, code string) (*GameRecord, error) {
	return e.loadGame(ctx, admin, code)
}

// GetPlayer returns a player's record for a game.
func (e *Engine) GetPlayer(ctx context.Context, admin, code, player string) (*PlayerRecord, error) {
	g, err := e.loadGame(ctx, admin, code)
	if err != nil {
		return nil, err
	}
	return e.loadPlayer(ctx, g, player)
}

// GetWinners returns the declared winner set for a game.
func (e *Engine) GetWinners(ctx context.Context, admin, code string) (*WinnerSet, error) {
	g, err := e.loadGame(ctx, admin, code)
	if err != nil {
		return nil, err
	}
	return e.loadWinners(ctx, g)
}

// GetConfig returns the program config.
func (e *Engine) GetConfig(ctx context.Context) (*ProgramConfig, error) {
	return e.loadConfig(ctx)
}
