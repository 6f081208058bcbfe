package contract

import (
	"context"
	"math"
)

// JoinGame enrolls sender into a game. The entry fee is escrowed into
// the pool up front; joining stays open until the play window closes.
func (e *Engine) JoinGame(ctx context.Context, sender, admin, code string) error {
	g, err := e.loadGame(ctx, admin, code)
	if err != nil {
		return err
	}
	if g.Ended {
		return ErrGameEnded
	}
	now := e.clock.Now()
	if now >= g.EndTime {
		return ErrGameEnded
	}

	existing, err := e.store.Get(ctx, playerKey(admin, code, sender))
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAlreadyJoined
	}
	if g.TotalPlayers == math.MaxUint32 {
		return ErrPlayerCountOverflow
	}

	if g.EntryFee > 0 {
		if err := e.escrow.Collect(ctx, sender, poolKey(admin, code), g.EntryFee, g.Asset); err != nil {
			return err
		}
	}

	g.TotalPlayers++
	p := &PlayerRecord{Player: sender, JoinTime: now}

	if err := e.savePlayer(ctx, g, p); err != nil {
		return err
	}
	if err := e.saveGame(ctx, g); err != nil {
		return err
	}
	e.emitPlayerJoined(g, sender, now)
	return nil
}
