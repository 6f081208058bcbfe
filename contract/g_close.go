package contract

import (
	"context"
	"errors"
)

// CloseGame tears a settled game down. Every declared prize must have
// been claimed first; whatever is left in the pool (dust, the reserve
// floor) sweeps back to the organizer, then all game-scoped records are
// deleted.
func (e *Engine) CloseGame(ctx context.Context, sender, admin, code string) error {
	if sender != admin {
		return ErrNotAdmin
	}
	g, err := e.loadGame(ctx, admin, code)
	if err != nil {
		return err
	}
	if !g.Ended {
		return ErrGameNotEnded
	}

	w, err := e.loadWinners(ctx, g)
	if err != nil {
		return err
	}
	if !w.AllClaimed() {
		return ErrUnclaimedPrizes
	}

	pool := poolKey(admin, code)
	recovered, err := e.escrow.Balance(ctx, pool, g.Asset)
	if err != nil {
		return err
	}
	if recovered > 0 {
		if err := e.escrow.Transfer(ctx, pool, admin, recovered, g.Asset); err != nil {
			return err
		}
	}

	if err := e.store.Delete(ctx, winnersKey(admin, code)); err != nil {
		return err
	}
	if err := e.store.DeletePrefix(ctx, playerPrefix(admin, code)); err != nil {
		return err
	}
	if err := e.store.Delete(ctx, gameKey(admin, code)); err != nil {
		return err
	}
	e.emitGameClosed(g, recovered)
	return nil
}

// ClosePlayerAccount removes sender's player record once the play window
// has elapsed, whether or not the organizer has settled. A declared
// winner with an uncollected prize cannot close; everyone else can leave.
func (e *Engine) ClosePlayerAccount(ctx context.Context, sender, admin, code string) error {
	g, err := e.loadGame(ctx, admin, code)
	if err != nil {
		return err
	}
	if !g.Ended && e.clock.Now() < g.EndTime {
		return ErrGameNotEnded
	}
	if _, err := e.loadPlayer(ctx, g, sender); err != nil {
		return err
	}

	w, err := e.loadWinners(ctx, g)
	switch {
	case err == nil:
		if entry := w.Entry(sender); entry != nil && !entry.Claimed {
			return ErrCannotCloseWinner
		}
	case errors.Is(err, ErrWinnersNotDeclared):
		// no ledger yet, nothing can be owed
	default:
		return err
	}

	if err := e.store.Delete(ctx, playerKey(admin, code, sender)); err != nil {
		return err
	}
	e.emitPlayerAccountClosed(g, sender)
	return nil
}
