package contract

import "context"

// ClaimPrize pays sender their declared prize out of the pool. The
// claimed flag flips exactly once, even for a zero prize, so the close
// gate can tell "nothing owed" from "not yet collected".
func (e *Engine) ClaimPrize(ctx context.Context, sender, admin, code string) error {
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
	entry := w.Entry(sender)
	if entry == nil {
		return ErrNotAWinner
	}
	if entry.Claimed {
		return ErrPrizeAlreadyClaimed
	}

	if entry.PrizeAmount > 0 {
		if err := e.escrow.Transfer(ctx, poolKey(admin, code), sender, entry.PrizeAmount, g.Asset); err != nil {
			return err
		}
	}

	entry.Claimed = true
	if err := e.saveWinners(ctx, g, w); err != nil {
		return err
	}
	e.emitPrizeClaimed(g, entry)
	return nil
}
