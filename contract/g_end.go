package contract

import "context"

// EndGame settles a round. It freezes the pot, pays the treasury fee and
// the organizer commission out of the pool, and records the prize pool
// that declaration will later split. Ending early pulls the window's
// close to now, which locks out further joins and submissions.
func (e *Engine) EndGame(ctx context.Context, sender, admin, code string) error {
	if sender != admin {
		return ErrNotAdmin
	}
	g, err := e.loadGame(ctx, admin, code)
	if err != nil {
		return err
	}
	if g.Ended {
		return ErrGameEnded
	}

	now := e.clock.Now()
	if now < g.StartTime {
		return ErrGameNotStarted
	}
	if now < g.EndTime {
		g.EndTime = now
	}

	cfg, err := e.loadConfig(ctx)
	if err != nil {
		return err
	}

	entryTotal, err := checkedMul(g.EntryFee, uint64(g.TotalPlayers))
	if err != nil {
		return err
	}
	totalPot, err := checkedAdd(entryTotal, g.DonationAmount)
	if err != nil {
		return err
	}

	reserve := e.escrow.ReserveFloor(g.Asset)
	treasuryFee, commission, prizePool, perWinner, err := CalculatePayouts(
		totalPot, cfg.TreasuryFeeBps, g.CommissionBps,
		expectedWinnerCount(g), g.TotalPlayers,
		reserve, g.Asset.IsNative(),
	)
	if err != nil {
		return err
	}

	pool := poolKey(admin, code)
	if treasuryFee > 0 {
		if err := e.escrow.Transfer(ctx, pool, cfg.Treasury, treasuryFee, g.Asset); err != nil {
			return err
		}
	}
	if commission > 0 {
		if err := e.escrow.Transfer(ctx, pool, admin, commission, g.Asset); err != nil {
			return err
		}
	}

	g.Ended = true
	g.TotalPot = totalPot
	g.PrizePool = prizePool

	if err := e.saveGame(ctx, g); err != nil {
		return err
	}
	e.emitGameEnded(g, treasuryFee, commission, perWinner)
	return nil
}
