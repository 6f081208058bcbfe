package contract

import "context"

// UpdateGameParams carries optional replacements; nil fields keep the
// stored value.
type UpdateGameParams struct {
	Name           *string
	EntryFee       *uint64
	CommissionBps  *uint16
	StartTime      *int64
	EndTime        *int64
	MaxWinners     *uint8
	AnswerRoot     *[32]byte
	DonationAmount *uint64
}

// UpdateGame reshapes a game before it starts. Changing the donation
// settles the difference against the pool immediately, in whichever
// direction it moved.
func (e *Engine) UpdateGame(ctx context.Context, sender, admin, code string, p UpdateGameParams) error {
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
	if e.clock.Now() >= g.StartTime {
		return ErrGameStarted
	}

	if p.Name != nil {
		if len(*p.Name) == 0 || len(*p.Name) > MaxNameLength {
			return ErrNameLength
		}
		g.Name = *p.Name
	}
	if p.EntryFee != nil {
		// fees already escrowed would no longer match entry_fee × players
		if *p.EntryFee != g.EntryFee && g.TotalPlayers > 0 {
			return ErrEntryFeeLocked
		}
		g.EntryFee = *p.EntryFee
	}
	if p.CommissionBps != nil {
		if *p.CommissionBps > MaxBps {
			return ErrInvalidBasisPoints
		}
		g.CommissionBps = *p.CommissionBps
	}
	if p.StartTime != nil {
		g.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		g.EndTime = *p.EndTime
	}
	if g.StartTime >= g.EndTime {
		return ErrInvalidTimeRange
	}
	if p.MaxWinners != nil {
		if *p.MaxWinners < 1 {
			return ErrMaxWinnersTooLow
		}
		g.MaxWinners = *p.MaxWinners
	}
	if p.AnswerRoot != nil {
		g.AnswerRoot = *p.AnswerRoot
	}

	if p.DonationAmount != nil && *p.DonationAmount != g.DonationAmount {
		switch newDonation := *p.DonationAmount; {
		case newDonation > g.DonationAmount:
			if err := e.escrow.Collect(ctx, admin, poolKey(admin, code), newDonation-g.DonationAmount, g.Asset); err != nil {
				return err
			}
		default:
			if err := e.escrow.Transfer(ctx, poolKey(admin, code), admin, g.DonationAmount-newDonation, g.Asset); err != nil {
				return err
			}
		}
		g.DonationAmount = *p.DonationAmount
	}

	if err := e.saveGame(ctx, g); err != nil {
		return err
	}
	e.emitGameUpdated(g)
	return nil
}
