package contract

import (
	"context"

	"quizpot/sdk"
)

// InitGameParams carries everything a new game needs. The answer root is
// the merkle root the organizer committed to off-line.
type InitGameParams struct {
	Name           string
	Code           string
	Asset          sdk.Asset
	EntryFee       uint64
	CommissionBps  uint16
	StartTime      int64
	EndTime        int64
	MaxWinners     uint8
	AllAreWinners  bool
	Mode           DistributionMode
	DonationAmount uint64
	AnswerRoot     [32]byte
}

// InitGame creates a game for sender. The code must be unused for this
// organizer. A nonzero donation is escrowed into the game pool
// immediately.
func (e *Engine) InitGame(ctx context.Context, sender string, p InitGameParams) error {
	if len(p.Name) == 0 || len(p.Name) > MaxNameLength {
		return ErrNameLength
	}
	if len(p.Code) == 0 || len(p.Code) > MaxGameCodeLength {
		return ErrGameCodeLength
	}
	if p.CommissionBps > MaxBps {
		return ErrInvalidBasisPoints
	}
	if p.StartTime >= p.EndTime {
		return ErrInvalidTimeRange
	}
	if p.MaxWinners < 1 {
		return ErrMaxWinnersTooLow
	}

	existing, err := e.store.Get(ctx, gameKey(sender, p.Code))
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrGameExists
	}

	g := &GameRecord{
		Admin:          sender,
		Name:           p.Name,
		Code:           p.Code,
		Asset:          p.Asset,
		EntryFee:       p.EntryFee,
		CommissionBps:  p.CommissionBps,
		StartTime:      p.StartTime,
		EndTime:        p.EndTime,
		MaxWinners:     p.MaxWinners,
		AllAreWinners:  p.AllAreWinners,
		Mode:           p.Mode,
		DonationAmount: p.DonationAmount,
		AnswerRoot:     p.AnswerRoot,
	}

	if p.DonationAmount > 0 {
		if err := e.escrow.Collect(ctx, sender, poolKey(sender, p.Code), p.DonationAmount, g.Asset); err != nil {
			return err
		}
	}

	if err := e.saveGame(ctx, g); err != nil {
		return err
	}
	e.emitGameCreated(g)
	return nil
}
