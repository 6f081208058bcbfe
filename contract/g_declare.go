package contract

import (
	"context"
	"errors"
)

// DeclareWinners fixes the claim ledger for an ended game. The organizer
// submits players in rank order; the engine checks the list against the
// stored scores rather than trusting it. Declaration is one-shot.
//
// The required count is min(max_winners, total_players) capped at the
// winner ceiling, or min(total_players, ceiling) when everyone wins.
// Ordering must be number-correct descending with strictly earlier
// finish times breaking ties.
func (e *Engine) DeclareWinners(ctx context.Context, sender, admin, code string, winners []string) error {
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

	existing, err := e.store.Get(ctx, winnersKey(admin, code))
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrWinnersAlreadyDeclared
	}

	want := expectedWinnerCount(g)
	if len(winners) != int(want) || want == 0 {
		return ErrInvalidWinnerCount
	}

	seen := make(map[string]struct{}, len(winners))
	records := make([]*PlayerRecord, len(winners))
	for i, player := range winners {
		if _, dup := seen[player]; dup {
			return ErrDuplicateWinner
		}
		seen[player] = struct{}{}

		p, err := e.loadPlayer(ctx, g, player)
		if err != nil {
			if errors.Is(err, ErrPlayerNotFound) {
				return ErrWinnerNotPlayer
			}
			return err
		}
		if !p.Finished() {
			return ErrPlayerNotFinished
		}
		records[i] = p
	}

	for i := 1; i < len(records); i++ {
		prev, cur := records[i-1], records[i]
		if cur.NumCorrect > prev.NumCorrect {
			return ErrInvalidWinnerOrder
		}
		if cur.NumCorrect == prev.NumCorrect && cur.FinishTime <= prev.FinishTime {
			return ErrInvalidWinnerOrder
		}
	}

	prizes, err := CalculatePrizes(g.PrizePool, want, g.Mode)
	if err != nil {
		return err
	}

	w := &WinnerSet{NumWinners: want, Entries: make([]WinnerEntry, len(winners))}
	var totalPrizes uint64
	for i, player := range winners {
		w.Entries[i] = WinnerEntry{
			Player:      player,
			Rank:        uint8(i + 1),
			PrizeAmount: prizes[i],
		}
		totalPrizes += prizes[i]
	}

	if err := e.saveWinners(ctx, g, w); err != nil {
		return err
	}
	e.emitWinnersDeclared(g, w, totalPrizes)
	return nil
}
