package contract

// CalculatePrizes splits a prize pool across numWinners ranks.
//
// EvenSplit gives every rank floor(pool / N); the division remainder is
// deliberately discarded, so the sum can undershoot the pool by up to
// N-1 units.
//
// Decay walks the ranks in order, paying each floor(remaining / 2); once
// every rank is paid, whatever remains tops up rank 1. The sum always
// equals the pool.
func CalculatePrizes(pool uint64, numWinners uint8, mode DistributionMode) ([]uint64, error) {
	if numWinners == 0 {
		return nil, ErrInvalidWinnerCount
	}

	prizes := make([]uint64, numWinners)
	if pool == 0 {
		return prizes, nil
	}

	if mode == EvenSplit {
		per := pool / uint64(numWinners)
		for i := range prizes {
			prizes[i] = per
		}
		return prizes, nil
	}

	remaining := pool
	for i := range prizes {
		prize := remaining / 2
		prizes[i] = prize
		remaining -= prize
	}
	if remaining > 0 {
		topped, err := checkedAdd(prizes[0], remaining)
		if err != nil {
			return nil, err
		}
		prizes[0] = topped
	}
	return prizes, nil
}
