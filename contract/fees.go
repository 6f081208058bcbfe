package contract

import "math/bits"

// Pot arithmetic. All intermediates go through 128-bit or checked 64-bit
// math; an overflow is a fatal ErrNumericOverflow, never a silent wrap.

func checkedAdd(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, ErrNumericOverflow
	}
	return sum, nil
}

func checkedSub(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, ErrNumericOverflow
	}
	return diff, nil
}

func checkedMul(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, ErrNumericOverflow
	}
	return lo, nil
}

// bpsShare computes floor(amount × bps / 10000) through a 128-bit
// intermediate. The quotient always fits: bps < 10000 keeps it below
// amount.
func bpsShare(amount uint64, bps uint16) uint64 {
	hi, lo := bits.Mul64(amount, uint64(bps))
	q, _ := bits.Div64(hi, lo, BpsDenominator)
	return q
}

// distributablePot subtracts the reserve floor for native pots. A pot at
// or under the floor distributes nothing.
func distributablePot(totalPot, reserveFloor uint64, native bool) uint64 {
	if !native {
		return totalPot
	}
	if totalPot <= reserveFloor {
		return 0
	}
	return totalPot - reserveFloor
}

// CalculateFees returns the treasury fee and organizer commission taken
// from a pot. Both rates are capped at 1000 bps.
func CalculateFees(totalPot uint64, treasuryBps, commissionBps uint16, reserveFloor uint64, native bool) (treasuryFee, commission uint64, err error) {
	if treasuryBps > MaxBps || commissionBps > MaxBps {
		return 0, 0, ErrInvalidBasisPoints
	}
	pot := distributablePot(totalPot, reserveFloor, native)
	if pot == 0 {
		return 0, 0, nil
	}
	return bpsShare(pot, treasuryBps), bpsShare(pot, commissionBps), nil
}

// CalculatePayouts is the end-of-round split: treasury fee, commission,
// the prize pool left over, and the even per-winner amount for
// min(maxWinners, totalPlayers) winners.
func CalculatePayouts(totalPot uint64, treasuryBps, commissionBps uint16, maxWinners uint8, totalPlayers uint32, reserveFloor uint64, native bool) (treasuryFee, commission, prizePool, perWinner uint64, err error) {
	treasuryFee, commission, err = CalculateFees(totalPot, treasuryBps, commissionBps, reserveFloor, native)
	if err != nil {
		return 0, 0, 0, 0, err
	}

	pot := distributablePot(totalPot, reserveFloor, native)
	prizePool, err = checkedSub(pot, treasuryFee)
	if err == nil {
		prizePool, err = checkedSub(prizePool, commission)
	}
	if err != nil {
		return 0, 0, 0, 0, err
	}

	winners := uint64(totalPlayers)
	if uint64(maxWinners) < winners {
		winners = uint64(maxWinners)
	}
	if winners > 0 && prizePool > 0 {
		perWinner = prizePool / winners
	}
	return treasuryFee, commission, prizePool, perWinner, nil
}
