package contract

import "quizpot/sdk"

// ---------- Constants ----------

const (
	// MaxNameLength bounds the display name of a game.
	MaxNameLength = 32
	// MaxGameCodeLength bounds the organizer-scoped game code.
	MaxGameCodeLength = 16
	// MaxBps caps both the treasury fee and the organizer commission (10%).
	MaxBps = 1000
	// BpsDenominator converts basis points to a fraction.
	BpsDenominator = 10000
	// WinnerCeiling is the hard upper bound on declared winners, whatever
	// max_winners and the player count say.
	WinnerCeiling = 10
)

// DistributionMode selects how the prize pool is split across ranks.
type DistributionMode uint8

const (
	// EvenSplit pays floor(pool / N) to every winner; division dust is
	// discarded.
	EvenSplit DistributionMode = 0
	// Decay pays each rank half of what remains, dust to rank 1.
	Decay DistributionMode = 1
)

// ---------- Records ----------

// GameRecord is the per-game account. Addressed by (admin, code); the code
// is unique per organizer. TotalPot and PrizePool stay zero until end_game
// freezes the round.
type GameRecord struct {
	Admin          string
	Name           string
	Code           string
	Asset          sdk.Asset
	EntryFee       uint64
	CommissionBps  uint16
	StartTime      int64 // unix ms
	EndTime        int64 // unix ms
	MaxWinners     uint8
	AllAreWinners  bool
	Mode           DistributionMode
	TotalPlayers   uint32
	DonationAmount uint64
	AnswerRoot     [32]byte // merkle root of the answer set
	Ended          bool
	TotalPot       uint64
	PrizePool      uint64
}

// PlayerRecord tracks one player's participation in one game. FinishTime
// is zero until the player submits, then immutable.
type PlayerRecord struct {
	Player     string
	JoinTime   int64 // unix ms
	FinishTime int64 // unix ms; 0 = not submitted
	NumCorrect uint8
}

// Finished reports whether the player submitted answers.
func (p *PlayerRecord) Finished() bool { return p.FinishTime > 0 }

// WinnerEntry is one row of the claim ledger.
type WinnerEntry struct {
	Player      string
	Rank        uint8 // 1-based
	PrizeAmount uint64
	Claimed     bool
}

// WinnerSet is the per-game claim ledger, created exactly once at
// declaration. Entries are stored in rank order.
type WinnerSet struct {
	NumWinners uint8
	Entries    []WinnerEntry
}

// Entry returns the entry for player, or nil.
func (w *WinnerSet) Entry(player string) *WinnerEntry {
	for i := range w.Entries {
		if w.Entries[i].Player == player {
			return &w.Entries[i]
		}
	}
	return nil
}

// AllClaimed reports whether every prize has been paid out.
func (w *WinnerSet) AllClaimed() bool {
	for i := range w.Entries {
		if !w.Entries[i].Claimed {
			return false
		}
	}
	return true
}

// ProgramConfig holds the treasury destination and fee. Read by end_game;
// mutated only through the config operations.
type ProgramConfig struct {
	Treasury       string
	Authority      string
	TreasuryFeeBps uint16
}

// AnswerInput is one answer submission: the question's display order, the
// player's guess, the per-question salt, and the merkle proof tying the
// triple to the game's answer root.
type AnswerInput struct {
	DisplayOrder uint8
	Answer       string
	Salt         string
	Proof        [][32]byte
}

// expectedWinnerCount is the declared-winner count the game demands:
// min(max_winners, total_players, ceiling), or min(total_players, ceiling)
// when everyone wins.
func expectedWinnerCount(g *GameRecord) uint8 {
	n := g.TotalPlayers
	if n > WinnerCeiling {
		n = WinnerCeiling
	}
	if !g.AllAreWinners && uint32(g.MaxWinners) < n {
		n = uint32(g.MaxWinners)
	}
	return uint8(n)
}
