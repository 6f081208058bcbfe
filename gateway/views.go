package gateway

import (
	"encoding/hex"
	"fmt"

	"quizpot/contract"
)

// JSON views of the engine records. Amounts render as strings so
// javascript clients never round them.

type gameView struct {
	Admin          string `json:"admin"`
	Name           string `json:"name"`
	Code           string `json:"code"`
	Asset          string `json:"asset"`
	EntryFee       string `json:"entryFee"`
	CommissionBps  uint16 `json:"commissionBps"`
	StartTime      int64  `json:"startTime"`
	EndTime        int64  `json:"endTime"`
	MaxWinners     uint8  `json:"maxWinners"`
	AllAreWinners  bool   `json:"allAreWinners"`
	Mode           string `json:"mode"`
	TotalPlayers   uint32 `json:"totalPlayers"`
	DonationAmount string `json:"donationAmount"`
	AnswerRoot     string `json:"answerRoot"`
	Ended          bool   `json:"ended"`
	TotalPot       string `json:"totalPot"`
	PrizePool      string `json:"prizePool"`
}

func viewGame(g *contract.GameRecord) *gameView {
	mode := "even"
	if g.Mode == contract.Decay {
		mode = "decay"
	}
	return &gameView{
		Admin:          g.Admin,
		Name:           g.Name,
		Code:           g.Code,
		Asset:          g.Asset.String(),
		EntryFee:       fmt.Sprintf("%d", g.EntryFee),
		CommissionBps:  g.CommissionBps,
		StartTime:      g.StartTime,
		EndTime:        g.EndTime,
		MaxWinners:     g.MaxWinners,
		AllAreWinners:  g.AllAreWinners,
		Mode:           mode,
		TotalPlayers:   g.TotalPlayers,
		DonationAmount: fmt.Sprintf("%d", g.DonationAmount),
		AnswerRoot:     contract.RootHex(g.AnswerRoot),
		Ended:          g.Ended,
		TotalPot:       fmt.Sprintf("%d", g.TotalPot),
		PrizePool:      fmt.Sprintf("%d", g.PrizePool),
	}
}

type playerView struct {
	Player     string `json:"player"`
	JoinTime   int64  `json:"joinTime"`
	FinishTime int64  `json:"finishTime"`
	NumCorrect uint8  `json:"numCorrect"`
	Finished   bool   `json:"finished"`
}

func viewPlayer(p *contract.PlayerRecord) *playerView {
	return &playerView{
		Player:     p.Player,
		JoinTime:   p.JoinTime,
		FinishTime: p.FinishTime,
		NumCorrect: p.NumCorrect,
		Finished:   p.Finished(),
	}
}

type winnerView struct {
	Player      string `json:"player"`
	Rank        uint8  `json:"rank"`
	PrizeAmount string `json:"prizeAmount"`
	Claimed     bool   `json:"claimed"`
}

type winnersView struct {
	NumWinners uint8        `json:"numWinners"`
	Entries    []winnerView `json:"entries"`
}

func viewWinners(w *contract.WinnerSet) *winnersView {
	out := &winnersView{NumWinners: w.NumWinners, Entries: make([]winnerView, 0, len(w.Entries))}
	for _, e := range w.Entries {
		out.Entries = append(out.Entries, winnerView{
			Player:      e.Player,
			Rank:        e.Rank,
			PrizeAmount: fmt.Sprintf("%d", e.PrizeAmount),
			Claimed:     e.Claimed,
		})
	}
	return out
}

type configView struct {
	Treasury       string `json:"treasury"`
	Authority      string `json:"authority"`
	TreasuryFeeBps uint16 `json:"treasuryFeeBps"`
}

func viewConfig(c *contract.ProgramConfig) *configView {
	return &configView{Treasury: c.Treasury, Authority: c.Authority, TreasuryFeeBps: c.TreasuryFeeBps}
}

// parseHash decodes a 32-byte hex string (answer roots, proof nodes).
func parseHash(s string) ([32]byte, error) {
	var out [32]byte
	raw, err := hex.DecodeString(s)
	if err != nil {
		return out, fmt.Errorf("bad hash %q: %w", s, err)
	}
	if len(raw) != 32 {
		return out, fmt.Errorf("bad hash %q: got %d bytes, want 32", s, len(raw))
	}
	copy(out[:], raw)
	return out, nil
}
