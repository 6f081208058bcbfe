package contract

import (
	"encoding/hex"
	"strconv"
)

// Event emission. Each lifecycle operation reports what happened through
// the host's EventSink as a type plus flat string attributes.

const (
	EventConfigInitialized   = "configInitialized"
	EventConfigUpdated       = "configUpdated"
	EventGameCreated         = "gameCreated"
	EventGameUpdated         = "gameUpdated"
	EventGameStarted         = "gameStarted"
	EventPlayerJoined        = "playerJoined"
	EventAnswersSubmitted    = "answersSubmitted"
	EventGameEnded           = "gameEnded"
	EventWinnersDeclared     = "winnersDeclared"
	EventPrizeClaimed        = "prizeClaimed"
	EventGameClosed          = "gameClosed"
	EventPlayerAccountClosed = "playerAccountClosed"
)

func u64str(v uint64) string { return strconv.FormatUint(v, 10) }
func i64str(v int64) string  { return strconv.FormatInt(v, 10) }

func (e *Engine) emit(eventType string, attributes map[string]string) {
	if e.events != nil {
		e.events.Emit(eventType, attributes)
	}
}

func gameAttrs(g *GameRecord) map[string]string {
	return map[string]string{
		"admin": g.Admin,
		"code":  g.Code,
	}
}

func (e *Engine) emitGameCreated(g *GameRecord) {
	a := gameAttrs(g)
	a["name"] = g.Name
	a["entryFee"] = u64str(g.EntryFee)
	a["asset"] = g.Asset.String()
	a["startTime"] = i64str(g.StartTime)
	a["endTime"] = i64str(g.EndTime)
	e.emit(EventGameCreated, a)
}

func (e *Engine) emitGameUpdated(g *GameRecord) {
	a := gameAttrs(g)
	a["name"] = g.Name
	a["entryFee"] = u64str(g.EntryFee)
	a["startTime"] = i64str(g.StartTime)
	a["endTime"] = i64str(g.EndTime)
	a["donation"] = u64str(g.DonationAmount)
	e.emit(EventGameUpdated, a)
}

func (e *Engine) emitGameStarted(g *GameRecord) {
	a := gameAttrs(g)
	a["startTime"] = i64str(g.StartTime)
	e.emit(EventGameStarted, a)
}

func (e *Engine) emitPlayerJoined(g *GameRecord, player string, joinTime int64) {
	a := gameAttrs(g)
	a["player"] = player
	a["joinTime"] = i64str(joinTime)
	a["totalPlayers"] = u64str(uint64(g.TotalPlayers))
	e.emit(EventPlayerJoined, a)
}

func (e *Engine) emitAnswersSubmitted(g *GameRecord, p *PlayerRecord) {
	a := gameAttrs(g)
	a["player"] = p.Player
	a["numCorrect"] = u64str(uint64(p.NumCorrect))
	a["finishTime"] = i64str(p.FinishTime)
	e.emit(EventAnswersSubmitted, a)
}

func (e *Engine) emitGameEnded(g *GameRecord, treasuryFee, commission, perWinner uint64) {
	a := gameAttrs(g)
	a["totalPot"] = u64str(g.TotalPot)
	a["prizePool"] = u64str(g.PrizePool)
	a["treasuryFee"] = u64str(treasuryFee)
	a["commission"] = u64str(commission)
	a["perWinner"] = u64str(perWinner)
	a["endTime"] = i64str(g.EndTime)
	e.emit(EventGameEnded, a)
}

func (e *Engine) emitWinnersDeclared(g *GameRecord, w *WinnerSet, totalPrizes uint64) {
	a := gameAttrs(g)
	a["numWinners"] = u64str(uint64(w.NumWinners))
	a["totalPrizes"] = u64str(totalPrizes)
	e.emit(EventWinnersDeclared, a)
}

func (e *Engine) emitPrizeClaimed(g *GameRecord, entry *WinnerEntry) {
	a := gameAttrs(g)
	a["player"] = entry.Player
	a["rank"] = u64str(uint64(entry.Rank))
	a["prizeAmount"] = u64str(entry.PrizeAmount)
	e.emit(EventPrizeClaimed, a)
}

func (e *Engine) emitGameClosed(g *GameRecord, recovered uint64) {
	a := gameAttrs(g)
	a["recovered"] = u64str(recovered)
	e.emit(EventGameClosed, a)
}

func (e *Engine) emitPlayerAccountClosed(g *GameRecord, player string) {
	a := gameAttrs(g)
	a["player"] = player
	e.emit(EventPlayerAccountClosed, a)
}

func (e *Engine) emitConfig(eventType string, c *ProgramConfig) {
	e.emit(eventType, map[string]string{
		"treasury":       c.Treasury,
		"authority":      c.Authority,
		"treasuryFeeBps": u64str(uint64(c.TreasuryFeeBps)),
	})
}

// RootHex renders an answer root for event payloads and gateway output.
func RootHex(root [32]byte) string { return hex.EncodeToString(root[:]) }
