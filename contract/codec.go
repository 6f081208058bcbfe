package contract

import (
	"encoding/binary"

	"quizpot/sdk"
)

// Binary record codecs. Records are stored as compact length-prefixed
// blobs with a leading version byte; decoding checks bounds at every read
// and rejects trailing bytes.

// codecVersion increments when the storage encoding changes.
const codecVersion uint8 = 1

// ---------- Writer helpers ----------

func appendU16(out []byte, v uint16) []byte {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	return append(out, tmp[:]...)
}

func appendU32(out []byte, v uint32) []byte {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	return append(out, tmp[:]...)
}

func appendU64(out []byte, v uint64) []byte {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	return append(out, tmp[:]...)
}

func appendI64(out []byte, v int64) []byte { return appendU64(out, uint64(v)) }

func appendBool(out []byte, v bool) []byte {
	if v {
		return append(out, 1)
	}
	return append(out, 0)
}

// appendString8 writes a u8 length prefix then the bytes. Callers validate
// lengths before encoding; the cap here is a codec invariant, not input
// validation.
func appendString8(out []byte, s string) []byte {
	if len(s) > 255 {
		s = s[:255]
	}
	out = append(out, byte(len(s)))
	return append(out, s...)
}

func appendString16(out []byte, s string) []byte {
	if len(s) > 65535 {
		s = s[:65535]
	}
	out = appendU16(out, uint16(len(s)))
	return append(out, s...)
}

// ---------- Reader ----------

// rd is a bounds-checked big-endian reader over a record blob. The first
// out-of-range read sets a sticky error; later reads return zero values.
type rd struct {
	b   []byte
	i   int
	err error
}

func (r *rd) need(n int) bool {
	if r.err != nil {
		return false
	}
	if r.i+n > len(r.b) {
		r.err = ErrCorruptRecord
		return false
	}
	return true
}

func (r *rd) u8() byte {
	if !r.need(1) {
		return 0
	}
	v := r.b[r.i]
	r.i++
	return v
}

func (r *rd) u16() uint16 {
	if !r.need(2) {
		return 0
	}
	v := binary.BigEndian.Uint16(r.b[r.i : r.i+2])
	r.i += 2
	return v
}

func (r *rd) u32() uint32 {
	if !r.need(4) {
		return 0
	}
	v := binary.BigEndian.Uint32(r.b[r.i : r.i+4])
	r.i += 4
	return v
}

func (r *rd) u64() uint64 {
	if !r.need(8) {
		return 0
	}
	v := binary.BigEndian.Uint64(r.b[r.i : r.i+8])
	r.i += 8
	return v
}

func (r *rd) i64() int64 { return int64(r.u64()) }

func (r *rd) boolean() bool { return r.u8() == 1 }

func (r *rd) bytes(n int) []byte {
	if !r.need(n) {
		return nil
	}
	v := r.b[r.i : r.i+n]
	r.i += n
	return v
}

func (r *rd) str8() string  { return string(r.bytes(int(r.u8()))) }
func (r *rd) str16() string { return string(r.bytes(int(r.u16()))) }

func (r *rd) hash32() (out [32]byte) {
	copy(out[:], r.bytes(32))
	return out
}

// mustEnd verifies the reader consumed the blob exactly.
func (r *rd) mustEnd() error {
	if r.err != nil {
		return r.err
	}
	if r.i != len(r.b) {
		return ErrCorruptRecord
	}
	return nil
}

func checkVersion(r *rd) {
	if r.u8() != codecVersion && r.err == nil {
		r.err = ErrCorruptRecord
	}
}

// ---------- GameRecord ----------

// Game flags packed into one byte:
//
//	bit 0: Ended
//	bit 1: AllAreWinners
//	bit 2: Mode (0 even, 1 decay)
func encodeGame(g *GameRecord) []byte {
	out := make([]byte, 0, 128+len(g.Admin)+len(g.Name)+len(g.Code))

	var flags byte
	if g.Ended {
		flags |= 1
	}
	if g.AllAreWinners {
		flags |= 1 << 1
	}
	if g.Mode == Decay {
		flags |= 1 << 2
	}

	out = append(out, codecVersion, flags)
	out = appendString16(out, g.Admin)
	out = appendString8(out, g.Name)
	out = appendString8(out, g.Code)
	out = append(out, byte(g.Asset.Kind))
	out = appendString16(out, g.Asset.Mint)
	out = appendU64(out, g.EntryFee)
	out = appendU16(out, g.CommissionBps)
	out = appendI64(out, g.StartTime)
	out = appendI64(out, g.EndTime)
	out = append(out, g.MaxWinners)
	out = appendU32(out, g.TotalPlayers)
	out = appendU64(out, g.DonationAmount)
	out = append(out, g.AnswerRoot[:]...)
	out = appendU64(out, g.TotalPot)
	out = appendU64(out, g.PrizePool)
	return out
}

func decodeGame(b []byte) (*GameRecord, error) {
	r := &rd{b: b}
	checkVersion(r)
	flags := r.u8()

	g := &GameRecord{
		Ended:         flags&1 != 0,
		AllAreWinners: flags&(1<<1) != 0,
	}
	if flags&(1<<2) != 0 {
		g.Mode = Decay
	}
	g.Admin = r.str16()
	g.Name = r.str8()
	g.Code = r.str8()
	g.Asset = sdk.Asset{Kind: sdk.AssetKind(r.u8())}
	g.Asset.Mint = r.str16()
	g.EntryFee = r.u64()
	g.CommissionBps = r.u16()
	g.StartTime = r.i64()
	g.EndTime = r.i64()
	g.MaxWinners = r.u8()
	g.TotalPlayers = r.u32()
	g.DonationAmount = r.u64()
	g.AnswerRoot = r.hash32()
	g.TotalPot = r.u64()
	g.PrizePool = r.u64()

	if err := r.mustEnd(); err != nil {
		return nil, err
	}
	return g, nil
}

// ---------- PlayerRecord ----------

func encodePlayer(p *PlayerRecord) []byte {
	out := make([]byte, 0, 32+len(p.Player))
	out = append(out, codecVersion)
	out = appendString16(out, p.Player)
	out = appendI64(out, p.JoinTime)
	out = appendI64(out, p.FinishTime)
	out = append(out, p.NumCorrect)
	return out
}

func decodePlayer(b []byte) (*PlayerRecord, error) {
	r := &rd{b: b}
	checkVersion(r)
	p := &PlayerRecord{}
	p.Player = r.str16()
	p.JoinTime = r.i64()
	p.FinishTime = r.i64()
	p.NumCorrect = r.u8()
	if err := r.mustEnd(); err != nil {
		return nil, err
	}
	return p, nil
}

// ---------- WinnerSet ----------

func encodeWinners(w *WinnerSet) []byte {
	out := make([]byte, 0, 2+len(w.Entries)*48)
	out = append(out, codecVersion, w.NumWinners)
	for i := range w.Entries {
		e := &w.Entries[i]
		out = appendString16(out, e.Player)
		out = append(out, e.Rank)
		out = appendU64(out, e.PrizeAmount)
		out = appendBool(out, e.Claimed)
	}
	return out
}

func decodeWinners(b []byte) (*WinnerSet, error) {
	r := &rd{b: b}
	checkVersion(r)
	w := &WinnerSet{NumWinners: r.u8()}
	w.Entries = make([]WinnerEntry, 0, w.NumWinners)
	for i := 0; i < int(w.NumWinners) && r.err == nil; i++ {
		var e WinnerEntry
		e.Player = r.str16()
		e.Rank = r.u8()
		e.PrizeAmount = r.u64()
		e.Claimed = r.boolean()
		w.Entries = append(w.Entries, e)
	}
	if err := r.mustEnd(); err != nil {
		return nil, err
	}
	return w, nil
}

// ---------- ProgramConfig ----------

func encodeConfig(c *ProgramConfig) []byte {
	out := make([]byte, 0, 8+len(c.Treasury)+len(c.Authority))
	out = append(out, codecVersion)
	out = appendString16(out, c.Treasury)
	out = appendString16(out, c.Authority)
	out = appendU16(out, c.TreasuryFeeBps)
	return out
}

func decodeConfig(b []byte) (*ProgramConfig, error) {
	r := &rd{b: b}
	checkVersion(r)
	c := &ProgramConfig{}
	c.Treasury = r.str16()
	c.Authority = r.str16()
	c.TreasuryFeeBps = r.u16()
	if err := r.mustEnd(); err != nil {
		return nil, err
	}
	return c, nil
}
