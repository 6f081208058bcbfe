package sdk

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// In-memory collaborators. The engine's tests run entire game lifecycles
// against these; quizpotd can also use them for a stateless dev run.

// MemStore is a map-backed Store.
type MemStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string][]byte)}
}

func (s *MemStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *MemStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	s.data[key] = v
	return nil
}

func (s *MemStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *MemStore) DeletePrefix(_ context.Context, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.data {
		if strings.HasPrefix(k, prefix) {
			delete(s.data, k)
		}
	}
	return nil
}

// Len reports the number of stored records.
func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// MemEscrow is a ledger-backed Escrow. Every holder (player, pool,
// treasury, admin) is an account; Fund seeds balances before a scenario.
type MemEscrow struct {
	mu       sync.Mutex
	accounts map[string]uint64
	floor    uint64 // reserve floor for native pools
}

func NewMemEscrow() *MemEscrow {
	return &MemEscrow{accounts: make(map[string]uint64)}
}

// SetReserveFloor configures the minimum-balance requirement reported for
// the native asset.
func (e *MemEscrow) SetReserveFloor(floor uint64) { e.floor = floor }

func acctKey(holder string, asset Asset) string { return holder + "/" + asset.String() }

// Fund credits a holder's account.
func (e *MemEscrow) Fund(holder string, amount uint64, asset Asset) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.accounts[acctKey(holder, asset)] += amount
}

func (e *MemEscrow) Collect(_ context.Context, payer, pool string, amount uint64, asset Asset) error {
	return e.move(payer, pool, amount, asset)
}

func (e *MemEscrow) Transfer(_ context.Context, pool, payee string, amount uint64, asset Asset) error {
	return e.move(pool, payee, amount, asset)
}

func (e *MemEscrow) move(from, to string, amount uint64, asset Asset) error {
	if amount == 0 {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	fk, tk := acctKey(from, asset), acctKey(to, asset)
	if e.accounts[fk] < amount {
		return fmt.Errorf("escrow: %s holds %d %s, needs %d", from, e.accounts[fk], asset, amount)
	}
	e.accounts[fk] -= amount
	e.accounts[tk] += amount
	return nil
}

func (e *MemEscrow) Balance(_ context.Context, holder string, asset Asset) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.accounts[acctKey(holder, asset)], nil
}

func (e *MemEscrow) ReserveFloor(asset Asset) uint64 {
	if asset.IsNative() {
		return e.floor
	}
	return 0
}

// FixedClock is a settable Clock for tests.
type FixedClock struct {
	mu sync.Mutex
	ms int64
}

func NewFixedClock(ms int64) *FixedClock { return &FixedClock{ms: ms} }

func (c *FixedClock) Now() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ms
}

// Set moves the clock to an absolute unix-ms instant.
func (c *FixedClock) Set(ms int64) {
	c.mu.Lock()
	c.ms = ms
	c.mu.Unlock()
}

// Advance moves the clock forward by d milliseconds.
func (c *FixedClock) Advance(d int64) {
	c.mu.Lock()
	c.ms += d
	c.mu.Unlock()
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() int64 { return time.Now().UnixMilli() }

// CapturedEvent is one emitted event as seen by CaptureSink.
type CapturedEvent struct {
	Type       string
	Attributes map[string]string
}

// CaptureSink records emitted events in order.
type CaptureSink struct {
	mu     sync.Mutex
	events []CapturedEvent
}

func NewCaptureSink() *CaptureSink { return &CaptureSink{} }

func (s *CaptureSink) Emit(eventType string, attributes map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, CapturedEvent{Type: eventType, Attributes: attributes})
}

// Events returns a snapshot of everything emitted so far.
func (s *CaptureSink) Events() []CapturedEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CapturedEvent, len(s.events))
	copy(out, s.events)
	return out
}

// Last returns the most recent event of the given type, or nil.
func (s *CaptureSink) Last(eventType string) *CapturedEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.events) - 1; i >= 0; i-- {
		if s.events[i].Type == eventType {
			ev := s.events[i]
			return &ev
		}
	}
	return nil
}
