// Package sdk defines the boundary between the game engine and its host
// environment: addressable record storage, fund escrow, the network clock
// and the event log. The engine only ever talks to these interfaces; the
// host (in-memory, Postgres, or a chain runtime) decides the physical side.
package sdk

import (
	"context"
	"strings"
)

// AssetKind tags the currency family a game escrows.
type AssetKind uint8

const (
	// Native is the chain's base currency. Native pools carry a reserve
	// floor (minimum balance) imposed by the host storage system.
	Native AssetKind = 0
	// Fungible is a token identified by its mint id. No reserve floor.
	Fungible AssetKind = 1
)

// Asset is a tagged currency reference. Mint is set only for fungible
// assets.
type Asset struct {
	Kind AssetKind
	Mint string
}

// NativeAsset returns the base-currency asset.
func NativeAsset() Asset { return Asset{Kind: Native} }

// FungibleAsset returns a token asset for the given mint id.
func FungibleAsset(mint string) Asset { return Asset{Kind: Fungible, Mint: mint} }

func (a Asset) IsNative() bool { return a.Kind == Native }

func (a Asset) String() string {
	if a.Kind == Native {
		return "native"
	}
	return "token:" + a.Mint
}

// ParseAsset is the inverse of String. Unknown forms parse as a fungible
// asset with the raw string as mint, matching how token ids arrive over
// the wire.
func ParseAsset(s string) Asset {
	if s == "native" || s == "" {
		return NativeAsset()
	}
	return FungibleAsset(strings.TrimPrefix(s, "token:"))
}

// Store is the addressable-record collaborator. Keys are opaque strings
// owned by the engine; a missing key reads as (nil, nil).
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// Escrow is the custody collaborator. Pools are named accounts holding
// entry fees and donations pending distribution. Every call is atomic
// with the record mutation it accompanies; a returned error fails the
// whole operation.
type Escrow interface {
	// Collect moves amount from payer into pool.
	Collect(ctx context.Context, payer, pool string, amount uint64, asset Asset) error
	// Transfer moves amount out of pool to payee.
	Transfer(ctx context.Context, pool, payee string, amount uint64, asset Asset) error
	// Balance reports the distributable funds currently held by pool.
	Balance(ctx context.Context, pool string, asset Asset) (uint64, error)
	// ReserveFloor is the minimum balance a pool of this asset must keep.
	// Zero for everything except the native asset.
	ReserveFloor(asset Asset) uint64
}

// Clock supplies network-agreed time in unix milliseconds. Caller-supplied
// times are bounds-checked against it but never substituted for it.
type Clock interface {
	Now() int64
}

// EventSink receives the engine's emitted events.
type EventSink interface {
	Emit(eventType string, attributes map[string]string)
}
