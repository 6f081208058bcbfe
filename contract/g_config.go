package contract

import "context"

// Program config operations. The config is a singleton record holding the
// treasury destination and fee; end_game reads it on every settlement.

// InitConfig creates the program config. One-shot: a second call fails.
func (e *Engine) InitConfig(ctx context.Context, sender, treasury, authority string, treasuryFeeBps uint16) error {
	if treasury == "" || authority == "" {
		return ErrBlankAddress
	}
	if treasuryFeeBps > MaxBps {
		return ErrInvalidBasisPoints
	}

	raw, err := e.store.Get(ctx, configKey)
	if err != nil {
		return err
	}
	if raw != nil {
		return ErrConfigExists
	}

	cfg := &ProgramConfig{
		Treasury:       treasury,
		Authority:      authority,
		TreasuryFeeBps: treasuryFeeBps,
	}
	if err := e.saveConfig(ctx, cfg); err != nil {
		return err
	}
	e.emitConfig(EventConfigInitialized, cfg)
	return nil
}

// UpdateConfig changes the treasury destination and/or fee. Authority only.
func (e *Engine) UpdateConfig(ctx context.Context, sender string, newTreasury *string, newTreasuryFeeBps *uint16) error {
	cfg, err := e.loadConfig(ctx)
	if err != nil {
		return err
	}
	if sender != cfg.Authority {
		return ErrNotAuthority
	}

	if newTreasury != nil {
		if *newTreasury == "" {
			return ErrBlankAddress
		}
		cfg.Treasury = *newTreasury
	}
	if newTreasuryFeeBps != nil {
		if *newTreasuryFeeBps > MaxBps {
			return ErrInvalidBasisPoints
		}
		cfg.TreasuryFeeBps = *newTreasuryFeeBps
	}

	if err := e.saveConfig(ctx, cfg); err != nil {
		return err
	}
	e.emitConfig(EventConfigUpdated, cfg)
	return nil
}
