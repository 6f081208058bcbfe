package contract

import "context"

// StartGame moves the play window so it opens now. The configured
// duration is preserved; players who already joined stay joined.
func (e *Engine) StartGame(ctx context.Context, sender, admin, code string) error {
	if sender != admin {
		return ErrNotAdmin
	}
	g, err := e.loadGame(ctx, admin, code)
	if err != nil {
		return err
	}
	if g.Ended {
		return ErrGameEnded
	}

	now := e.clock.Now()
	duration := g.EndTime - g.StartTime
	g.StartTime = now
	g.EndTime = now + duration

	if err := e.saveGame(ctx, g); err != nil {
		return err
	}
	e.emitGameStarted(g)
	return nil
}
