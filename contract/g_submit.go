package contract

import "context"

// SubmitAnswers grades sender's answers for a game and records the
// score. Each answer carries its own merkle proof; an answer whose
// proof does not reach the game's root simply scores zero, it is not an
// error. Submission is one-shot per player.
//
// finishTime is the client-measured completion instant. It has to sit
// inside the play window and strictly in the past; it is what winner
// ties break on, so a submission cannot claim a finish it has not
// reached yet.
func (e *Engine) SubmitAnswers(ctx context.Context, sender, admin, code string, answers []AnswerInput, finishTime int64) error {
	g, err := e.loadGame(ctx, admin, code)
	if err != nil {
		return err
	}

	now := e.clock.Now()
	if now < g.StartTime {
		return ErrGameNotStarted
	}
	if g.Ended || now >= g.EndTime {
		return ErrGameEnded
	}
	if finishTime < g.StartTime || finishTime > g.EndTime || finishTime >= now {
		return ErrInvalidFinishTime
	}

	p, err := e.loadPlayer(ctx, g, sender)
	if err != nil {
		return err
	}
	if p.Finished() {
		return ErrAlreadySubmitted
	}

	var numCorrect uint8
	for _, a := range answers {
		if VerifyAnswer(a.DisplayOrder, a.Answer, a.Salt, a.Proof, g.AnswerRoot) {
			numCorrect++
		}
	}

	p.FinishTime = finishTime
	p.NumCorrect = numCorrect

	if err := e.savePlayer(ctx, g, p); err != nil {
		return err
	}
	e.emitAnswersSubmitted(g, p)
	return nil
}
