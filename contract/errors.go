package contract

import "fmt"

// Kind groups engine errors by what went wrong, so callers can map them
// to a transport status without matching individual codes.
type Kind uint8

const (
	// Validation: the input itself is malformed.
	Validation Kind = iota
	// State: the game is in the wrong lifecycle phase for the call.
	State
	// Authorization: the sender may not perform the call.
	Authorization
	// Arithmetic: a pot computation would overflow.
	Arithmetic
	// NotFound: the addressed record does not exist.
	NotFound
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case State:
		return "state"
	case Authorization:
		return "authorization"
	case Arithmetic:
		return "arithmetic"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error is the engine's error type. Every failure an operation can
// produce is one of the package sentinels below; callers match with
// errors.Is.
type Error struct {
	Kind Kind
	Code string
	msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("[%s] %s", e.Code, e.msg) }

// Message returns the human-readable text without the code prefix.
func (e *Error) Message() string { return e.msg }

func newErr(kind Kind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, msg: msg}
}

var (
	ErrNameLength         = newErr(Validation, "NameLength", "game name must be 1 to 32 bytes")
	ErrGameCodeLength     = newErr(Validation, "GameCodeLength", "game code must be 1 to 16 bytes")
	ErrInvalidTimeRange   = newErr(Validation, "InvalidTimeRange", "start time must precede end time")
	ErrInvalidBasisPoints = newErr(Validation, "InvalidBasisPoints", "fee exceeds 1000 basis points")
	ErrMaxWinnersTooLow   = newErr(Validation, "MaxWinnersTooLow", "max winners must be at least 1")
	ErrInvalidWinnerCount = newErr(Validation, "InvalidWinnerCount", "winner list length does not match the required count")
	ErrDuplicateWinner    = newErr(Validation, "DuplicateWinner", "winner listed more than once")
	ErrInvalidWinnerOrder = newErr(Validation, "InvalidWinnerOrder", "winners must rank by score, ties by earlier finish")
	ErrInvalidFinishTime  = newErr(Validation, "InvalidFinishTime", "finish time must lie in the play window and in the past")
	ErrBlankAddress       = newErr(Validation, "BlankAddress", "address must not be blank")

	ErrGameNotStarted         = newErr(State, "GameNotStarted", "game has not started")
	ErrGameStarted            = newErr(State, "GameStarted", "game already started")
	ErrGameEnded              = newErr(State, "GameEnded", "game already ended")
	ErrGameNotEnded           = newErr(State, "GameNotEnded", "game has not ended")
	ErrAlreadySubmitted       = newErr(State, "AlreadySubmitted", "player already submitted answers")
	ErrPlayerNotFinished      = newErr(State, "PlayerNotFinished", "player never submitted answers")
	ErrWinnersAlreadyDeclared = newErr(State, "WinnersAlreadyDeclared", "winners already declared")
	ErrWinnersNotDeclared     = newErr(State, "WinnersNotDeclared", "winners not declared")
	ErrPrizeAlreadyClaimed    = newErr(State, "PrizeAlreadyClaimed", "prize already claimed")
	ErrUnclaimedPrizes        = newErr(State, "UnclaimedPrizes", "prizes remain unclaimed")
	ErrCannotCloseWinner      = newErr(State, "CannotCloseWinner", "winner must claim before closing the account")
	ErrGameExists             = newErr(State, "GameExists", "game code already in use by this organizer")
	ErrAlreadyJoined          = newErr(State, "AlreadyJoined", "player already joined")
	ErrEntryFeeLocked         = newErr(State, "EntryFeeLocked", "entry fee cannot change after players have joined")
	ErrConfigExists           = newErr(State, "ConfigExists", "config already initialized")
	ErrCorruptRecord          = newErr(State, "CorruptRecord", "stored record failed to decode")

	ErrNotAdmin        = newErr(Authorization, "NotAdmin", "sender is not the game organizer")
	ErrNotAuthority    = newErr(Authorization, "NotAuthority", "sender is not the config authority")
	ErrNotAWinner      = newErr(Authorization, "NotAWinner", "sender is not a declared winner")
	ErrWinnerNotPlayer = newErr(Authorization, "WinnerNotPlayer", "declared winner never joined the game")

	ErrNumericOverflow     = newErr(Arithmetic, "NumericOverflow", "pot arithmetic overflowed")
	ErrPlayerCountOverflow = newErr(Arithmetic, "PlayerCountOverflow", "player count at maximum")

	ErrGameNotFound   = newErr(NotFound, "GameNotFound", "game does not exist")
	ErrPlayerNotFound = newErr(NotFound, "PlayerNotFound", "player record does not exist")
	ErrConfigNotFound = newErr(NotFound, "ConfigNotFound", "config not initialized")
)
