package game

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidLocation = errors.New("invalid location")
	ErrIllegalMove     = errors.New("illegal move")
	ErrEmptySource     = errors.New("empty source pile")
	ErrCorruptGame     = errors.New("corrupt game data")
)

// Reason says which rule an illegal move broke
type Reason int

const (
	NoReason Reason = iota
	WrongRank
	WrongColor
	EmptyRun
	NonKingOnEmpty
	SuitMismatch
	FoundationSequenceBreak
	FaceDown
	BrokenRun
	MultiCardToFoundation
	UnsupportedRoute
	NothingToFlip
)

var reasonCodes = map[Reason]string{
	NoReason:                "",
	WrongRank:               "wrong-rank",
	WrongColor:              "wrong-color",
	EmptyRun:                "empty-run",
	NonKingOnEmpty:          "non-king-on-empty",
	SuitMismatch:            "suit-mismatch",
	FoundationSequenceBreak: "foundation-sequence-break",
	FaceDown:                "face-down",
	BrokenRun:               "broken-run",
	MultiCardToFoundation:   "multi-card-foundation",
	UnsupportedRoute:        "unsupported-route",
	NothingToFlip:           "nothing-to-flip",
}

func (r Reason) String() string {
	return reasonCodes[r]
}

// MoveError is returned for every rejected move.
// Kind is one of ErrInvalidLocation, ErrIllegalMove or ErrEmptySource.
type MoveError struct {
	Kind    error
	Reason  Reason
	Message string
}

func (e *MoveError) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *MoveError) Unwrap() error {
	return e.Kind
}

// ReasonOf returns the rule broken by err, or NoReason
func ReasonOf(err error) Reason {
	var me *MoveError
	if errors.As(err, &me) {
		return me.Reason
	}
	return NoReason
}

func illegal(reason Reason, format string, a ...interface{}) error {
	return &MoveError{
		Kind:    ErrIllegalMove,
		Reason:  reason,
		Message: fmt.Sprintf(format, a...),
	}
}

func invalidLocation(format string, a ...interface{}) error {
	return &MoveError{
		Kind:    ErrInvalidLocation,
		Message: fmt.Sprintf(format, a...),
	}
}

func emptySource(loc Location) error {
	return &MoveError{
		Kind:    ErrEmptySource,
		Message: fmt.Sprintf("no cards in %s", loc),
	}
}
