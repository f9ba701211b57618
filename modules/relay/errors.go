package relay

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure the dispatcher reports wraps exactly one of
// these, so callers and tests classify with errors.Is.
var (
	// ErrValidation marks a missing or empty required field.
	ErrValidation = errors.New("validation error")

	// ErrPrecondition marks an operation attempted in the wrong session
	// state, such as a room operation before an identity is set.
	ErrPrecondition = errors.New("precondition error")

	// ErrNotFound marks a reference to a room that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrProtocol marks an unparseable frame or unknown frame type.
	ErrProtocol = errors.New("protocol error")
)

// Concrete failures surfaced as error frames.
var (
	ErrUserIDRequired   = fmt.Errorf("%w: userId is required", ErrValidation)
	ErrRoomCodeRequired = fmt.Errorf("%w: roomCode is required", ErrValidation)
	ErrMessageRequired  = fmt.Errorf("%w: content and sender are required", ErrValidation)

	ErrIdentityRequired = fmt.Errorf("%w: identity required", ErrPrecondition)
	ErrNotInRoom        = fmt.Errorf("%w: not joined to a room", ErrPrecondition)

	ErrRoomNotFound = fmt.Errorf("%w: room not found", ErrNotFound)

	ErrInvalidFrame = fmt.Errorf("%w: invalid frame", ErrProtocol)
)
