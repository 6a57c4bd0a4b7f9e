package core

import "errors"

// Errors returned alongside a snapshot. None of them ends the session;
// the snapshot returned with them is always valid.
var (
	// ErrInvalidCoordinate rejects an intent addressing a cell off the board.
	ErrInvalidCoordinate = errors.New("tilematch: invalid coordinate")

	// ErrIllegalSelection reports a non-adjacent second selection.
	// The new cell replaces the pending selection.
	ErrIllegalSelection = errors.New("tilematch: illegal selection")

	// ErrNoOp reports an intent that had nothing to act on.
	ErrNoOp = errors.New("tilematch: nothing to do")

	// ErrCascadeOverflow reports that resolution stopped at the iteration cap.
	// The board is accepted as it stands.
	ErrCascadeOverflow = errors.New("tilematch: cascade overflow")
)
