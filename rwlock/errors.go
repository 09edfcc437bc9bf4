package rwlock

import (
	"errors"
	"fmt"
)

var (
	// ErrDiscipline is the umbrella error for lock-ordering violations.
	// Both specific violations wrap it, so errors.Is(err, ErrDiscipline)
	// catches either.
	ErrDiscipline = errors.New("rwlock: lock discipline violation")

	// ErrWriteWhileRead is returned when a goroutine holding a read lock
	// requests the write lock. Granting it could only deadlock the caller
	// against itself.
	ErrWriteWhileRead = fmt.Errorf("%w: write requested while holding a read lock", ErrDiscipline)

	// ErrReadWhileWrite is returned when a goroutine holding the write lock
	// requests a scoped read. The write-to-read transition is available
	// through the raw primitives only.
	ErrReadWhileWrite = fmt.Errorf("%w: scoped read requested while holding the write lock", ErrDiscipline)

	// ErrNotHeld is returned by a release without a matching acquire on the
	// calling goroutine.
	ErrNotHeld = errors.New("rwlock: release without matching acquire")
)
