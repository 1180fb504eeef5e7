package toon

import "github.com/google/uuid"

// Observer receives start/stop/failure notifications around each encode or
// decode call, identified by a per-call UUIDv7. Observers are for monitoring
// only: they cannot alter the call, and a nil or no-op observer leaves
// behavior unchanged.
//
// Error is invoked before End when the call fails, with the same error the
// caller receives.
type Observer interface {
	Begin(op string, id uuid.UUID)
	End(op string, id uuid.UUID)
	Error(op string, id uuid.UUID, err error)
}

// NopObserver is an Observer that ignores all notifications.
type NopObserver struct{}

func (NopObserver) Begin(op string, id uuid.UUID)            {}
func (NopObserver) End(op string, id uuid.UUID)              {}
func (NopObserver) Error(op string, id uuid.UUID, err error) {}
