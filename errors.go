package csrt

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Construct and Get. Callers should compare
// against these with errors.Is rather than matching on message text.
var (
	// ErrEmptyKey is returned when a pair's key has zero length.
	ErrEmptyKey = errors.New("csrt: key must be non-empty")

	// ErrDuplicateKey is returned when two input pairs share the same key.
	ErrDuplicateKey = errors.New("csrt: duplicate key")

	// ErrCapacityExceeded is returned when the input holds more than
	// 65535 pairs, or when a subtree's serialized size would overflow a
	// 16-bit relative offset.
	ErrCapacityExceeded = errors.New("csrt: capacity exceeded")

	// ErrUnsorted is returned when the input violates the documented
	// precondition that pairs arrive in ascending key order.
	ErrUnsorted = errors.New("csrt: pairs are not sorted ascending")

	// ErrKeyNotFound is returned by Get when no pair for the given key
	// was present at construction. Contains never returns an error; it
	// reports this condition as a plain false.
	ErrKeyNotFound = errors.New("csrt: key not found")

	// ErrCorruptContainer is returned by deserialization when a packed
	// container file fails its checksum or structural sanity checks.
	ErrCorruptContainer = errors.New("csrt: corrupt container")
)

func dupKeyError(key Key) error {
	return fmt.Errorf("%w: %q", ErrDuplicateKey, key.String())
}

func capacityError(reason string) error {
	return fmt.Errorf("%w: %s", ErrCapacityExceeded, reason)
}
