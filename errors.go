package zdict

import (
	"errors"
	"fmt"
)

var (
	// ErrKeyNotFound reports a lookup or pop on an absent key without a
	// supplied default.
	ErrKeyNotFound = errors.New("key not found")

	// ErrMode reports an operation forbidden by the dict's mode.
	ErrMode = errors.New("operation not permitted by mode")

	// ErrUnhashable reports hashing a dict in a non-immutable mode.
	ErrUnhashable = errors.New("unhashable")

	// ErrNotPairs reports a pair-iterable source whose elements are not
	// key/value pairs.
	ErrNotPairs = errors.New("each item must be a 2-tuple")

	// ErrBadSource reports a construct/update source of an unsupported
	// shape.
	ErrBadSource = errors.New("source must be a dict, mapping, or iterable of pairs")

	// ErrTableFull reports a growth step whose capacity arithmetic would
	// overflow. The table is untouched.
	ErrTableFull = errors.New("table capacity overflow")

	// ErrEmpty reports popitem on an empty dict.
	ErrEmpty = errors.New("popitem(): dictionary is empty")
)

// KeyError carries the key of a failed lookup.
type KeyError struct {
	Key Value
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("key not found: %s", formatValue(e.Key))
}

func (e *KeyError) Unwrap() error { return ErrKeyNotFound }

// ModeError reports a mutation rejected by the current mode. It fires
// before any state change.
type ModeError struct {
	Op   string
	Mode Mode
}

func (e *ModeError) Error() string {
	return fmt.Sprintf("cannot %s in '%s' mode", e.Op, e.Mode)
}

func (e *ModeError) Unwrap() error { return ErrMode }

// UnhashableError reports a hash attempt on a dict whose mode is not
// immutable.
type UnhashableError struct {
	Mode Mode
}

func (e *UnhashableError) Error() string {
	return fmt.Sprintf("unhashable in '%s' mode", e.Mode)
}

func (e *UnhashableError) Unwrap() error { return ErrUnhashable }
