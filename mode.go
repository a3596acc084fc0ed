package zdict

import "fmt"

// Mode constrains which mutations a dict permits. The zero value is
// Mutable.
type Mode int

const (
	// Mutable is a fully functional, general-purpose dict.
	Mutable Mode = iota
	// Immutable is a frozen, hashable map.
	Immutable
	// Readonly permits no mutation at all.
	Readonly
	// Insert permits inserting new keys but never changing or removing
	// existing ones.
	Insert
	// Arena is a pre-sized structure with full mutation rights.
	Arena
)

var modeNames = [...]string{
	Mutable:   "mutable",
	Immutable: "immutable",
	Readonly:  "readonly",
	Insert:    "insert",
	Arena:     "arena",
}

// SupportedModes maps each mode name to a one-line description.
var SupportedModes = map[string]string{
	"mutable":   "Fully functional, general-purpose dict.",
	"immutable": "Frozen, hashable map.",
	"readonly":  "No mutation, high-speed access.",
	"insert":    "Fast insert-only usage.",
	"arena":     "Pre-sized, pointer-stable structure.",
}

func (m Mode) String() string {
	if m < Mutable || m > Arena {
		return fmt.Sprintf("mode(%d)", int(m))
	}

	return modeNames[m]
}

// ParseMode resolves a mode name to its tag.
func ParseMode(name string) (Mode, error) {
	for m, n := range modeNames {
		if n == name {
			return Mode(m), nil
		}
	}

	return 0, fmt.Errorf("unsupported mode %q", name)
}

func (m Mode) valid() bool {
	return m >= Mutable && m <= Arena
}

// canInsert reports whether new keys may be added.
func (m Mode) canInsert() bool {
	return m == Mutable || m == Insert || m == Arena
}

// canUpdate reports whether existing keys may be overwritten.
func (m Mode) canUpdate() bool {
	return m == Mutable || m == Arena
}

// canDelete reports whether entries may be removed (delete, clear, pop,
// popitem).
func (m Mode) canDelete() bool {
	return m == Mutable || m == Arena
}

// hashable reports whether the dict itself may be used as a key.
func (m Mode) hashable() bool {
	return m == Immutable
}
