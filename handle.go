package zdict

import (
	"fmt"
	"hash/maphash"
	"strconv"
)

// Value is an opaque handle to a host object stored in a table. Hash and
// Equals may execute arbitrary host code and are the only operations that
// can fail mid-probe.
type Value interface {
	Hash(seed maphash.Seed) (uint64, error)
	Equals(other Value) (bool, error)
}

// Retainer is implemented by handles whose lifetime is reference-counted
// by the host. The table retains a handle when it takes ownership of it
// and releases it exactly once when the entry is overwritten, deleted,
// cleared or freed.
type Retainer interface {
	Retain()
	Release()
}

func retain(v Value) {
	if r, ok := v.(Retainer); ok {
		r.Retain()
	}
}

func release(v Value) {
	if r, ok := v.(Retainer); ok {
		r.Release()
	}
}

// Pair is a single key/value entry.
type Pair struct {
	Key   Value
	Value Value
}

// ItemsProvider is any mapping-shaped source that can enumerate its
// entries. *ZDict satisfies it.
type ItemsProvider interface {
	Items() []Pair
}

// Str is a string handle.
type Str string

func (s Str) Hash(seed maphash.Seed) (uint64, error) {
	return maphash.String(seed, string(s)), nil
}

func (s Str) Equals(other Value) (bool, error) {
	o, ok := other.(Str)
	return ok && o == s, nil
}

func (s Str) String() string { return strconv.Quote(string(s)) }

// Int is an integer handle.
type Int int64

func (i Int) Hash(seed maphash.Seed) (uint64, error) {
	return maphash.Comparable(seed, int64(i)), nil
}

func (i Int) Equals(other Value) (bool, error) {
	o, ok := other.(Int)
	return ok && o == i, nil
}

func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

// Float is a floating-point handle.
type Float float64

func (f Float) Hash(seed maphash.Seed) (uint64, error) {
	return maphash.Comparable(seed, float64(f)), nil
}

func (f Float) Equals(other Value) (bool, error) {
	o, ok := other.(Float)
	return ok && o == f, nil
}

func (f Float) String() string { return strconv.FormatFloat(float64(f), 'g', -1, 64) }

// Bool is a boolean handle.
type Bool bool

func (b Bool) Hash(seed maphash.Seed) (uint64, error) {
	return maphash.Comparable(seed, bool(b)), nil
}

func (b Bool) Equals(other Value) (bool, error) {
	o, ok := other.(Bool)
	return ok && o == b, nil
}

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

// ValueOf wraps a plain Go value in the matching built-in handle kind.
func ValueOf(v any) (Value, error) {
	switch x := v.(type) {
	case Value:
		return x, nil
	case string:
		return Str(x), nil
	case int:
		return Int(x), nil
	case int64:
		return Int(x), nil
	case float64:
		return Float(x), nil
	case bool:
		return Bool(x), nil
	default:
		return nil, fmt.Errorf("no handle kind for %T", v)
	}
}

func formatValue(v Value) string {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}

	return fmt.Sprintf("%v", v)
}
