// Package zdict implements a dict-like associative container backed by an
// open-addressed hash table with per-slot metadata bytes, wrapped in a
// facade whose operational mode constrains which mutations are permitted.
package zdict

import (
	"fmt"
	"hash/maphash"
	"slices"
	"strings"
)

// ZDict is the mode-aware mapping facade around a single table. It is not
// safe for concurrent use; an immutable dict whose hash has been computed
// may be shared for reading.
type ZDict struct {
	tbl  table
	mode Mode

	cachedHash uint64
	hashValid  bool
}

type builder struct {
	mode     Mode
	capacity int
	source   any
	entries  []Pair
	seed     maphash.Seed
	err      error
}

// Option configures New.
type Option func(*builder)

// WithMode sets the dict's mode.
func WithMode(m Mode) Option {
	return func(b *builder) {
		b.mode = m
	}
}

// WithModeName sets the dict's mode from its name.
func WithModeName(name string) Option {
	return func(b *builder) {
		m, err := ParseMode(name)
		if err != nil {
			b.err = err

			return
		}

		b.mode = m
	}
}

// WithCapacity pre-sizes the table for at least n slots.
func WithCapacity(n int) Option {
	return func(b *builder) {
		b.capacity = n
	}
}

// WithData seeds the dict from source. Accepted shapes: *ZDict, []Pair,
// anything with Items() []Pair, map[string]any, or []any whose elements
// are Pair or [2]Value.
func WithData(source any) Option {
	return func(b *builder) {
		b.source = source
	}
}

// WithEntries appends entries applied after the data source.
func WithEntries(pairs ...Pair) Option {
	return func(b *builder) {
		b.entries = append(b.entries, pairs...)
	}
}

// WithSeed overrides the table's hash seed.
func WithSeed(seed maphash.Seed) Option {
	return func(b *builder) {
		b.seed = seed
	}
}

// New constructs a dict. The data source is applied first, then any
// WithEntries pairs; both happen before the mode starts gating mutations,
// so readonly and immutable dicts can be born populated.
func New(opts ...Option) (*ZDict, error) {
	b := builder{
		mode:     Mutable,
		capacity: minCapacity,
		seed:     globalSeed,
	}

	for _, opt := range opts {
		opt(&b)
	}

	if b.err != nil {
		return nil, b.err
	}

	if !b.mode.valid() {
		return nil, fmt.Errorf("unsupported mode %d", int(b.mode))
	}

	pairs, err := coercePairs(b.source)
	if err != nil {
		return nil, err
	}

	capacity := b.capacity
	if sized := capacityForEntries(len(pairs) + len(b.entries)); sized > capacity {
		capacity = sized
	}

	d := &ZDict{mode: b.mode}
	if err := d.tbl.init(capacity, b.seed); err != nil {
		return nil, err
	}

	for _, p := range pairs {
		if err := d.tbl.set(p.Key, p.Value); err != nil {
			d.tbl.free()

			return nil, err
		}
	}

	for _, p := range b.entries {
		if err := d.tbl.set(p.Key, p.Value); err != nil {
			d.tbl.free()

			return nil, err
		}
	}

	return d, nil
}

// NewMutable constructs a mutable dict from source.
func NewMutable(source any) (*ZDict, error) {
	return New(WithMode(Mutable), WithData(source))
}

// NewImmutable constructs an immutable dict from source.
func NewImmutable(source any) (*ZDict, error) {
	return New(WithMode(Immutable), WithData(source))
}

// NewReadonly constructs a readonly dict from source.
func NewReadonly(source any) (*ZDict, error) {
	return New(WithMode(Readonly), WithData(source))
}

// NewInsert constructs an insert-only dict from source.
func NewInsert(source any) (*ZDict, error) {
	return New(WithMode(Insert), WithData(source))
}

// NewArena constructs an arena dict from source.
func NewArena(source any) (*ZDict, error) {
	return New(WithMode(Arena), WithData(source))
}

func coercePairs(source any) ([]Pair, error) {
	switch src := source.(type) {
	case nil:
		return nil, nil
	case *ZDict:
		return src.Items(), nil
	case []Pair:
		return slices.Clone(src), nil
	case ItemsProvider:
		return src.Items(), nil
	case map[string]any:
		pairs := make([]Pair, 0, len(src))
		for k, v := range src {
			hv, err := ValueOf(v)
			if err != nil {
				return nil, err
			}

			pairs = append(pairs, Pair{Key: Str(k), Value: hv})
		}

		return pairs, nil
	case []any:
		pairs := make([]Pair, 0, len(src))
		for _, item := range src {
			switch p := item.(type) {
			case Pair:
				pairs = append(pairs, p)
			case [2]Value:
				pairs = append(pairs, Pair{Key: p[0], Value: p[1]})
			default:
				return nil, fmt.Errorf("%w, got %T", ErrNotPairs, item)
			}
		}

		return pairs, nil
	default:
		return nil, fmt.Errorf("%w, got %T", ErrBadSource, source)
	}
}

// Len returns the number of entries.
func (d *ZDict) Len() int {
	return int(d.tbl.size)
}

// Mode returns the dict's mode tag.
func (d *ZDict) Mode() Mode {
	return d.mode
}

// Get returns the value stored under key, or a *KeyError if absent.
func (d *ZDict) Get(key Value) (Value, error) {
	v, ok, err := d.tbl.get(key)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, &KeyError{Key: key}
	}

	return v, nil
}

// GetDefault returns the value stored under key, or fallback if absent.
func (d *ZDict) GetDefault(key, fallback Value) (Value, error) {
	v, ok, err := d.tbl.get(key)
	if err != nil {
		return nil, err
	}

	if !ok {
		return fallback, nil
	}

	return v, nil
}

// Contains reports whether key is present.
func (d *ZDict) Contains(key Value) (bool, error) {
	_, ok, err := d.tbl.get(key)

	return ok, err
}

// Set inserts or overwrites an entry. Mode violations are reported before
// any state change.
func (d *ZDict) Set(key, value Value) error {
	if !d.mode.canUpdate() {
		exists, err := d.Contains(key)
		if err != nil {
			return err
		}

		if exists {
			return &ModeError{Op: "update", Mode: d.mode}
		}

		if !d.mode.canInsert() {
			return &ModeError{Op: "insert", Mode: d.mode}
		}
	}

	return d.tbl.set(key, value)
}

// Delete removes the entry stored under key.
func (d *ZDict) Delete(key Value) error {
	if !d.mode.canDelete() {
		return &ModeError{Op: "delete", Mode: d.mode}
	}

	ok, err := d.tbl.delete(key)
	if err != nil {
		return err
	}

	if !ok {
		return &KeyError{Key: key}
	}

	return nil
}

// Pop removes and returns the value stored under key, or a *KeyError if
// absent.
func (d *ZDict) Pop(key Value) (Value, error) {
	if !d.mode.canDelete() {
		return nil, &ModeError{Op: "pop", Mode: d.mode}
	}

	v, ok, err := d.tbl.get(key)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, &KeyError{Key: key}
	}

	if _, err := d.tbl.delete(key); err != nil {
		return nil, err
	}

	return v, nil
}

// PopDefault removes and returns the value stored under key, or fallback
// if absent.
func (d *ZDict) PopDefault(key, fallback Value) (Value, error) {
	if !d.mode.canDelete() {
		return nil, &ModeError{Op: "pop", Mode: d.mode}
	}

	v, ok, err := d.tbl.get(key)
	if err != nil {
		return nil, err
	}

	if !ok {
		return fallback, nil
	}

	if _, err := d.tbl.delete(key); err != nil {
		return nil, err
	}

	return v, nil
}

// SetDefault returns the value stored under key, inserting fallback first
// if the key is absent.
func (d *ZDict) SetDefault(key, fallback Value) (Value, error) {
	v, ok, err := d.tbl.get(key)
	if err != nil {
		return nil, err
	}

	if ok {
		return v, nil
	}

	if !d.mode.canInsert() {
		return nil, &ModeError{Op: "insert", Mode: d.mode}
	}

	if err := d.tbl.set(key, fallback); err != nil {
		return nil, err
	}

	return fallback, nil
}

// Update merges entries from source, then from extra. In insert mode the
// incoming pairs are staged and checked first: one key colliding with an
// existing entry rejects the whole call.
func (d *ZDict) Update(source any, extra ...Pair) error {
	if !d.mode.canInsert() {
		return &ModeError{Op: "update", Mode: d.mode}
	}

	pairs, err := coercePairs(source)
	if err != nil {
		return err
	}

	pairs = append(pairs, extra...)

	if d.mode == Insert {
		return d.updateStaged(pairs)
	}

	for _, p := range pairs {
		if err := d.Set(p.Key, p.Value); err != nil {
			return err
		}
	}

	return nil
}

func (d *ZDict) updateStaged(pairs []Pair) error {
	// Collapse duplicate keys within the batch (last one wins) through a
	// scratch table, then prove no staged key already exists before
	// applying any of them.
	var scratch table
	if err := scratch.init(capacityForEntries(len(pairs)), d.tbl.seed); err != nil {
		return err
	}
	defer scratch.free()

	for _, p := range pairs {
		if err := scratch.set(p.Key, p.Value); err != nil {
			return err
		}
	}

	staged := make([]Pair, 0, int(scratch.size))
	scratch.scan(func(_ uintptr, k, v Value) bool {
		staged = append(staged, Pair{Key: k, Value: v})

		return true
	})

	for _, p := range staged {
		_, ok, err := d.tbl.get(p.Key)
		if err != nil {
			return err
		}

		if ok {
			return &ModeError{Op: "update existing key", Mode: d.mode}
		}
	}

	for _, p := range staged {
		if err := d.tbl.set(p.Key, p.Value); err != nil {
			return err
		}
	}

	return nil
}

// Clear removes all entries. Capacity is retained.
func (d *ZDict) Clear() error {
	if !d.mode.canDelete() {
		return &ModeError{Op: "clear", Mode: d.mode}
	}

	d.tbl.clear()

	return nil
}

// Copy returns a shallow copy in the same mode: entries share handles
// with the original. An immutable copy carries the cached hash.
func (d *ZDict) Copy() (*ZDict, error) {
	out := &ZDict{mode: d.mode}
	if err := out.tbl.init(int(d.tbl.capacity), d.tbl.seed); err != nil {
		return nil, err
	}

	var err error

	d.tbl.scan(func(_ uintptr, k, v Value) bool {
		err = out.tbl.set(k, v)

		return err == nil
	})

	if err != nil {
		out.tbl.free()

		return nil, err
	}

	out.cachedHash = d.cachedHash
	out.hashValid = d.hashValid

	return out, nil
}

// Equal reports whether the dict holds the same entries as other, which
// may be another *ZDict or any construct source. Mode and iteration order
// are irrelevant; non-mapping shapes compare unequal.
func (d *ZDict) Equal(other any) (bool, error) {
	od, ok := other.(*ZDict)
	if !ok {
		pairs, err := coercePairs(other)
		if err != nil {
			return false, nil
		}

		tmp, err := New(WithData(pairs), WithSeed(d.tbl.seed))
		if err != nil {
			return false, err
		}
		defer tmp.Free()

		return d.equalDict(tmp)
	}

	return d.equalDict(od)
}

func (d *ZDict) equalDict(other *ZDict) (bool, error) {
	if d.Len() != other.Len() {
		return false, nil
	}

	var (
		equal = true
		err   error
	)

	d.tbl.scan(func(_ uintptr, k, v Value) bool {
		ov, ok, e := other.tbl.get(k)
		if e != nil {
			err = e

			return false
		}

		if !ok {
			equal = false

			return false
		}

		eq, e := v.Equals(ov)
		if e != nil {
			err = e

			return false
		}

		if !eq {
			equal = false

			return false
		}

		return true
	})

	if err != nil {
		return false, err
	}

	return equal, nil
}

// Free releases every stored handle and the backing arrays. The dict must
// not be used afterwards.
func (d *ZDict) Free() {
	d.tbl.free()
}

// Stats returns occupancy statistics for the underlying table.
func (d *ZDict) Stats() Stats {
	return d.tbl.stats()
}

// String renders zdict({...}, mode='<mode>') with entries in slot order.
func (d *ZDict) String() string {
	var sb strings.Builder

	sb.WriteString("zdict({")

	first := true

	d.tbl.scan(func(_ uintptr, k, v Value) bool {
		if !first {
			sb.WriteString(", ")
		}

		first = false

		sb.WriteString(formatValue(k))
		sb.WriteString(": ")
		sb.WriteString(formatValue(v))

		return true
	})

	fmt.Fprintf(&sb, "}, mode='%s')", d.mode)

	return sb.String()
}
