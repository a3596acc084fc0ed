package zdict

// Keys returns a snapshot of the keys in slot order. The order is some
// total order that stays stable under pure reads; any mutation may change
// it.
func (d *ZDict) Keys() []Value {
	out := make([]Value, 0, d.Len())

	d.tbl.scan(func(_ uintptr, k, _ Value) bool {
		out = append(out, k)

		return true
	})

	return out
}

// Values returns a snapshot of the values in slot order.
func (d *ZDict) Values() []Value {
	out := make([]Value, 0, d.Len())

	d.tbl.scan(func(_ uintptr, _, v Value) bool {
		out = append(out, v)

		return true
	})

	return out
}

// Items returns a snapshot of the entries in slot order.
func (d *ZDict) Items() []Pair {
	out := make([]Pair, 0, d.Len())

	d.tbl.scan(func(_ uintptr, k, v Value) bool {
		out = append(out, Pair{Key: k, Value: v})

		return true
	})

	return out
}

// Range calls visit for each entry of a snapshot taken up front. The dict
// may be mutated during the walk; the walk can never observe a freed
// slot.
func (d *ZDict) Range(visit func(key, value Value) bool) {
	for _, p := range d.Items() {
		if !visit(p.Key, p.Value) {
			return
		}
	}
}

// PopItem removes and returns the entry in the lowest-index occupied
// slot, or ErrEmpty if there is none.
func (d *ZDict) PopItem() (Pair, error) {
	if !d.mode.canDelete() {
		return Pair{}, &ModeError{Op: "popitem", Mode: d.mode}
	}

	var (
		item  Pair
		idx   uintptr
		found bool
	)

	d.tbl.scan(func(i uintptr, k, v Value) bool {
		item = Pair{Key: k, Value: v}
		idx = i
		found = true

		return false
	})

	if !found {
		return Pair{}, ErrEmpty
	}

	d.tbl.deleteAt(idx)

	return item, nil
}
