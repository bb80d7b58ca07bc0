package node

import "strconv"

// Equal reports whether a and b are structurally equal.
//
// Arrays must hold equal elements in the same order. Objects must hold the
// same key set with equal values; key order is not compared, matching JSON
// object semantics. Numbers compare by value when both literals parse.
func Equal(a, b *Node) bool {
	if a.IsNull() || b.IsNull() {
		return a.IsNull() && b.IsNull()
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case Object:
		if len(a.keys) != len(b.keys) {
			return false
		}
		for _, k := range a.keys {
			bv, ok := b.fields[k]
			if !ok || !Equal(a.fields[k], bv) {
				return false
			}
		}
		return true
	case Array:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	default:
		return scalarEqual(a.value, b.value)
	}
}

func scalarEqual(a, b any) bool {
	an, aok := a.(Number)
	bn, bok := b.(Number)
	if aok && bok {
		if an == bn {
			return true
		}
		af, aerr := strconv.ParseFloat(string(an), 64)
		bf, berr := strconv.ParseFloat(string(bn), 64)
		return aerr == nil && berr == nil && af == bf
	}
	return a == b
}
