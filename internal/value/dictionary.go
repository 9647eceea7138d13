package value

import (
	"fmt"
	"strings"
)

// Dictionary is an ordered mapping from Value keys (any variant except
// Function, spec.md §3) to Values; iteration order is insertion order.
// Like Array it is a reference type so aliasing is preserved across copies
// of the pointer.
type Dictionary struct {
	order []Value
	index map[string]int // canonical key -> position in order/values
	vals  []Value
}

func (*Dictionary) Kind() Kind       { return KindDictionary }
func (*Dictionary) TypeName() string { return "Dictionary" }

// NewDictionary creates an empty Dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{index: make(map[string]int)}
}

// Len returns the number of entries.
func (d *Dictionary) Len() int { return len(d.order) }

// canonicalKey encodes a Value deterministically for use as a Go map key.
// Function values have no canonical encoding; callers must reject them
// before calling this (invariant in spec.md §3).
func canonicalKey(v Value) (string, error) {
	switch k := v.(type) {
	case Nil:
		return "n:", nil
	case String:
		return "s:" + string(k), nil
	case Float:
		return "f:" + k.String(), nil
	case *Array:
		var sb strings.Builder
		sb.WriteString("a:[")
		for i, item := range k.items {
			if i > 0 {
				sb.WriteByte(',')
			}
			ik, err := canonicalKey(item)
			if err != nil {
				return "", err
			}
			sb.WriteString(ik)
		}
		sb.WriteByte(']')
		return sb.String(), nil
	case *Dictionary:
		var sb strings.Builder
		sb.WriteString("d:{")
		for i, kk := range k.order {
			if i > 0 {
				sb.WriteByte(',')
			}
			ik, err := canonicalKey(kk)
			if err != nil {
				return "", err
			}
			vk, err := canonicalKey(k.vals[i])
			if err != nil {
				return "", err
			}
			sb.WriteString(ik + "=" + vk)
		}
		sb.WriteByte('}')
		return sb.String(), nil
	case CellRef:
		return "r:" + k.canonical(), nil
	case CellRange:
		return "g:" + k.TopLeft.canonical() + ":" + k.BottomRight.canonical(), nil
	default:
		return "", fmt.Errorf("value of type %s cannot be used as a dictionary key", v.TypeName())
	}
}

// Set inserts or overwrites the value for key, preserving key's original
// insertion position if it already existed. Returns an error if key is a
// Function (invalid key type, spec.md §7 DomainError).
func (d *Dictionary) Set(key, val Value) error {
	ck, err := canonicalKey(key)
	if err != nil {
		return err
	}
	if i, ok := d.index[ck]; ok {
		d.vals[i] = val
		return nil
	}
	d.index[ck] = len(d.order)
	d.order = append(d.order, key)
	d.vals = append(d.vals, val)
	return nil
}

// Get returns the value for key and whether it was present. Per spec.md
// §4.4 GetValue semantics: absence is reported via the bool, not an error;
// built-in GetValue returns Nil on absence.
func (d *Dictionary) Get(key Value) (Value, bool) {
	ck, err := canonicalKey(key)
	if err != nil {
		return Nil{}, false
	}
	i, ok := d.index[ck]
	if !ok {
		return Nil{}, false
	}
	return d.vals[i], true
}

// ContainsKey reports whether key is present.
func (d *Dictionary) ContainsKey(key Value) bool {
	_, ok := d.Get(key)
	return ok
}

// RemoveKey deletes key if present, reporting whether it was.
func (d *Dictionary) RemoveKey(key Value) bool {
	ck, err := canonicalKey(key)
	if err != nil {
		return false
	}
	i, ok := d.index[ck]
	if !ok {
		return false
	}
	d.order = append(d.order[:i], d.order[i+1:]...)
	d.vals = append(d.vals[:i], d.vals[i+1:]...)
	delete(d.index, ck)
	for k, pos := range d.index {
		if pos > i {
			d.index[k] = pos - 1
		}
	}
	return true
}

// Keys returns the keys in insertion order (spec.md §4.6 GetKeys).
func (d *Dictionary) Keys() []Value {
	out := make([]Value, len(d.order))
	copy(out, d.order)
	return out
}
