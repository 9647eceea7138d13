package stdlib

import "github.com/sheetlang/sheetlang/internal/value"

func registerContainer(r *Registry) {
	r.Register("NewArray", CategoryContainer, value.NewBuiltin("NewArray", value.ArityConstant, biNewArray))
	r.Register("NewArrayDefault", CategoryContainer, value.NewBuiltin("NewArrayDefault", value.ArityBinary, biNewArrayDefault))
	r.Register("NewDictionary", CategoryContainer, value.NewBuiltin("NewDictionary", value.ArityConstant, biNewDictionary))
	r.Register("Size", CategoryContainer, value.NewBuiltin("Size", value.ArityUnary, biSize))
	r.Register("Length", CategoryContainer, value.NewBuiltin("Length", value.ArityUnary, biSize))
	r.Register("PushBack", CategoryContainer, value.NewBuiltin("PushBack", value.ArityBinary, biPushBack))
	r.Register("PushFront", CategoryContainer, value.NewBuiltin("PushFront", value.ArityBinary, biPushFront))
	r.Register("PopBack", CategoryContainer, value.NewBuiltin("PopBack", value.ArityUnary, biPopBack))
	r.Register("PopFront", CategoryContainer, value.NewBuiltin("PopFront", value.ArityUnary, biPopFront))
	r.Register("Insert", CategoryContainer, value.NewBuiltin("Insert", value.ArityTernary, biInsert))
	r.Register("GetIndex", CategoryContainer, value.NewBuiltin("GetIndex", value.ArityBinary, biGetIndex))
	r.Register("SetIndex", CategoryContainer, value.NewBuiltin("SetIndex", value.ArityTernary, biSetIndex))
	r.Register("ContainsKey", CategoryContainer, value.NewBuiltin("ContainsKey", value.ArityBinary, biContainsKey))
	r.Register("RemoveKey", CategoryContainer, value.NewBuiltin("RemoveKey", value.ArityBinary, biRemoveKey))
	r.Register("GetKeys", CategoryContainer, value.NewBuiltin("GetKeys", value.ArityUnary, biGetKeys))
	r.Register("GetValue", CategoryContainer, value.NewBuiltin("GetValue", value.ArityBinary, biGetValue))
}

func biNewArray(_ value.Context, _ []value.Value) (value.Value, error) {
	return value.NewArray(), nil
}

func biNewArrayDefault(_ value.Context, args []value.Value) (value.Value, error) {
	size, err := asInt(args[0])
	if err != nil {
		return nil, err
	}
	if size < 0 {
		return nil, domainErr("array size must be non-negative, got %d", size)
	}
	return value.NewArrayDefault(size, args[1]), nil
}

func biNewDictionary(_ value.Context, _ []value.Value) (value.Value, error) {
	return value.NewDictionary(), nil
}

func biSize(_ value.Context, args []value.Value) (value.Value, error) {
	switch c := args[0].(type) {
	case *value.Array:
		return value.FloatFromInt(int64(c.Len())), nil
	case *value.Dictionary:
		return value.FloatFromInt(int64(c.Len())), nil
	case value.String:
		return value.FloatFromInt(int64(c.Len())), nil
	default:
		return nil, typeErr("Size/Length expects an Array, Dictionary, or String, got %s", c.TypeName())
	}
}

func biPushBack(_ value.Context, args []value.Value) (value.Value, error) {
	a, err := asArray(args[0])
	if err != nil {
		return nil, err
	}
	a.PushBack(args[1])
	return value.Nil{}, nil
}

func biPushFront(_ value.Context, args []value.Value) (value.Value, error) {
	a, err := asArray(args[0])
	if err != nil {
		return nil, err
	}
	a.PushFront(args[1])
	return value.Nil{}, nil
}

func biPopBack(_ value.Context, args []value.Value) (value.Value, error) {
	a, err := asArray(args[0])
	if err != nil {
		return nil, err
	}
	v, ok := a.PopBack()
	if !ok {
		return nil, domainErr("PopBack on an empty array")
	}
	return v, nil
}

func biPopFront(_ value.Context, args []value.Value) (value.Value, error) {
	a, err := asArray(args[0])
	if err != nil {
		return nil, err
	}
	v, ok := a.PopFront()
	if !ok {
		return nil, domainErr("PopFront on an empty array")
	}
	return v, nil
}

func biInsert(_ value.Context, args []value.Value) (value.Value, error) {
	a, err := asArray(args[0])
	if err != nil {
		return nil, err
	}
	pos, err := asInt(args[1])
	if err != nil {
		return nil, err
	}
	if !a.Insert(pos, args[2]) {
		return nil, domainErr("Insert position %d out of range", pos)
	}
	return value.Nil{}, nil
}

// biGetIndex is the fails-on-out-of-range sibling of Index expressions
// (spec.md §4.4 "GetIndex fails on out-of-range for arrays"); dictionaries
// fall back to GetValue's absent-key-is-nil behavior.
func biGetIndex(_ value.Context, args []value.Value) (value.Value, error) {
	switch c := args[0].(type) {
	case *value.Array:
		idx, err := asInt(args[1])
		if err != nil {
			return nil, err
		}
		v, ok := c.Get(idx)
		if !ok {
			return nil, domainErr("array index %d out of range", idx)
		}
		return v, nil
	case *value.Dictionary:
		v, ok := c.Get(args[1])
		if !ok {
			return value.Nil{}, nil
		}
		return v, nil
	default:
		return nil, typeErr("GetIndex expects an Array or Dictionary, got %s", c.TypeName())
	}
}

func biSetIndex(_ value.Context, args []value.Value) (value.Value, error) {
	switch c := args[0].(type) {
	case *value.Array:
		idx, err := asInt(args[1])
		if err != nil {
			return nil, err
		}
		if !c.Set(idx, args[2]) {
			return nil, domainErr("array index %d out of range", idx)
		}
		return value.Nil{}, nil
	case *value.Dictionary:
		if err := c.Set(args[1], args[2]); err != nil {
			return nil, typeErr("%s", err)
		}
		return value.Nil{}, nil
	default:
		return nil, typeErr("SetIndex expects an Array or Dictionary, got %s", c.TypeName())
	}
}

func biContainsKey(_ value.Context, args []value.Value) (value.Value, error) {
	d, err := asDictionary(args[0])
	if err != nil {
		return nil, err
	}
	return boolValue(d.ContainsKey(args[1])), nil
}

func biRemoveKey(_ value.Context, args []value.Value) (value.Value, error) {
	d, err := asDictionary(args[0])
	if err != nil {
		return nil, err
	}
	return boolValue(d.RemoveKey(args[1])), nil
}

func biGetKeys(_ value.Context, args []value.Value) (value.Value, error) {
	d, err := asDictionary(args[0])
	if err != nil {
		return nil, err
	}
	return value.NewArrayOf(d.Keys()...), nil
}

// biGetValue is Dictionary lookup that returns Nil on a missing key rather
// than failing (spec.md §4.6 GetValue).
func biGetValue(_ value.Context, args []value.Value) (value.Value, error) {
	d, err := asDictionary(args[0])
	if err != nil {
		return nil, err
	}
	v, ok := d.Get(args[1])
	if !ok {
		return value.Nil{}, nil
	}
	return v, nil
}
