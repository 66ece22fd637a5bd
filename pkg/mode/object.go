package mode

import (
	"bytes"
	"encoding/json"
)

// Object is the structured mode notation, typically decoded from a JSON or
// JSONC config file:
//
//	{"user": {"read": true, "write": true, "execute": true}, "group": {"read": true}}
//
// A nil class is left untouched. A present class is replaced: unset fields
// clear their bit.
type Object struct {
	User   *ClassObject `json:"user,omitempty"`
	Group  *ClassObject `json:"group,omitempty"`
	Others *ClassObject `json:"others,omitempty"`
	// Type is an optional file-type hint (one of b c d D l p r s).
	Type string `json:"type,omitempty"`
}

// ClassObject is the permission set for one class of an [Object].
type ClassObject struct {
	Read    *bool `json:"read,omitempty"`
	Write   *bool `json:"write,omitempty"`
	Execute *bool `json:"execute,omitempty"`
	// Special sets setuid for user and setgid for group, and implies Execute.
	// For others it is the same as Execute.
	Special *bool `json:"special,omitempty"`
}

// ParseObject converts an [Object], *Object or a decoded JSON object
// (map[string]any) into a [Master]. Unknown keys and wrongly typed fields
// fail with [ErrGrammar].
func ParseObject(v any) (Master, error) {
	obj, ok := toObject(v)
	if !ok {
		return Master{}, newError(ErrGrammar, v, ConvertError(v, TypeObject.String()))
	}

	fileType := FileTypeNone

	if obj.Type != "" {
		ft, ok := parseFileType(obj.Type[0])
		if len(obj.Type) != 1 || !ok {
			return Master{}, newError(ErrGrammar, v, ConvertError(v, TypeObject.String()))
		}

		fileType = ft
	}

	var perms [3]Permission

	for c, co := range [...]*ClassObject{obj.User, obj.Group, obj.Others} {
		if co != nil {
			perms[c] = co.permission()
		}
	}

	return NewMaster(perms[User], perms[Group], perms[Others], fileType), nil
}

func (co *ClassObject) permission() Permission {
	p := Permission{
		Read:    RWEntry{Op: OpSet, Operand: isTrue(co.Read)},
		Write:   RWEntry{Op: OpSet, Operand: isTrue(co.Write)},
		Execute: XEntry{Op: OpSet, Operand: ExecNone},
	}

	switch {
	case isTrue(co.Special):
		p.Execute.Operand = ExecSpecial
		p.Special = RWEntry{Op: OpSet, Operand: true}
	case isTrue(co.Execute):
		p.Execute.Operand = ExecOn
	}

	return p
}

func isTrue(b *bool) bool {
	return b != nil && *b
}

func toObject(v any) (Object, bool) {
	switch x := v.(type) {
	case Object:
		return x, true
	case *Object:
		if x == nil {
			return Object{}, false
		}

		return *x, true
	case map[string]any:
		data, err := json.Marshal(x)
		if err != nil {
			return Object{}, false
		}

		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()

		var obj Object

		if err := dec.Decode(&obj); err != nil {
			return Object{}, false
		}

		return obj, true
	default:
		return Object{}, false
	}
}
