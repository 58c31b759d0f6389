package product

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

type AttributeKind string

const (
	AttributeString AttributeKind = "string"
	AttributeNumber AttributeKind = "number"
	AttributeBool   AttributeKind = "bool"
	AttributeList   AttributeKind = "list"
)

// AttributeValue is a tagged union over the value shapes a vertical may attach
// to a product (e.g. "expiresAt": "2025-01-01", "voltage": 220, "organic": true).
type AttributeValue struct {
	kind AttributeKind
	str  string
	num  float64
	flag bool
	list []string
}

func StringAttr(v string) AttributeValue  { return AttributeValue{kind: AttributeString, str: v} }
func NumberAttr(v float64) AttributeValue { return AttributeValue{kind: AttributeNumber, num: v} }
func BoolAttr(v bool) AttributeValue      { return AttributeValue{kind: AttributeBool, flag: v} }

func ListAttr(v ...string) AttributeValue {
	list := make([]string, len(v))
	copy(list, v)
	return AttributeValue{kind: AttributeList, list: list}
}

func (v AttributeValue) Kind() AttributeKind { return v.kind }

func (v AttributeValue) String() (string, bool) {
	return v.str, v.kind == AttributeString
}

func (v AttributeValue) Number() (float64, bool) {
	return v.num, v.kind == AttributeNumber
}

func (v AttributeValue) Bool() (bool, bool) {
	return v.flag, v.kind == AttributeBool
}

func (v AttributeValue) List() ([]string, bool) {
	if v.kind != AttributeList {
		return nil, false
	}
	out := make([]string, len(v.list))
	copy(out, v.list)
	return out, true
}

func (v AttributeValue) Equal(o AttributeValue) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case AttributeString:
		return v.str == o.str
	case AttributeNumber:
		return v.num == o.num
	case AttributeBool:
		return v.flag == o.flag
	case AttributeList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if v.list[i] != o.list[i] {
				return false
			}
		}
		return true
	}
	return false
}

// Interface returns the plain Go value (string, float64, bool or []string).
func (v AttributeValue) Interface() any {
	switch v.kind {
	case AttributeString:
		return v.str
	case AttributeNumber:
		return v.num
	case AttributeBool:
		return v.flag
	case AttributeList:
		out, _ := v.List()
		return out
	}
	return nil
}

func (v AttributeValue) MarshalJSON() ([]byte, error) {
	if v.kind == "" {
		return []byte("null"), nil
	}
	return json.Marshal(v.Interface())
}

func (v *AttributeValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := AttributeFromAny(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// AttributeFromAny converts a decoded JSON value. Objects, nulls and
// mixed-type lists are rejected.
func AttributeFromAny(raw any) (AttributeValue, error) {
	switch t := raw.(type) {
	case string:
		return StringAttr(t), nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return AttributeValue{}, fmt.Errorf("%w: non-finite number", ErrInvalidAttribute)
		}
		return NumberAttr(t), nil
	case bool:
		return BoolAttr(t), nil
	case []any:
		list := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return AttributeValue{}, fmt.Errorf("%w: list items must be strings", ErrInvalidAttribute)
			}
			list = append(list, s)
		}
		return AttributeValue{kind: AttributeList, list: list}, nil
	case []string:
		return ListAttr(t...), nil
	case int:
		return NumberAttr(float64(t)), nil
	case nil:
		return AttributeValue{}, fmt.Errorf("%w: null value", ErrInvalidAttribute)
	default:
		return AttributeValue{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidAttribute, raw)
	}
}

type Attributes map[string]AttributeValue

func AttributesFromMap(m map[string]any) (Attributes, error) {
	attrs := make(Attributes, len(m))
	for k, raw := range m {
		if k == "" {
			return nil, fmt.Errorf("%w: empty key", ErrInvalidAttribute)
		}
		v, err := AttributeFromAny(raw)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", k, err)
		}
		attrs[k] = v
	}
	return attrs, nil
}

func (a Attributes) ToMap() map[string]any {
	out := make(map[string]any, len(a))
	for k, v := range a {
		out[k] = v.Interface()
	}
	return out
}

func (a Attributes) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (a Attributes) Clone() Attributes {
	out := make(Attributes, len(a))
	for k, v := range a {
		if v.kind == AttributeList {
			v = ListAttr(v.list...)
		}
		out[k] = v
	}
	return out
}

func (a Attributes) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]AttributeValue(a))
}

func (a *Attributes) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	attrs, err := AttributesFromMap(raw)
	if err != nil {
		return err
	}
	*a = attrs
	return nil
}
