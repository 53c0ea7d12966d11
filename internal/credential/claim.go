package credential

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Platform of credentials issued by this service.
const Platform = "github.com"

// Claim conditions.
const (
	ConditionEqual        = "=="
	ConditionGreaterEqual = ">="
)

// TimeLayout is the layout of instants carried in claim values.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// Claim is one normalized statement about subject's platform activity.
type Claim struct {
	ID        string `json:"id"`
	Platform  string `json:"platform"`
	Criteria  string `json:"criteria"`
	Condition string `json:"condition"`
	Value     Value  `json:"value"`
}

type valueKind uint8

const (
	kindNone valueKind = iota
	kindInt
	kindString
	kindList
)

// Value is a claim value: integer, instant (ISO-8601 string) or ordered list of strings.
type Value struct {
	kind valueKind
	i    int64
	s    string
	l    []string
}

// IntValue returns integer value.
func IntValue(v int64) Value {
	return Value{kind: kindInt, i: v}
}

// TimeValue returns instant value rendered in UTC with millisecond precision.
func TimeValue(t time.Time) Value {
	return Value{kind: kindString, s: t.UTC().Format(TimeLayout)}
}

// StringValue returns string value.
func StringValue(s string) Value {
	return Value{kind: kindString, s: s}
}

// ListValue returns list value. The list is copied.
func ListValue(l []string) Value {
	c := make([]string, len(l))
	copy(c, l)
	return Value{kind: kindList, l: c}
}

// Int returns integer value and true if v holds an integer.
func (v Value) Int() (int64, bool) {
	return v.i, v.kind == kindInt
}

// Text returns string value and true if v holds a string.
func (v Value) Text() (string, bool) {
	return v.s, v.kind == kindString
}

// List returns a copy of the list and true if v holds a list.
func (v Value) List() ([]string, bool) {
	if v.kind != kindList {
		return nil, false
	}
	c := make([]string, len(v.l))
	copy(c, v.l)
	return c, true
}

// IsZero returns true if value is not set.
func (v Value) IsZero() bool {
	return v.kind == kindNone
}

// Equal compares values.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind || v.i != o.i || v.s != o.s || len(v.l) != len(o.l) {
		return false
	}
	for i := range v.l {
		if v.l[i] != o.l[i] {
			return false
		}
	}
	return true
}

// MarshalJSON ...
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case kindInt:
		return json.Marshal(v.i)
	case kindString:
		return json.Marshal(v.s)
	case kindList:
		return json.Marshal(v.l)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON ...
func (v *Value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*v = Value{}
		return nil
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = StringValue(s)
	case '[':
		var l []string
		if err := json.Unmarshal(b, &l); err != nil {
			return err
		}
		*v = ListValue(l)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("unsupported claim value %s: %w", string(b), err)
		}
		i, err := n.Int64()
		if err != nil {
			return fmt.Errorf("claim value must be an integer: %w", err)
		}
		*v = IntValue(i)
	}

	return nil
}
