package assessment

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

type Kind uint8

const (
	KindEmpty Kind = iota
	KindNumber
	KindText
)

// Value is a raw or derived field: empty, a number or a text.
type Value struct {
	kind Kind
	num  float64
	text string
}

func Empty() Value                 { return Value{} }
func Number(f float64) Value       { return Value{kind: KindNumber, num: f} }
func Text(s string) Value          { return Value{kind: KindText, text: s} }
func (v Value) Kind() Kind         { return v.kind }
func (v Value) IsEmpty() bool      { return v.kind == KindEmpty }
func (v Value) IsNumber() bool     { return v.kind == KindNumber }
func (v Value) Equal(o Value) bool { return v == o }

// Float returns the numeric content; ok is false for empty and text values.
func (v Value) Float() (f float64, ok bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Truthy mirrors a form's presence check: non-zero numbers and non-blank texts.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNumber:
		return v.num != 0
	case KindText:
		return strings.TrimSpace(v.text) != ""
	default:
		return false
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindText:
		return v.text
	default:
		return ""
	}
}

// Int truncates numbers toward zero; empty and text give 0.
func (v Value) Int() int {
	if v.kind != KindNumber {
		return 0
	}
	return int(v.num)
}

// Num returns the number or 0.
func (v Value) Num() float64 {
	f, _ := v.Float()
	return f
}

// MarshalJSON renders empty values as "" so clients can bind them to blank inputs.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return json.Marshal(v.num)
	case KindText:
		return json.Marshal(v.text)
	default:
		return []byte(`""`), nil
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case float64:
		*v = Number(x)
	case string:
		if x == "" {
			*v = Empty()
		} else {
			*v = Text(x)
		}
	default:
		*v = Empty()
	}
	return nil
}

// Coercion policies applied when an input changes.

// ParseNumber parses the leading number of raw, ignoring whatever trails it ("4a" is 4).
// Input with no leading number degrades to fallback, never to an error:
// users mid-typing a number are not blocked.
func ParseNumber(raw string, fallback Value) Value {
	return parsePrefix(numberPrefix, raw, fallback)
}

// ParseInt parses the leading integer of raw ("7.9" is 7, "12abc" is 12).
func ParseInt(raw string, fallback Value) Value {
	return parsePrefix(intPrefix, raw, fallback)
}

var (
	numberPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
	intPrefix    = regexp.MustCompile(`^[+-]?\d+`)
)

func parsePrefix(prefix *regexp.Regexp, raw string, fallback Value) Value {
	m := prefix.FindString(strings.TrimSpace(raw))
	if m == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fallback
	}
	return Number(f)
}

// ParseText keeps text as typed; a blank input is stored as empty.
func ParseText(raw string) Value {
	if raw == "" {
		return Empty()
	}
	return Text(raw)
}
