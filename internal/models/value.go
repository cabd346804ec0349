package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// valueKind discriminates the scalar kinds a table cell can hold.
type valueKind int

const (
	kindMissing valueKind = iota
	kindNumber
	kindText
	kindBool
)

// Value is a single table cell. Ingestion produces Missing, Number and
// Text values; Bool is reserved for derived flag columns such as the
// Pareto marker. The zero value is a missing cell.
type Value struct {
	kind valueKind
	num  float64
	text string
	flag bool
}

// Missing returns the absent-cell value.
func Missing() Value { return Value{} }

// Number wraps a float64 cell value.
func Number(f float64) Value { return Value{kind: kindNumber, num: f} }

// Text wraps a string cell value.
func Text(s string) Value { return Value{kind: kindText, text: s} }

// Bool wraps a boolean cell value.
func Bool(b bool) Value { return Value{kind: kindBool, flag: b} }

// Coerce converts a raw cell string the way spreadsheet exports are read:
// surrounding whitespace is trimmed, empty cells become missing, anything
// that parses as a finite number becomes a number, the rest stays text.
func Coerce(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Missing()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Text(s)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Missing()
	}
	return Number(f)
}

// IsMissing reports whether the cell is absent.
func (v Value) IsMissing() bool { return v.kind == kindMissing }

// Numeric returns the numeric interpretation of the cell: numbers
// directly, text cells via parsing. Missing and boolean cells have none.
func (v Value) Numeric() (float64, bool) {
	switch v.kind {
	case kindNumber:
		return v.num, true
	case kindText:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.text), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// True reports whether the cell is the boolean true.
func (v Value) True() bool { return v.kind == kindBool && v.flag }

// Display renders the cell for human-facing output. Missing cells render
// empty, numbers use the shortest exact decimal form ("30", "0.54").
func (v Value) Display() string {
	switch v.kind {
	case kindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case kindText:
		return v.text
	case kindBool:
		return strconv.FormatBool(v.flag)
	default:
		return ""
	}
}

// MarshalJSON encodes missing cells as null and the other kinds as their
// natural JSON scalar. Non-finite numbers have no JSON encoding and are
// emitted as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case kindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(v.num)
	case kindText:
		return json.Marshal(v.text)
	case kindBool:
		return json.Marshal(v.flag)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes any JSON scalar into the matching cell kind.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case nil:
		*v = Missing()
	case bool:
		*v = Bool(t)
	case float64:
		*v = Number(t)
	case string:
		*v = Text(t)
	default:
		return fmt.Errorf("cell value must be a JSON scalar, got %s", data)
	}
	return nil
}
