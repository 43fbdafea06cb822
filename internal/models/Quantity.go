package models

import (
	"fmt"
	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
	"math"
	"regexp"
	"strconv"
)

// decimalPattern accepts plain base-10 numbers only, so "0x10" or "1_000" stay text.
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// Quantity holds a stock figure exactly as the dataset delivered it.
// Non-numeric values are kept and rendered verbatim.
type Quantity struct {
	raw any
}

func NewQuantity(v any) Quantity {
	if f, ok := v.(float64); ok && f == math.Trunc(f) && !math.IsInf(f, 0) {
		return Quantity{raw: int(f)}
	}
	return Quantity{raw: v}
}

func (q Quantity) IsSet() bool {
	return q.raw != nil
}

// Float reports the numeric value and whether the raw value is a number as given.
func (q Quantity) Float() (float64, bool) {
	switch v := q.raw.(type) {
	case nil, bool:
		return 0, false
	case float64:
		return v, !math.IsNaN(v) && !math.IsInf(v, 0)
	case float32:
		f := float64(v)
		return f, !math.IsNaN(f) && !math.IsInf(f, 0)
	case string:
		if !decimalPattern.MatchString(v) {
			return 0, false
		}
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	}
	f, err := cast.ToFloat64E(q.raw)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Int reports the value when it is a whole number. Fractions are never truncated.
func (q Quantity) Int() (int, bool) {
	switch v := q.raw.(type) {
	case string:
		n, err := strconv.Atoi(v)
		return n, err == nil
	case float64, float32:
		f, ok := q.Float()
		if !ok || f != math.Trunc(f) {
			return 0, false
		}
		return int(f), true
	}
	f, ok := q.Float()
	if !ok {
		return 0, false
	}
	return int(f), true
}

func (q Quantity) String() string {
	switch v := q.raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case bool:
		return fmt.Sprint(v)
	}
	if s, err := cast.ToStringE(q.raw); err == nil {
		return s
	}
	return fmt.Sprint(q.raw)
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.raw)
}

func (q *Quantity) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*q = NewQuantity(v)
	return nil
}
