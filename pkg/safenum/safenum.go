package safenum

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Package safenum guards every financial computation in the system.
// Values reach the services from form input, JSON backup files and stored
// rows of uncertain shape, so coercion accepts `any` and arithmetic never
// returns NaN or ±Inf.

// finite reports whether f is a usable number.
func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ToNumber coerces v into a finite float64, returning fallback for nil,
// booleans, empty or non-numeric strings, NaN/Inf and any non-scalar value.
func ToNumber(v any, fallback float64) float64 {
	if !finite(fallback) {
		fallback = 0
	}
	switch val := v.(type) {
	case nil:
		return fallback
	case float64:
		if finite(val) {
			return val
		}
		return fallback
	case float32:
		f := float64(val)
		if finite(f) {
			return f
		}
		return fallback
	case int:
		return float64(val)
	case int8:
		return float64(val)
	case int16:
		return float64(val)
	case int32:
		return float64(val)
	case int64:
		return float64(val)
	case uint:
		return float64(val)
	case uint8:
		return float64(val)
	case uint16:
		return float64(val)
	case uint32:
		return float64(val)
	case uint64:
		return float64(val)
	case json.Number:
		return ToNumber(string(val), fallback)
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return fallback
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || !finite(f) {
			return fallback
		}
		return f
	default:
		// bool, map, slice, struct: nothing sensible to coerce
		return fallback
	}
}

// ToQuantity coerces v into a whole non-negative count. Fractional values
// are floored, negatives clamp to zero.
func ToQuantity(v any, fallback int) int {
	if fallback < 0 {
		fallback = 0
	}
	f := ToNumber(v, float64(fallback))
	f = math.Floor(f)
	if f < 0 {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}

// ToPositive coerces v like ToNumber but clamps the result to >= 0.
// Used for prices.
func ToPositive(v any, fallback float64) float64 {
	f := ToNumber(v, fallback)
	if f < 0 {
		return 0
	}
	return f
}

// Add sums its operands, sanitizing each one. A non-finite sum collapses
// to zero rather than propagating.
func Add(values ...float64) float64 {
	var sum float64
	for _, v := range values {
		sum += ToNumber(v, 0)
	}
	if !finite(sum) {
		return 0
	}
	return sum
}

// Multiply returns a*b with both operands sanitized; overflow to Inf
// collapses to zero.
func Multiply(a, b float64) float64 {
	p := ToNumber(a, 0) * ToNumber(b, 0)
	if !finite(p) {
		return 0
	}
	return p
}

// Divide returns num/denom, or fallback when denom is zero or the result
// is not finite.
func Divide(num, denom, fallback float64) float64 {
	if !finite(fallback) {
		fallback = 0
	}
	d := ToNumber(denom, 0)
	if d == 0 {
		return fallback
	}
	q := ToNumber(num, 0) / d
	if !finite(q) {
		return fallback
	}
	return q
}

// Profit computes (sellingPrice - buyingPrice) * quantity with every
// operand sanitized first.
func Profit(buyingPrice, sellingPrice float64, quantity int) float64 {
	buy := ToPositive(buyingPrice, 0)
	sell := ToPositive(sellingPrice, 0)
	qty := quantity
	if qty < 0 {
		qty = 0
	}
	p := (sell - buy) * float64(qty)
	if !finite(p) {
		return 0
	}
	return p
}

// Total computes quantity * price, both sanitized.
func Total(quantity int, price float64) float64 {
	qty := quantity
	if qty < 0 {
		qty = 0
	}
	return Multiply(float64(qty), ToPositive(price, 0))
}
