package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Number is a numeric document field submitted by the warehouse form. Clients
// send numbers, numeric strings or empty inputs; anything that does not parse
// decodes to zero instead of rejecting the whole record.
type Number float64

// UnmarshalJSON implements json.Unmarshaler and never fails.
func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number(parseLenient(data))
	return nil
}

// UnmarshalBSONValue implements bson.ValueUnmarshaler. Documents written by
// earlier deployments may hold strings, integers or nulls here; anything that
// does not parse decodes to zero.
func (n *Number) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	*n = Number(parseLenientBSON(t, data))
	return nil
}

// Float64 returns the underlying value.
func (n Number) Float64() float64 {
	return float64(n)
}

// Count is a non-negative integer field decoded with the same leniency as Number.
// Fractions are truncated, negative values clamp to zero and values above
// math.MaxInt32 clamp to math.MaxInt32.
type Count int

// UnmarshalJSON implements json.Unmarshaler and never fails.
func (c *Count) UnmarshalJSON(data []byte) error {
	*c = toCount(parseLenient(data))
	return nil
}

// UnmarshalBSONValue implements bson.ValueUnmarshaler and never fails, so a
// fractional laborCount stored by an earlier deployment still decodes.
func (c *Count) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	*c = toCount(parseLenientBSON(t, data))
	return nil
}

func toCount(v float64) Count {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= math.MaxInt32:
		return Count(math.MaxInt32)
	default:
		return Count(int(v))
	}
}

func parseLenientBSON(t bsontype.Type, data []byte) float64 {
	raw := bson.RawValue{Type: t, Value: data}

	var v float64
	switch t {
	case bsontype.Double:
		v, _ = raw.DoubleOK()
	case bsontype.Int32:
		i, _ := raw.Int32OK()
		v = float64(i)
	case bsontype.Int64:
		i, _ := raw.Int64OK()
		v = float64(i)
	case bsontype.Decimal128:
		d, ok := raw.Decimal128OK()
		if !ok {
			return 0
		}
		v, _ = strconv.ParseFloat(d.String(), 64)
	case bsontype.String:
		s, _ := raw.StringValueOK()
		v, _ = strconv.ParseFloat(strings.TrimSpace(s), 64)
	default:
		return 0
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func parseLenient(data []byte) float64 {
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" {
		return 0
	}

	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			return 0
		}
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
