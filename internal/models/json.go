package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// NullableFloat is a float64 that serializes NaN and infinities as JSON
// null instead of failing to marshal. The undefined prefix of a simple
// moving average and an infinite payback period must stay distinguishable
// from a real zero on the wire.
type NullableFloat float64

// MarshalJSON implements json.Marshaler.
func (f NullableFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

// UnmarshalJSON implements json.Unmarshaler; null becomes NaN.
func (f *NullableFloat) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = NullableFloat(math.NaN())
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = NullableFloat(v)
	return nil
}

// FloatSeries is a value sequence whose undefined entries serialize as null.
type FloatSeries []float64

// MarshalJSON implements json.Marshaler.
func (s FloatSeries) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBufferString("[")
	for i, v := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			buf.WriteString("null")
		} else {
			buf.Write(strconv.AppendFloat(nil, v, 'g', -1, 64))
		}
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler; nulls become NaN.
func (s *FloatSeries) UnmarshalJSON(data []byte) error {
	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(FloatSeries, len(raw))
	for i, p := range raw {
		if p == nil {
			out[i] = math.NaN()
		} else {
			out[i] = *p
		}
	}
	*s = out
	return nil
}
