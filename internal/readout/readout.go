// Package readout renders analysis results for the on-screen text panel:
// JSON with every number shown to one decimal place, refreshed every few
// frames.
package readout

import (
	"fmt"
	"io"
	"math"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Format marshals v and rewrites every number as a one-decimal string,
// keeping field order. {"width": 12.34} becomes {"width":"12.3"}.
func Format(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal readout: %w", err)
	}

	iter := jsoniter.ParseBytes(json, raw)
	stream := jsoniter.NewStream(json, nil, len(raw))
	copyRounded(iter, stream)

	if iter.Error != nil && iter.Error != io.EOF {
		return "", fmt.Errorf("rewrite readout: %w", iter.Error)
	}
	if stream.Error != nil {
		return "", fmt.Errorf("rewrite readout: %w", stream.Error)
	}

	return string(stream.Buffer()), nil
}

// Decimal formats f with one decimal place. Exact ties round away from zero
// (0.25 is "0.3"). Magnitudes of 1e21 and above switch to exponent notation.
func Decimal(f float64) string {
	if f == 0 {
		return "0.0"
	}
	if math.Abs(f) >= 1e21 {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	if isTie(f) {
		f = math.Nextafter(f, math.Copysign(math.Inf(1), f))
	}
	return strconv.FormatFloat(f, 'f', 1, 64)
}

// isTie reports whether f lies exactly halfway between two one-decimal
// values. Only odd multiples of 0.25 can, since 0.05 has no binary form.
func isTie(f float64) bool {
	q := math.Abs(f) * 4
	return q == math.Trunc(q) && math.Mod(q, 2) == 1
}

func copyRounded(iter *jsoniter.Iterator, stream *jsoniter.Stream) {
	switch iter.WhatIsNext() {
	case jsoniter.ObjectValue:
		stream.WriteObjectStart()
		first := true
		iter.ReadObjectCB(func(it *jsoniter.Iterator, field string) bool {
			if !first {
				stream.WriteMore()
			}
			first = false
			stream.WriteObjectField(field)
			copyRounded(it, stream)
			return true
		})
		stream.WriteObjectEnd()
	case jsoniter.ArrayValue:
		stream.WriteArrayStart()
		first := true
		iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			if !first {
				stream.WriteMore()
			}
			first = false
			copyRounded(it, stream)
			return true
		})
		stream.WriteArrayEnd()
	case jsoniter.NumberValue:
		stream.WriteString(Decimal(iter.ReadFloat64()))
	case jsoniter.StringValue:
		stream.WriteString(iter.ReadString())
	case jsoniter.BoolValue:
		stream.WriteBool(iter.ReadBool())
	case jsoniter.NilValue:
		iter.ReadNil()
		stream.WriteNil()
	default:
		iter.Skip()
	}
}
