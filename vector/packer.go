package vector

import (
	"bytes"

	"github.com/icza/bitio"
)

// Pack groups bits into bytes in emission order, the first bit of every group
// of 8 landing in the MSB.
func Pack(stream []bool) ([]byte, error) {
	if len(stream)%8 != 0 {
		return nil, invalid(ErrByteAlignment, "%d bits", len(stream))
	}
	var buf bytes.Buffer
	buf.Grow(len(stream) / 8)
	w := bitio.NewWriter(&buf)
	for _, b := range stream {
		if err := w.WriteBool(b); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unpack is the inverse of Pack.
func Unpack(packed []byte) []bool {
	r := bitio.NewReader(bytes.NewReader(packed))
	out := make([]bool, 0, len(packed)*8)
	for range len(packed) * 8 {
		b, err := r.ReadBool()
		if err != nil {
			break
		}
		out = append(out, b)
	}
	return out
}
