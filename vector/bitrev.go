package vector

import (
	"math/big"
	"math/bits"
)

// Reverse returns v with its lowest width bits in reverse order (bit 0 swaps
// with bit width-1). v is treated as zero padded on the left to width bits, so
// leading zeros end up as trailing zeros.
func Reverse(v *big.Int, width int) (*big.Int, error) {
	if width < 0 || v.Sign() < 0 {
		return nil, invalid(ErrInvalidParams, "width=%d value=%s", width, v.String())
	}
	if v.BitLen() > width {
		return nil, invalid(ErrInputTooBig, "%d bits do not fit in width %d", v.BitLen(), width)
	}
	if width <= 64 {
		r, _ := ReverseUint64(v.Uint64(), width)
		return new(big.Int).SetUint64(r), nil
	}
	out := new(big.Int)
	for i := 0; i < v.BitLen(); i++ {
		if v.Bit(i) == 1 {
			out.SetBit(out, width-1-i, 1)
		}
	}
	return out, nil
}

// ReverseUint64 is the fixed-size fast path of Reverse for width <= 64.
func ReverseUint64(v uint64, width int) (uint64, error) {
	if width < 0 || width > 64 {
		return 0, invalid(ErrInvalidParams, "width %d outside [0, 64]", width)
	}
	if width == 0 {
		if v != 0 {
			return 0, invalid(ErrInputTooBig, "%d bits do not fit in width 0", bits.Len64(v))
		}
		return 0, nil
	}
	if bits.Len64(v) > width {
		return 0, invalid(ErrInputTooBig, "%d bits do not fit in width %d", bits.Len64(v), width)
	}
	return bits.Reverse64(v) >> (64 - width), nil
}
