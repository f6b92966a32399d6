package vector

import "math/big"

// Params describes one input/reference pair.
//
// Length is the number of periods: the stream runs Length*Ratio.Den cycles,
// Length*Ratio.Num of which carry data bits.
type Params struct {
	Width  int
	Length int
	Ratio  Ratio
}

func (p Params) Cycles() int     { return p.Length * p.Ratio.Den }
func (p Params) ActiveBits() int { return p.Length * p.Ratio.Num }
func (p Params) ByteCount() int  { return p.Cycles() / 8 }

func (p Params) WordCount() int {
	if p.Width <= 0 {
		return 0
	}
	return p.ActiveBits() / p.Width
}

// Digits is the number of hex digits per reference line.
func (p Params) Digits() int { return HexDigits(p.Width) }

// Validate checks p before any word is drawn, so an invalid request leaves
// the Source untouched.
func (p Params) Validate() error {
	if p.Width <= 0 {
		return invalid(ErrInvalidParams, "data width %d must be > 0", p.Width)
	}
	if p.Length <= 0 {
		return invalid(ErrInvalidParams, "length %d must be > 0", p.Length)
	}
	if err := p.Ratio.Validate(); err != nil {
		return err
	}
	if p.ActiveBits()%p.Width != 0 {
		return invalid(ErrWordAlignment, "data width %d, length %d, ratio %s leave %d active bits",
			p.Width, p.Length, p.Ratio, p.ActiveBits())
	}
	if p.Cycles()%8 != 0 {
		return invalid(ErrByteAlignment, "data width %d, length %d, ratio %s give %d cycles",
			p.Width, p.Length, p.Ratio, p.Cycles())
	}
	return nil
}

// Serialize runs the shift-register model: every active cycle emits the next
// bit of the current word, original MSB first, drawing a new word from src
// when the previous one is used up; padding cycles emit 0.
func Serialize(src Source, p Params) ([]*big.Int, []bool, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}
	cycles := p.Cycles()
	words := make([]*big.Int, 0, p.WordCount())
	stream := make([]bool, 0, cycles)

	var buf *big.Int
	remaining := 0
	for c := 0; c < cycles; c++ {
		if !p.Ratio.Active(c) {
			stream = append(stream, false)
			continue
		}
		if remaining == 0 {
			w := src.Next(p.Width)
			rev, err := Reverse(w, p.Width)
			if err != nil {
				return nil, nil, err
			}
			words = append(words, w)
			buf = rev
			remaining = p.Width
		}
		stream = append(stream, buf.Bit(0) == 1)
		buf.Rsh(buf, 1)
		remaining--
	}

	if remaining != 0 {
		return nil, nil, invalid(ErrWordAlignment, "data width %d, length %d: %d bits of the last word pending",
			p.Width, p.Length, remaining)
	}
	if len(stream)%8 != 0 {
		return nil, nil, invalid(ErrByteAlignment, "data width %d, length %d: %d bits", p.Width, p.Length, len(stream))
	}
	return words, stream, nil
}
