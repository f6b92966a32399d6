package vector

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/icza/bitio"
)

// Extract recovers the words carried by an input stream generated with p,
// skipping padding cycles. Comparing the result with the reference file
// checks that a pair on disk is self-consistent.
func Extract(packed []byte, p Params) ([]*big.Int, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(packed) != p.ByteCount() {
		return nil, fmt.Errorf("input has %d bytes, want %d", len(packed), p.ByteCount())
	}
	r := bitio.NewReader(bytes.NewReader(packed))
	words := make([]*big.Int, 0, p.WordCount())
	cur := new(big.Int)
	n := 0
	for c := 0; c < p.Cycles(); c++ {
		b, err := r.ReadBool()
		if err != nil {
			return nil, fmt.Errorf("cycle %d: %w", c, err)
		}
		if !p.Ratio.Active(c) {
			if b {
				return nil, fmt.Errorf("cycle %d: padding bit is set", c)
			}
			continue
		}
		cur.Lsh(cur, 1)
		if b {
			cur.SetBit(cur, 0, 1)
		}
		if n++; n == p.Width {
			words = append(words, cur)
			cur = new(big.Int)
			n = 0
		}
	}
	return words, nil
}
