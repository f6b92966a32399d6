package vector

import (
	"fmt"
	"strconv"
	"strings"
)

// Ratio is a valid/padding duty cycle: Num data-carrying cycles out of every
// Den cycles.
type Ratio struct {
	Num int
	Den int
}

// Full is the ratio with no padding cycles.
var Full = Ratio{Num: 1, Den: 1}

func (r Ratio) Validate() error {
	if r.Den <= 0 {
		return invalid(ErrInvalidRatio, "denominator %d must be > 0", r.Den)
	}
	// A zero numerator never consumes a word and would stall forever.
	if r.Num <= 0 {
		return invalid(ErrInvalidRatio, "numerator %d must be > 0", r.Num)
	}
	if r.Num > r.Den {
		return invalid(ErrInvalidRatio, "numerator %d exceeds denominator %d", r.Num, r.Den)
	}
	return nil
}

// Active reports whether cycle pos of a period carries data. The last Num
// cycles of each period are active; the leading Den-Num cycles are padding.
// pos is reduced modulo Den so callers may pass an absolute cycle number.
func (r Ratio) Active(pos int) bool {
	return pos%r.Den >= r.Den-r.Num
}

func (r Ratio) String() string { return fmt.Sprintf("%d/%d", r.Num, r.Den) }

// IsActive is Ratio{num, den}.Active(pos).
func IsActive(pos, num, den int) bool {
	return Ratio{Num: num, Den: den}.Active(pos)
}

// ParseRatio parses "num/den". A bare "n" means n/n.
func ParseRatio(s string) (Ratio, error) {
	s = strings.TrimSpace(s)
	numStr, denStr, found := strings.Cut(s, "/")
	if !found {
		denStr = numStr
	}
	num, err := strconv.Atoi(strings.TrimSpace(numStr))
	if err != nil {
		return Ratio{}, fmt.Errorf("bad ratio %q: %w", s, err)
	}
	den, err := strconv.Atoi(strings.TrimSpace(denStr))
	if err != nil {
		return Ratio{}, fmt.Errorf("bad ratio %q: %w", s, err)
	}
	r := Ratio{Num: num, Den: den}
	if err := r.Validate(); err != nil {
		return Ratio{}, err
	}
	return r, nil
}
