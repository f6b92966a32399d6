package plan

import (
	"fmt"

	"github.com/fpgacores/testvec/vector"
)

// Default is the fixture set the AXI stream testbenches read: the file reader
// pairs at data widths 1, 8 and 32, the file compare pair with both corrupted
// references, and duty-cycled inputs for the width converter.
func Default(seed int64, source string) *Plan {
	p := &Plan{Seed: seed, Source: source}
	for _, w := range []int{1, 8, 32} {
		p.Jobs = append(p.Jobs, Job{
			Name:   fmt.Sprintf("file_reader_data_width_%d", w),
			Width:  w,
			Length: 256 * w,
			Num:    1,
			Den:    1,
		})
	}
	p.Jobs = append(p.Jobs, Job{
		Name:     "file_compare",
		Width:    32,
		Length:   256 * 32,
		Num:      1,
		Den:      1,
		Variants: []vector.Variant{vector.VariantSingle, vector.VariantDouble},
	})
	for _, c := range []struct{ width, num, den int }{
		{8, 1, 2},
		{24, 1, 8},
		{32, 3, 4},
		{128, 1, 1},
	} {
		p.Jobs = append(p.Jobs, Job{
			Name:   fmt.Sprintf("width_converter_data_width_%d_ratio_%d_%d", c.width, c.num, c.den),
			Width:  c.width,
			Length: 256 * c.width,
			Num:    c.num,
			Den:    c.den,
		})
	}
	return p
}
