package vector

import (
	"bufio"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"
)

// HexDigits is the reference line width for a data width: one digit per
// nibble, rounded up.
func HexDigits(width int) int { return (width + 3) / 4 }

// FormatWord renders w as lowercase hex, zero padded to HexDigits(width).
func FormatWord(w *big.Int, width int) string {
	s := w.Text(16)
	if pad := HexDigits(width) - len(s); pad > 0 {
		s = strings.Repeat("0", pad) + s
	}
	return s
}

// WriteReference writes one newline-terminated line per word.
func WriteReference(out io.Writer, words []*big.Int, width int) error {
	w := bufio.NewWriter(out)
	for _, word := range words {
		if _, err := w.WriteString(FormatWord(word, width)); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.Flush()
}

// ParseReference reads back a reference stream written by WriteReference.
// Every line must be exactly HexDigits(width) hex digits and the value must
// fit in width bits.
func ParseReference(r io.Reader, width int) ([]*big.Int, error) {
	digits := HexDigits(width)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), max(64*1024, digits+2))
	var words []*big.Int
	for line := 1; sc.Scan(); line++ {
		text := sc.Text()
		if len(text) != digits {
			return nil, fmt.Errorf("line %d: %q has %d digits, want %d", line, text, len(text), digits)
		}
		w, ok := new(big.Int).SetString(text, 16)
		if !ok || w.Sign() < 0 {
			return nil, fmt.Errorf("line %d: %q is not hex", line, text)
		}
		if w.BitLen() > width {
			return nil, fmt.Errorf("line %d: %w: %q exceeds %d bits", line, ErrInputTooBig, text, width)
		}
		words = append(words, w)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// ReadReference is ParseReference over a file.
func ReadReference(path string, width int) ([]*big.Int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	words, err := ParseReference(f, width)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return words, nil
}
