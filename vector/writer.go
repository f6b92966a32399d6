package vector

import (
	"bytes"
	"fmt"
	"math/big"
	"os"
)

// WriteFilePair persists an input/reference pair. Both files are created or
// truncated; the directory must already exist. A failure leaves whatever was
// written so far in place.
func WriteFilePair(inputPath, referencePath string, packed []byte, words []*big.Int, width int) error {
	if err := os.WriteFile(inputPath, packed, 0o644); err != nil {
		return fmt.Errorf("write input: %w", err)
	}
	var ref bytes.Buffer
	ref.Grow(len(words) * (HexDigits(width) + 1))
	if err := WriteReference(&ref, words, width); err != nil {
		return fmt.Errorf("format reference: %w", err)
	}
	if err := os.WriteFile(referencePath, ref.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write reference: %w", err)
	}
	return nil
}
