package vector

import (
	"bytes"
	"fmt"
	"os"
	"strings"
)

// Variant selects a corrupted reference fixture. Both variants keep the
// record count of the original: record 7 is dropped and record 8 is
// duplicated in its place, so a file comparer sees a misalignment starting at
// record 7 while the file size stays the same.
type Variant int

const (
	// VariantSingle drops record 7 and duplicates record 8.
	VariantSingle Variant = iota + 1
	// VariantDouble does the same at 7/8 and again drops record 16 and
	// duplicates record 17.
	VariantDouble
)

func (v Variant) String() string {
	switch v {
	case VariantSingle:
		return "single"
	case VariantDouble:
		return "double"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "1":
		return VariantSingle, nil
	case "double", "2":
		return VariantDouble, nil
	default:
		return 0, fmt.Errorf("unknown variant %q (want single|double)", s)
	}
}

// FileName is the fixture name used for the variant of the pair called name.
func (v Variant) FileName(name string) string {
	switch v {
	case VariantSingle:
		return name + "_reference_tdata_1_error.bin"
	case VariantDouble:
		return name + "_reference_tdata_2_errors.bin"
	default:
		return fmt.Sprintf("%s_reference_%s.bin", name, v)
	}
}

// Apply derives the variant from reference file content.
func (v Variant) Apply(ref []byte) ([]byte, error) {
	switch v {
	case VariantSingle:
		return SingleErrorVariant(ref)
	case VariantDouble:
		return DoubleErrorVariant(ref)
	default:
		return nil, fmt.Errorf("unknown variant %d", int(v))
	}
}

var newline = []byte("\n")

// SingleErrorVariant returns ref with record 7 replaced by a copy of record
// 8. Records are split on "\n" and re-joined verbatim, so a trailing newline
// survives.
func SingleErrorVariant(ref []byte) ([]byte, error) {
	recs := bytes.Split(ref, newline)
	if len(recs) < 9 {
		return nil, fmt.Errorf("%w: single error variant needs 9, have %d", ErrTooFewRecords, len(recs))
	}
	out := make([][]byte, 0, len(recs))
	out = append(out, recs[:7]...)
	out = append(out, recs[8])
	out = append(out, recs[8:]...)
	return bytes.Join(out, newline), nil
}

// DoubleErrorVariant applies the single error at record 7 and a second one at
// record 16 (replaced by a copy of record 17).
func DoubleErrorVariant(ref []byte) ([]byte, error) {
	recs := bytes.Split(ref, newline)
	if len(recs) < 18 {
		return nil, fmt.Errorf("%w: double error variant needs 18, have %d", ErrTooFewRecords, len(recs))
	}
	out := make([][]byte, 0, len(recs))
	out = append(out, recs[:7]...)
	out = append(out, recs[8], recs[8])
	out = append(out, recs[9:16]...)
	out = append(out, recs[17])
	out = append(out, recs[17:]...)
	return bytes.Join(out, newline), nil
}

// CorruptFile reads a reference file and writes variant v of it to outPath.
func CorruptFile(referencePath, outPath string, v Variant) error {
	ref, err := os.ReadFile(referencePath)
	if err != nil {
		return err
	}
	out, err := v.Apply(ref)
	if err != nil {
		return fmt.Errorf("%s: %w", referencePath, err)
	}
	return os.WriteFile(outPath, out, 0o644)
}
