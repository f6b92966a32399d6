package vector

import (
	"bytes"
	"math/big"
)

// Vectors is one generated pair held in memory.
type Vectors struct {
	Params Params
	// Words are the original, non-reversed words in generation order.
	Words []*big.Int
	// Bits is the serialized stream, one entry per cycle.
	Bits []bool
	// Packed is Bits packed MSB first; it is the content of the input file.
	Packed []byte
}

// Generate serializes and packs one pair. Words are drawn from src only after
// p has been validated.
func Generate(src Source, p Params) (*Vectors, error) {
	words, stream, err := Serialize(src, p)
	if err != nil {
		return nil, err
	}
	packed, err := Pack(stream)
	if err != nil {
		return nil, err
	}
	return &Vectors{Params: p, Words: words, Bits: stream, Packed: packed}, nil
}

func (v *Vectors) WriteFiles(inputPath, referencePath string) error {
	return WriteFilePair(inputPath, referencePath, v.Packed, v.Words, v.Params.Width)
}

// Reference returns the reference file content.
func (v *Vectors) Reference() []byte {
	var b bytes.Buffer
	// bytes.Buffer writes cannot fail
	_ = WriteReference(&b, v.Words, v.Params.Width)
	return b.Bytes()
}
