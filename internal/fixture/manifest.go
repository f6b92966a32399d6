package fixture

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/fpgacores/testvec/vector"
)

// Manifest is written next to every generated pair. Layout:
//
//	MAGIC   4B  "TVEC"
//	BODY        protobuf wire format, fields below
//
// Unknown fields are skipped so newer writers stay readable.
const (
	manifestMagic   = "TVEC"
	manifestVersion = 1
)

// Field numbers of the manifest body.
const (
	fieldVersion         protowire.Number = 1
	fieldName            protowire.Number = 2
	fieldSource          protowire.Number = 3
	fieldSeed            protowire.Number = 4
	fieldWidth           protowire.Number = 5
	fieldLength          protowire.Number = 6
	fieldNum             protowire.Number = 7
	fieldDen             protowire.Number = 8
	fieldWords           protowire.Number = 9
	fieldInputSize       protowire.Number = 10
	fieldInputSHA256     protowire.Number = 11
	fieldReferenceSize   protowire.Number = 12
	fieldReferenceSHA256 protowire.Number = 13
)

var (
	ErrBadMagic       = errors.New("fixture: bad magic")
	ErrVersion        = errors.New("fixture: unsupported version")
	ErrSizeMismatch   = errors.New("fixture: size mismatch")
	ErrDigestMismatch = errors.New("fixture: digest mismatch")
)

type Manifest struct {
	Version         uint32
	Name            string
	Source          string
	Seed            int64
	Width           int
	Length          int
	Num             int
	Den             int
	Words           uint64
	InputSize       uint64
	InputSHA256     [32]byte
	ReferenceSize   uint64
	ReferenceSHA256 [32]byte
}

func (m *Manifest) Params() vector.Params {
	return vector.Params{Width: m.Width, Length: m.Length, Ratio: vector.Ratio{Num: m.Num, Den: m.Den}}
}

func (m *Manifest) MarshalBinary() []byte {
	b := make([]byte, 0, 128+len(m.Name)+len(m.Source))
	b = append(b, manifestMagic...)
	b = appendVarint(b, fieldVersion, uint64(m.Version))
	b = protowire.AppendTag(b, fieldName, protowire.BytesType)
	b = protowire.AppendString(b, m.Name)
	b = protowire.AppendTag(b, fieldSource, protowire.BytesType)
	b = protowire.AppendString(b, m.Source)
	b = appendVarint(b, fieldSeed, protowire.EncodeZigZag(m.Seed))
	b = appendVarint(b, fieldWidth, uint64(m.Width))
	b = appendVarint(b, fieldLength, uint64(m.Length))
	b = appendVarint(b, fieldNum, uint64(m.Num))
	b = appendVarint(b, fieldDen, uint64(m.Den))
	b = appendVarint(b, fieldWords, m.Words)
	b = appendVarint(b, fieldInputSize, m.InputSize)
	b = protowire.AppendTag(b, fieldInputSHA256, protowire.BytesType)
	b = protowire.AppendBytes(b, m.InputSHA256[:])
	b = appendVarint(b, fieldReferenceSize, m.ReferenceSize)
	b = protowire.AppendTag(b, fieldReferenceSHA256, protowire.BytesType)
	b = protowire.AppendBytes(b, m.ReferenceSHA256[:])
	return b
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func (m *Manifest) UnmarshalBinary(b []byte) error {
	if len(b) < len(manifestMagic) || string(b[:len(manifestMagic)]) != manifestMagic {
		return ErrBadMagic
	}
	b = b[len(manifestMagic):]
	*m = Manifest{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
			m.setVarint(num, v)
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
			if err := m.setBytes(num, v); err != nil {
				return err
			}
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	if m.Version != manifestVersion {
		return fmt.Errorf("%w: %d", ErrVersion, m.Version)
	}
	return nil
}

func (m *Manifest) setVarint(num protowire.Number, v uint64) {
	switch num {
	case fieldVersion:
		m.Version = uint32(v)
	case fieldSeed:
		m.Seed = protowire.DecodeZigZag(v)
	case fieldWidth:
		m.Width = int(v)
	case fieldLength:
		m.Length = int(v)
	case fieldNum:
		m.Num = int(v)
	case fieldDen:
		m.Den = int(v)
	case fieldWords:
		m.Words = v
	case fieldInputSize:
		m.InputSize = v
	case fieldReferenceSize:
		m.ReferenceSize = v
	}
}

func (m *Manifest) setBytes(num protowire.Number, v []byte) error {
	switch num {
	case fieldName:
		m.Name = string(v)
	case fieldSource:
		m.Source = string(v)
	case fieldInputSHA256, fieldReferenceSHA256:
		if len(v) != sha256.Size {
			return fmt.Errorf("fixture: field %d has %d digest bytes", num, len(v))
		}
		if num == fieldInputSHA256 {
			copy(m.InputSHA256[:], v)
		} else {
			copy(m.ReferenceSHA256[:], v)
		}
	}
	return nil
}

// Build describes a pair that has just been written to inputPath and
// referencePath. The digests are taken from disk, not from v, so the manifest
// records what consumers will actually read.
func Build(name, source string, seed int64, v *vector.Vectors, inputPath, referencePath string) (*Manifest, error) {
	m := &Manifest{
		Version: manifestVersion,
		Name:    name,
		Source:  source,
		Seed:    seed,
		Width:   v.Params.Width,
		Length:  v.Params.Length,
		Num:     v.Params.Ratio.Num,
		Den:     v.Params.Ratio.Den,
		Words:   uint64(len(v.Words)),
	}
	var err error
	if m.InputSHA256, m.InputSize, err = hashFile(inputPath); err != nil {
		return nil, err
	}
	if m.ReferenceSHA256, m.ReferenceSize, err = hashFile(referencePath); err != nil {
		return nil, err
	}
	return m, nil
}

// Verify checks that the files on disk are the ones m describes. A truncated
// file reports ErrSizeMismatch; same size with other content reports
// ErrDigestMismatch.
func (m *Manifest) Verify(inputPath, referencePath string) error {
	if err := verifyFile(inputPath, m.InputSize, m.InputSHA256); err != nil {
		return err
	}
	return verifyFile(referencePath, m.ReferenceSize, m.ReferenceSHA256)
}

func verifyFile(path string, size uint64, digest [32]byte) error {
	sum, n, err := hashFile(path)
	if err != nil {
		return err
	}
	if n != size {
		return fmt.Errorf("%w: %s has %d bytes, want %d", ErrSizeMismatch, path, n, size)
	}
	if sum != digest {
		return fmt.Errorf("%w: %s", ErrDigestMismatch, path)
	}
	return nil
}

func hashFile(path string) ([32]byte, uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return [32]byte{}, 0, err
	}
	defer f.Close()
	return ComputeSHA256(f)
}

// ComputeSHA256 computes the SHA256 of everything r yields and its length.
func ComputeSHA256(r io.Reader) ([32]byte, uint64, error) {
	h := sha256.New()
	var buf [64 * 1024]byte
	var nTotal uint64
	for {
		n, err := r.Read(buf[:])
		if n > 0 {
			nTotal += uint64(n)
			_, _ = h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return [32]byte{}, 0, err
		}
	}
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum, nTotal, nil
}

func (m *Manifest) Save(path string) error {
	return os.WriteFile(path, m.MarshalBinary(), 0o644)
}

func Load(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := m.UnmarshalBinary(b); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &m, nil
}
