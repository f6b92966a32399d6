package fixture

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/fpgacores/testvec/vector"
)

func TestManifestRoundtrip(t *testing.T) {
	var sha [32]byte
	for i := range sha {
		sha[i] = byte(i)
	}
	m := Manifest{
		Version: 1, Name: "file_compare", Source: vector.SourceChaCha20, Seed: -17,
		Width: 32, Length: 8192, Num: 1, Den: 1, Words: 256,
		InputSize: 1024, InputSHA256: sha, ReferenceSize: 2304,
	}
	m.ReferenceSHA256[31] = 0xff

	var m2 Manifest
	require.NoError(t, m2.UnmarshalBinary(m.MarshalBinary()))
	require.Equal(t, m, m2)
	require.Equal(t, vector.Params{Width: 32, Length: 8192, Ratio: vector.Full}, m2.Params())
}

func TestManifestRejectsBadInput(t *testing.T) {
	var m Manifest
	require.ErrorIs(t, m.UnmarshalBinary([]byte("QFEC")), ErrBadMagic)
	require.ErrorIs(t, m.UnmarshalBinary(nil), ErrBadMagic)

	b := []byte(manifestMagic)
	b = protowire.AppendTag(b, fieldVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, 7)
	require.ErrorIs(t, m.UnmarshalBinary(b), ErrVersion)

	good := (&Manifest{Version: 1, Name: "x"}).MarshalBinary()
	require.Error(t, m.UnmarshalBinary(good[:len(good)-3]))
}

func TestManifestSkipsUnknownFields(t *testing.T) {
	b := (&Manifest{Version: 1, Name: "x", Width: 8}).MarshalBinary()
	b = protowire.AppendTag(b, 99, protowire.Fixed32Type)
	b = protowire.AppendFixed32(b, 0xdeadbeef)

	var m Manifest
	require.NoError(t, m.UnmarshalBinary(b))
	require.Equal(t, "x", m.Name)
	require.Equal(t, 8, m.Width)
}

func TestBuildAndVerify(t *testing.T) {
	p := Paths{Dir: t.TempDir(), Name: "pair"}
	params := vector.Params{Width: 8, Length: 512, Ratio: vector.Full}
	v, err := vector.Generate(vector.NewSeededSource(1), params)
	require.NoError(t, err)
	require.NoError(t, v.WriteFiles(p.Input(), p.Reference()))

	m, err := Build(p.Name, vector.SourceMath, 1, v, p.Input(), p.Reference())
	require.NoError(t, err)
	require.Equal(t, uint64(64), m.Words)
	require.Equal(t, uint64(64), m.InputSize)
	require.Equal(t, uint64(64*3), m.ReferenceSize)
	require.NoError(t, m.Verify(p.Input(), p.Reference()))

	require.NoError(t, m.Save(p.Manifest()))
	loaded, err := Load(p.Manifest())
	require.NoError(t, err)
	require.Equal(t, m, loaded)

	// truncated input
	require.NoError(t, os.WriteFile(p.Input(), v.Packed[:10], 0o644))
	require.ErrorIs(t, m.Verify(p.Input(), p.Reference()), ErrSizeMismatch)

	// same size, different content
	tampered := append([]byte(nil), v.Packed...)
	tampered[0] ^= 1
	require.NoError(t, os.WriteFile(p.Input(), tampered, 0o644))
	require.ErrorIs(t, m.Verify(p.Input(), p.Reference()), ErrDigestMismatch)
}

func TestPathsExist(t *testing.T) {
	p := Paths{Dir: t.TempDir(), Name: "file_compare"}
	require.False(t, p.Exist())
	require.NoError(t, os.WriteFile(p.Input(), nil, 0o644))
	require.NoError(t, os.WriteFile(p.Reference(), nil, 0o644))
	require.True(t, p.Exist())
	require.False(t, p.Exist(vector.VariantSingle))
	require.NoError(t, os.WriteFile(p.Variant(vector.VariantSingle), nil, 0o644))
	require.True(t, p.Exist(vector.VariantSingle))
}
