package vector

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func bitsOf(s string) []bool {
	out := make([]bool, 0, len(s))
	for _, c := range s {
		switch c {
		case '0':
			out = append(out, false)
		case '1':
			out = append(out, true)
		}
	}
	return out
}

func TestSerializeAllActiveIsWordConcatenation(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := NewMockSource(ctrl)
	gomock.InOrder(
		src.EXPECT().Next(4).Return(big.NewInt(0b1100)),
		src.EXPECT().Next(4).Return(big.NewInt(0b0011)),
	)

	words, stream, err := Serialize(src, Params{Width: 4, Length: 8, Ratio: Full})
	require.NoError(t, err)
	require.Len(t, words, 2)
	require.Equal(t, int64(0b1100), words[0].Int64())
	require.Equal(t, int64(0b0011), words[1].Int64())
	require.Equal(t, bitsOf("1100 0011"), stream)

	packed, err := Pack(stream)
	require.NoError(t, err)
	require.Equal(t, []byte{0xc3}, packed)
}

func TestSerializePaddingLeadsEachPeriod(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := NewMockSource(ctrl)
	gomock.InOrder(
		src.EXPECT().Next(4).Return(big.NewInt(0b1010)),
		src.EXPECT().Next(4).Return(big.NewInt(0b0110)),
	)

	_, stream, err := Serialize(src, Params{Width: 4, Length: 8, Ratio: Ratio{Num: 1, Den: 2}})
	require.NoError(t, err)
	// padding on even cycles, data bits MSB first on odd cycles
	require.Equal(t, bitsOf("0100 0100 0001 0100"), stream)

	packed, err := Pack(stream)
	require.NoError(t, err)
	require.Equal(t, []byte{0x44, 0x14}, packed)
}

func TestSerializeWordSpansPeriods(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := NewMockSource(ctrl)
	gomock.InOrder(
		src.EXPECT().Next(8).Return(big.NewInt(0xff)),
		src.EXPECT().Next(8).Return(big.NewInt(0x00)),
	)

	p := Params{Width: 8, Length: 16, Ratio: Ratio{Num: 1, Den: 4}}
	words, stream, err := Serialize(src, p)
	require.NoError(t, err)
	require.Len(t, words, 2)
	require.Len(t, stream, 64)
	for c, b := range stream {
		// only the last cycle of each 4-cycle period carries data, and only the
		// first word is all ones
		want := c%4 == 3 && c < 32
		require.Equalf(t, want, b, "cycle %d", c)
	}
}

func TestSerializeZeroNumeratorRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := NewMockSource(ctrl) // any Next call fails the test

	_, _, err := Serialize(src, Params{Width: 8, Length: 8, Ratio: Ratio{Num: 0, Den: 8}})
	require.ErrorIs(t, err, ErrInvalidRatio)
	require.True(t, IsValidation(err))
}

func TestSerializeAlignmentErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := NewMockSource(ctrl)

	_, _, err := Serialize(src, Params{Width: 32, Length: 255, Ratio: Full})
	require.ErrorIs(t, err, ErrWordAlignment)
	require.True(t, IsValidation(err))

	_, _, err = Serialize(src, Params{Width: 1, Length: 12, Ratio: Full})
	require.ErrorIs(t, err, ErrByteAlignment)
	require.True(t, IsValidation(err))

	_, _, err = Serialize(src, Params{Width: 0, Length: 8, Ratio: Full})
	require.ErrorIs(t, err, ErrInvalidParams)

	_, _, err = Serialize(src, Params{Width: 8, Length: 0, Ratio: Full})
	require.ErrorIs(t, err, ErrInvalidParams)
}

func TestSerializeRejectsOversizedWord(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := NewMockSource(ctrl)
	src.EXPECT().Next(4).Return(big.NewInt(16))

	_, _, err := Serialize(src, Params{Width: 4, Length: 8, Ratio: Full})
	require.ErrorIs(t, err, ErrInputTooBig)
}
