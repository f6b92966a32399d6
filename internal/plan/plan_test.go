package plan

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fpgacores/testvec/vector"
)

func TestUnmarshalPlan(t *testing.T) {
	data := []byte(`{
		"seed": -3,
		"source": "chacha20",
		"jobs": [
			{"name": "a", "width": 8, "length": 64},
			{"name": "b", "width": 32, "length": 256, "num": 1, "den": 8, "variants": ["single", "2"]},
			{"name": "c", "width": 1, "length": 8, "unknown": true}
		]
	}`)
	p, err := Unmarshal(data)
	require.NoError(t, err)
	require.Equal(t, int64(-3), p.Seed)
	require.Equal(t, "chacha20", p.Source)
	require.Len(t, p.Jobs, 3)
	require.Equal(t, vector.Full, p.Jobs[0].Params().Ratio)
	require.Equal(t, vector.Params{Width: 32, Length: 256, Ratio: vector.Ratio{Num: 1, Den: 8}}, p.Jobs[1].Params())
	require.Equal(t, []vector.Variant{vector.VariantSingle, vector.VariantDouble}, p.Jobs[1].Variants)
	require.NoError(t, p.Validate())
}

func TestUnmarshalRejectsBadVariant(t *testing.T) {
	_, err := Unmarshal([]byte(`{"jobs": [{"name": "a", "variants": ["triple"]}]}`))
	require.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	p := Default(7, vector.SourceMath)
	b, err := Marshal(p)
	require.NoError(t, err)
	got, err := Unmarshal(b)
	require.NoError(t, err)
	require.Equal(t, p, got)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	p := &Plan{Seed: 1, Source: "math", Jobs: []Job{{Name: "x", Width: 4, Length: 8}}}
	require.NoError(t, Save(path, p))
	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, p, got)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		plan Plan
		is   error
	}{
		{"duplicate", Plan{Jobs: []Job{{Name: "a", Width: 8, Length: 8}, {Name: "a", Width: 8, Length: 8}}}, ErrDuplicateJob},
		{"zero numerator", Plan{Jobs: []Job{{Name: "a", Width: 8, Length: 8, Den: 4}}}, vector.ErrInvalidRatio},
		{"word alignment", Plan{Jobs: []Job{{Name: "a", Width: 3, Length: 8}}}, vector.ErrWordAlignment},
		{"byte alignment", Plan{Jobs: []Job{{Name: "a", Width: 2, Length: 6}}}, vector.ErrByteAlignment},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.plan.Validate(), tt.is)
		})
	}

	require.Error(t, (&Plan{Jobs: []Job{{Width: 8, Length: 8}}}).Validate())
	require.Error(t, (&Plan{Source: "dice"}).Validate())
}

func TestDefaultPlan(t *testing.T) {
	p := Default(1, vector.SourceMath)
	require.NoError(t, p.Validate())

	byName := map[string]Job{}
	for _, j := range p.Jobs {
		byName[j.Name] = j
	}
	for _, w := range []int{1, 8, 32} {
		j, ok := byName[fmt.Sprintf("file_reader_data_width_%d", w)]
		require.True(t, ok)
		require.Equal(t, 256*w, j.Length)
		require.Equal(t, 256, j.Params().WordCount())
	}
	fc := byName["file_compare"]
	require.Equal(t, 32, fc.Width)
	require.Equal(t, []vector.Variant{vector.VariantSingle, vector.VariantDouble}, fc.Variants)
}
