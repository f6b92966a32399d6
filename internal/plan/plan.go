package plan

import (
	"errors"
	"fmt"
	"os"

	"github.com/francoispqt/gojay"

	"github.com/fpgacores/testvec/vector"
)

var ErrDuplicateJob = errors.New("plan: duplicate job name")

// Job describes one fixture pair. Num and Den both zero mean a full duty
// cycle.
type Job struct {
	Name     string
	Width    int
	Length   int
	Num      int
	Den      int
	Variants []vector.Variant
}

func (j *Job) Params() vector.Params {
	r := vector.Ratio{Num: j.Num, Den: j.Den}
	if j.Num == 0 && j.Den == 0 {
		r = vector.Full
	}
	return vector.Params{Width: j.Width, Length: j.Length, Ratio: r}
}

// Plan is a batch of fixtures sharing a source kind. Job i is generated from
// seed Seed+i, so results do not depend on scheduling.
type Plan struct {
	Seed   int64
	Source string
	Jobs   []Job
}

func (p *Plan) Validate() error {
	if _, err := vector.NewSource(p.Source, p.Seed); err != nil {
		return err
	}
	seen := make(map[string]bool, len(p.Jobs))
	for i := range p.Jobs {
		j := &p.Jobs[i]
		if j.Name == "" {
			return fmt.Errorf("plan: job %d has no name", i)
		}
		if seen[j.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateJob, j.Name)
		}
		seen[j.Name] = true
		if err := j.Params().Validate(); err != nil {
			return fmt.Errorf("job %s: %w", j.Name, err)
		}
	}
	return nil
}

func (p *Plan) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Int64Key("seed", p.Seed)
	enc.StringKey("source", p.Source)
	enc.ArrayKey("jobs", jobs(p.Jobs))
}

func (p *Plan) IsNil() bool { return p == nil }

func (p *Plan) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	switch key {
	case "seed":
		return dec.Int64(&p.Seed)
	case "source":
		return dec.String(&p.Source)
	case "jobs":
		js := jobs(p.Jobs)
		if err := dec.Array(&js); err != nil {
			return err
		}
		p.Jobs = js
	}
	return nil
}

func (p *Plan) NKeys() int { return 3 }

type jobs []Job

func (js jobs) MarshalJSONArray(enc *gojay.Encoder) {
	for i := range js {
		enc.Object(&js[i])
	}
}

func (js jobs) IsNil() bool { return len(js) == 0 }

func (js *jobs) UnmarshalJSONArray(dec *gojay.Decoder) error {
	var j Job
	if err := dec.Object(&j); err != nil {
		return err
	}
	*js = append(*js, j)
	return nil
}

func (j *Job) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("name", j.Name)
	enc.IntKey("width", j.Width)
	enc.IntKey("length", j.Length)
	enc.IntKeyOmitEmpty("num", j.Num)
	enc.IntKeyOmitEmpty("den", j.Den)
	enc.ArrayKeyOmitEmpty("variants", variants(j.Variants))
}

func (j *Job) IsNil() bool { return j == nil }

func (j *Job) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	switch key {
	case "name":
		return dec.String(&j.Name)
	case "width":
		return dec.Int(&j.Width)
	case "length":
		return dec.Int(&j.Length)
	case "num":
		return dec.Int(&j.Num)
	case "den":
		return dec.Int(&j.Den)
	case "variants":
		vs := variants(j.Variants)
		if err := dec.Array(&vs); err != nil {
			return err
		}
		j.Variants = vs
	}
	return nil
}

func (j *Job) NKeys() int { return 6 }

type variants []vector.Variant

func (vs variants) MarshalJSONArray(enc *gojay.Encoder) {
	for _, v := range vs {
		enc.String(v.String())
	}
}

func (vs variants) IsNil() bool { return len(vs) == 0 }

func (vs *variants) UnmarshalJSONArray(dec *gojay.Decoder) error {
	var s string
	if err := dec.String(&s); err != nil {
		return err
	}
	v, err := vector.ParseVariant(s)
	if err != nil {
		return err
	}
	*vs = append(*vs, v)
	return nil
}

func Marshal(p *Plan) ([]byte, error) {
	return gojay.MarshalJSONObject(p)
}

func Unmarshal(data []byte) (*Plan, error) {
	p := new(Plan)
	if err := gojay.UnmarshalJSONObject(data, p); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	return p, nil
}

// Load reads a JSON plan from path.
func Load(path string) (*Plan, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := Unmarshal(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func Save(path string, p *Plan) error {
	b, err := Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
