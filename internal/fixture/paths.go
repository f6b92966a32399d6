package fixture

import (
	"os"
	"path/filepath"

	"github.com/fpgacores/testvec/vector"
)

// Paths locates the files of a named fixture inside a directory, using the
// names the simulation testbenches expect.
type Paths struct {
	Dir  string
	Name string
}

func (p Paths) Input() string     { return filepath.Join(p.Dir, p.Name+"_input.bin") }
func (p Paths) Reference() string { return filepath.Join(p.Dir, p.Name+"_reference.bin") }
func (p Paths) Manifest() string  { return filepath.Join(p.Dir, p.Name+".manifest") }

func (p Paths) Variant(v vector.Variant) string {
	return filepath.Join(p.Dir, v.FileName(p.Name))
}

// Exist reports whether the input, reference and every requested variant are
// all present.
func (p Paths) Exist(variants ...vector.Variant) bool {
	files := []string{p.Input(), p.Reference()}
	for _, v := range variants {
		files = append(files, p.Variant(v))
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			return false
		}
	}
	return true
}
