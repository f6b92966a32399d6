package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fpgacores/testvec/internal/config"
	"github.com/fpgacores/testvec/internal/fixture"
	"github.com/fpgacores/testvec/vector"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fatalf("config: %v", err)
	}

	var (
		width, length  int
		ratioStr       string
		seed           int64
		source         string
		dir, name      string
		input, refPath string
		manifest       bool
	)
	flag.IntVar(&width, "width", 32, "data width in bits (>0)")
	flag.IntVar(&length, "length", 256*32, "number of ratio periods; length*num data bits are emitted")
	flag.StringVar(&ratioStr, "ratio", "1/1", "valid cycles per period as num/den")
	flag.Int64Var(&seed, "seed", cfg.Seed, "word source seed")
	flag.StringVar(&source, "source", cfg.Source, "word source: math|chacha20")
	flag.StringVar(&dir, "dir", cfg.OutDir, "output directory when -input/-reference are not given")
	flag.StringVar(&name, "name", "", "fixture name; writes <dir>/<name>_input.bin and <dir>/<name>_reference.bin")
	flag.StringVar(&input, "input", "", "packed input file path")
	flag.StringVar(&refPath, "reference", "", "reference file path")
	flag.BoolVar(&manifest, "manifest", true, "also write <name>.manifest (requires -name)")
	flag.Parse()

	ratio, err := vector.ParseRatio(ratioStr)
	if err != nil {
		fatalf("%v", err)
	}
	p := vector.Params{Width: width, Length: length, Ratio: ratio}
	if err := p.Validate(); err != nil {
		fatalf("%v", err)
	}
	paths := fixture.Paths{Dir: dir, Name: name}
	if input == "" || refPath == "" {
		if name == "" {
			fatalf("either -name or both -input and -reference are required")
		}
		if input == "" {
			input = paths.Input()
		}
		if refPath == "" {
			refPath = paths.Reference()
		}
	}

	src, err := vector.NewSource(source, seed)
	if err != nil {
		fatalf("%v", err)
	}
	v, err := vector.Generate(src, p)
	if err != nil {
		fatalf("generate: %v", err)
	}
	for _, f := range []string{input, refPath} {
		if err := os.MkdirAll(filepath.Dir(f), 0o755); err != nil {
			fatalf("mkdir %s: %v", filepath.Dir(f), err)
		}
	}
	if err := v.WriteFiles(input, refPath); err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("wrote %s (%d bytes, %d cycles)\n", input, len(v.Packed), p.Cycles())
	fmt.Printf("wrote %s (%d words x %d digits)\n", refPath, len(v.Words), p.Digits())

	if manifest && name != "" {
		m, err := fixture.Build(name, source, seed, v, input, refPath)
		if err != nil {
			fatalf("manifest: %v", err)
		}
		if err := os.MkdirAll(filepath.Dir(paths.Manifest()), 0o755); err != nil {
			fatalf("mkdir: %v", err)
		}
		if err := m.Save(paths.Manifest()); err != nil {
			fatalf("manifest: %v", err)
		}
		fmt.Printf("wrote %s\n", paths.Manifest())
	}
}

func fatalf(f string, a ...any) { fmt.Fprintf(os.Stderr, f+"\n", a...); os.Exit(1) }
