package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fpgacores/testvec/vector"
)

func main() {
	var refPath, variantStr, out string
	flag.StringVar(&refPath, "reference", "", "reference file to corrupt")
	flag.StringVar(&variantStr, "variant", "all", "single|double|all")
	flag.StringVar(&out, "out", "", "output path (single variant only; default derived from the reference name)")
	flag.Parse()
	if refPath == "" {
		fatalf("-reference is required")
	}

	var variants []vector.Variant
	if variantStr == "all" {
		variants = []vector.Variant{vector.VariantSingle, vector.VariantDouble}
	} else {
		v, err := vector.ParseVariant(variantStr)
		if err != nil {
			fatalf("%v", err)
		}
		variants = []vector.Variant{v}
	}
	if out != "" && len(variants) > 1 {
		fatalf("-out needs a single -variant")
	}

	// <name>_reference.bin -> <name>
	base := filepath.Base(refPath)
	name := strings.TrimSuffix(strings.TrimSuffix(base, ".bin"), "_reference")
	for _, v := range variants {
		dst := out
		if dst == "" {
			dst = filepath.Join(filepath.Dir(refPath), v.FileName(name))
		}
		if err := vector.CorruptFile(refPath, dst, v); err != nil {
			fatalf("%s: %v", v, err)
		}
		fmt.Printf("wrote %s (%s)\n", dst, v)
	}
}

func fatalf(f string, a ...any) { fmt.Fprintf(os.Stderr, f+"\n", a...); os.Exit(1) }
