package main

import (
	"bufio"
	"encoding/csv"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/fpgacores/testvec/internal/config"
	"github.com/fpgacores/testvec/internal/fixture"
	"github.com/fpgacores/testvec/internal/index"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fatalf("config: %v", err)
	}
	defIndex := cfg.IndexPath
	if defIndex == "" {
		defIndex = filepath.Join(cfg.OutDir, "fixtures.db")
	}

	var indexPath, outPath, csvPath, verifyDir, remove string
	flag.StringVar(&indexPath, "index", defIndex, "fixture index database")
	flag.StringVar(&outPath, "out", "-", "markdown summary path (- for stdout, empty to skip)")
	flag.StringVar(&csvPath, "csv", "", "also export the index as CSV")
	flag.StringVar(&verifyDir, "verify", "", "check the fixtures in this directory against their manifests")
	flag.StringVar(&remove, "delete", "", "drop a fixture from the index so the next suite run regenerates it")
	flag.Parse()

	idx, err := index.Open(indexPath)
	if err != nil {
		fatalf("%v", err)
	}
	defer idx.Close()

	if remove != "" {
		if err := idx.Delete(remove); err != nil {
			idx.Close()
			fatalf("delete %s: %v", remove, err)
		}
		fmt.Fprintf(os.Stderr, "removed %s from %s\n", remove, indexPath)
	}

	ms, err := idx.List()
	if err != nil {
		idx.Close()
		fatalf("%v", err)
	}

	if outPath != "" {
		if err := writeTo(outPath, func(w io.Writer) error { return writeSummary(w, indexPath, ms) }); err != nil {
			idx.Close()
			fatalf("%v", err)
		}
	}
	if csvPath != "" {
		if err := writeTo(csvPath, func(w io.Writer) error { return writeCSV(w, ms) }); err != nil {
			idx.Close()
			fatalf("%v", err)
		}
	}
	if verifyDir != "" {
		bad := verifyAll(os.Stderr, verifyDir, ms)
		if bad > 0 {
			idx.Close()
			fatalf("%d of %d fixtures failed verification", bad, len(ms))
		}
		fmt.Fprintf(os.Stderr, "verified %d fixtures in %s\n", len(ms), verifyDir)
	}
}

func writeTo(path string, fn func(io.Writer) error) error {
	if path == "-" {
		return fn(os.Stdout)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if err := fn(w); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", path)
	return nil
}

// sortByShape orders fixtures by width, then length, then name.
func sortByShape(ms []*fixture.Manifest) []*fixture.Manifest {
	out := append([]*fixture.Manifest(nil), ms...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Width != out[j].Width {
			return out[i].Width < out[j].Width
		}
		if out[i].Length != out[j].Length {
			return out[i].Length < out[j].Length
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func writeSummary(w io.Writer, source string, ms []*fixture.Manifest) error {
	byWidth := map[int][]*fixture.Manifest{}
	for _, m := range sortByShape(ms) {
		byWidth[m.Width] = append(byWidth[m.Width], m)
	}
	widths := make([]int, 0, len(byWidth))
	for wd := range byWidth {
		widths = append(widths, wd)
	}
	sort.Ints(widths)

	fmt.Fprintln(w, "# Test vector fixtures")
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Source: %s. %d fixtures grouped by data width.\n", source, len(ms))
	fmt.Fprintln(w, "")
	for _, wd := range widths {
		fmt.Fprintf(w, "## data width %d\n\n", wd)
		fmt.Fprintln(w, "| name | length | ratio | words | input bytes | source | seed |")
		fmt.Fprintln(w, "|---|---:|---:|---:|---:|---|---:|")
		for _, m := range byWidth[wd] {
			fmt.Fprintf(w, "| %s | %d | %d/%d | %d | %d | %s | %d |\n",
				m.Name, m.Length, m.Num, m.Den, m.Words, m.InputSize, m.Source, m.Seed)
		}
		if _, err := fmt.Fprintln(w, ""); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(w io.Writer, ms []*fixture.Manifest) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"name", "width", "length", "num", "den", "words", "source", "seed",
		"input_size", "input_sha256", "reference_size", "reference_sha256"})
	for _, m := range sortByShape(ms) {
		_ = cw.Write([]string{
			m.Name,
			strconv.Itoa(m.Width),
			strconv.Itoa(m.Length),
			strconv.Itoa(m.Num),
			strconv.Itoa(m.Den),
			strconv.FormatUint(m.Words, 10),
			m.Source,
			strconv.FormatInt(m.Seed, 10),
			strconv.FormatUint(m.InputSize, 10),
			hex.EncodeToString(m.InputSHA256[:]),
			strconv.FormatUint(m.ReferenceSize, 10),
			hex.EncodeToString(m.ReferenceSHA256[:]),
		})
	}
	cw.Flush()
	return cw.Error()
}

func verifyAll(w io.Writer, dir string, ms []*fixture.Manifest) int {
	bad := 0
	for _, m := range ms {
		paths := fixture.Paths{Dir: dir, Name: m.Name}
		if err := m.Verify(paths.Input(), paths.Reference()); err != nil {
			fmt.Fprintf(w, "%s: %v\n", m.Name, err)
			bad++
		}
	}
	return bad
}

func fatalf(f string, a ...any) { fmt.Fprintf(os.Stderr, f+"\n", a...); os.Exit(1) }
