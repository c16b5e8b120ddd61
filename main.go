package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/gzipkit/gzipkit/internal/gzipfile"
)

func main() {
	log.SetFlags(0)
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

// defaultOutput is spec.md §6's default -o/--output value, used
// whenever a single input is being compressed.
const defaultOutput = "a.out"

func run(args []string) error {
	fs := flag.NewFlagSet("gzipkit", flag.ExitOnError)
	output := fs.String("o", "", "output path (default: a.out); only valid with a single matching input")
	fs.StringVar(output, "output", "", "alias for -o")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: gzipkit [-o output] <input>")
	}
	pattern := fs.Arg(0)

	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return fmt.Errorf("expanding %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		matches = []string{pattern} // not a glob pattern, or a pattern matching nothing: try it as a literal path
	}
	if *output != "" && len(matches) > 1 {
		return fmt.Errorf("-o/--output requires a single input, %q matched %d files", pattern, len(matches))
	}

	for _, src := range matches {
		dst := *output
		if dst == "" {
			dst = defaultOutputPath(src, len(matches))
		}
		if err := compressToGzip(src, dst); err != nil {
			return fmt.Errorf("%s: %w", src, err)
		}
	}
	return nil
}

// defaultOutputPath honors spec.md §6's a.out default for the common
// single-input case; a glob matching more than one file has no single
// a.out to share, so each match falls back to <match>.gz instead.
func defaultOutputPath(src string, nMatches int) string {
	if nMatches == 1 {
		return defaultOutput
	}
	return src + ".gz"
}

// compressToGzip reads src, gzip-compresses it, and writes the result
// to dst, matching spec.md §6's required entry point.
func compressToGzip(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if err := gzipfile.WriteMember(out, filepath.Base(src), info.ModTime(), in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}
