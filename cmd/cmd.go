package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rubiojr/sidgen/preprocess"
	"github.com/rubiojr/sidgen/sid"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// defaultExts is the extension filter applied when a directory is
// given to `sidgen process`.
const defaultExts = "c,h,cc,hh,cpp,hpp,cxx,inl"

// Execute runs the sidgen CLI with the given version string.
func Execute(version string) {
	cmd := &cli.Command{
		Name:                   "sidgen",
		Usage:                  "Precompute string-identifier hashes in source files",
		Version:                version,
		UseShortOptionHandling: true,
		// Allow `sidgen file.c` as shorthand for `sidgen process file.c`
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() > 0 {
				if info, err := os.Stat(cmd.Args().First()); err == nil && !info.IsDir() {
					return runBatch(cmd.Args().Slice(), "", nil, 1, nil)
				}
			}
			return cli.DefaultShowRootCommandHelp(cmd)
		},
		Commands: []*cli.Command{
			{
				Name:      "process",
				Usage:     "Rewrite SID(\"...\") invocations into hash constants",
				ArgsUsage: "<file|directory>...",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write result to this path instead of in place (single input only)",
					},
					&cli.StringFlag{
						Name:    "ext",
						Aliases: []string{"e"},
						Usage:   "Comma-separated extensions to match when walking directories",
						Value:   defaultExts,
					},
					&cli.IntFlag{
						Name:    "jobs",
						Aliases: []string{"j"},
						Usage:   "Files processed in parallel",
						Value:   1,
					},
					&cli.BoolFlag{
						Name:  "check-collisions",
						Usage: "Fail when two distinct strings share a hash",
					},
					&cli.BoolFlag{
						Name:    "no-color",
						Aliases: []string{"C"},
						Usage:   "Disable ANSI color output",
					},
				},
				Action: processAction,
			},
			{
				Name:      "hash",
				Usage:     "Print the hash constant for each string argument",
				ArgsUsage: "<string>...",
				Action:    hashAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func processAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: sidgen process [flags] <file|directory>...")
	}

	exts := strings.Split(cmd.String("ext"), ",")
	files, err := collectFiles(cmd.Args().Slice(), exts)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files to process")
	}

	output := cmd.String("output")
	if output != "" && len(files) != 1 {
		return fmt.Errorf("--output requires exactly one input file")
	}

	var tracker *preprocess.CollisionTracker
	if cmd.Bool("check-collisions") {
		tracker = preprocess.NewCollisionTracker()
	}

	jobs := cmd.Int("jobs")
	if jobs < 1 {
		jobs = 1
	}

	var colors *palette
	if !cmd.Bool("no-color") && os.Getenv("NO_COLOR") == "" && term.IsTerminal(int(os.Stderr.Fd())) {
		colors = ansiPalette
	}

	return runBatch(files, output, tracker, jobs, colors)
}

type palette struct {
	ok, fail, reset string
}

var ansiPalette = &palette{ok: "\033[32m", fail: "\033[31m", reset: "\033[0m"}

func (p *palette) wrap(color, s string) string {
	if p == nil {
		return s
	}
	switch color {
	case "ok":
		return p.ok + s + p.reset
	case "fail":
		return p.fail + s + p.reset
	}
	return s
}

// runBatch processes files independently: a failure in one file is
// reported and does not stop the others. Output for each file is
// printed in input order even when processing in parallel.
func runBatch(files []string, output string, tracker *preprocess.CollisionTracker, jobs int, colors *palette) error {
	type fileResult struct {
		modified bool
		err      error
	}
	results := make([]fileResult, len(files))

	process := func(i int) {
		proc := &preprocess.Processor{Collisions: tracker}
		outPath := files[i]
		if output != "" {
			outPath = output
		}
		results[i].modified, results[i].err = proc.ProcessFile(files[i], outPath)
	}

	if jobs == 1 || len(files) == 1 {
		for i := range files {
			process(i)
		}
	} else {
		work := make(chan int, len(files))
		for i := range files {
			work <- i
		}
		close(work)
		var wg sync.WaitGroup
		for range jobs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range work {
					process(i)
				}
			}()
		}
		wg.Wait()
	}

	rewritten, failed := 0, 0
	for i, r := range results {
		if r.err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s %v\n", colors.wrap("fail", "sidgen:"), r.err)
			continue
		}
		if r.modified {
			rewritten++
			fmt.Fprintf(os.Stderr, "%s %s\n", colors.wrap("ok", "rewrote"), files[i])
		}
	}

	if len(files) > 1 {
		fmt.Fprintf(os.Stderr, "%d files, %d rewritten, %d failed\n", len(files), rewritten, failed)
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed", failed)
	}
	return nil
}

// collectFiles expands directory targets into file lists via a
// recursive walk filtered by extension. Explicit file arguments are
// taken as-is, regardless of extension.
func collectFiles(targets, exts []string) ([]string, error) {
	var files []string
	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", target, err)
		}
		if !info.IsDir() {
			files = append(files, target)
			continue
		}
		err = filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && matchesExt(path, exts) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", target, err)
		}
	}
	return files, nil
}

func matchesExt(path string, exts []string) bool {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	for _, e := range exts {
		if ext == strings.TrimSpace(e) {
			return true
		}
	}
	return false
}

func hashAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: sidgen hash <string>...")
	}
	for _, s := range cmd.Args().Slice() {
		fmt.Printf("0x%08x  %q\n", sid.HashString(s), s)
	}
	return nil
}
