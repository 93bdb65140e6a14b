// cfgbin decodes RDBN and T2B cfg.bin containers and exports their tables.
//
// Usage:
//
//	cfgbin [flags] FILE...
//
// Each FILE is decoded independently and written next to itself as FILE.json (or
// .yaml/.cbor, followed by the codec suffix when compression is enabled). With
// --summary the tables and schemas are printed instead and nothing is written.
//
// Settings come from the defaults, then the file given with --config, then flags.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/arloliu/cfgbin"
	"github.com/arloliu/cfgbin/config"
	"github.com/arloliu/cfgbin/export"
	"github.com/arloliu/cfgbin/internal/hash"
)

// Exit codes.
const (
	exitOK     = 0
	exitFailed = 1 // at least one file failed
	exitUsage  = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type invocation struct {
	cfg     *config.Config
	summary bool
	paths   []string
}

func run(args []string, stdout, stderr io.Writer) int {
	inv, err := parseArgs(args, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	logger := newLogger(stderr, inv.cfg)

	exporter, err := export.New(
		export.WithFormat(inv.cfg.ExportFormat()),
		export.WithCompression(inv.cfg.Compression()),
		export.WithIndent(inv.cfg.Output.Indent),
	)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	p := &processor{
		logger:    logger,
		exporter:  exporter,
		outputDir: inv.cfg.Output.Directory,
		summary:   inv.summary,
	}

	results := p.processAll(inv.paths, inv.cfg.Jobs)

	code := exitOK
	for _, res := range results {
		if res.err != nil {
			logger.Error("decode failed", "file", res.path, "error", res.err)
			code = exitFailed

			continue
		}

		if res.summary != nil {
			if _, err := stdout.Write(res.summary); err != nil {
				logger.Error("write summary", "error", err)
				return exitFailed
			}
		}
	}

	return code
}

func parseArgs(args []string, stderr io.Writer) (*invocation, error) {
	defaults := config.Default()

	var (
		configPath string
		summary    bool
		flagged    = *defaults
	)

	flagSet := pflag.NewFlagSet("cfgbin", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.Usage = func() {
		fmt.Fprintf(stderr, "Usage: cfgbin [flags] FILE...\n\nDecode cfg.bin containers and export their tables.\n\nFlags:\n")
		flagSet.PrintDefaults()
	}

	flagSet.StringVarP(&configPath, "config", "c", "", "configuration file (.yaml, .toml, .json, .jsonc)")
	flagSet.BoolVarP(&summary, "summary", "s", false, "print tables and schemas instead of exporting")
	flagSet.StringVarP(&flagged.Output.Format, "format", "f", defaults.Output.Format, "export format: json, yaml or cbor")
	flagSet.StringVar(&flagged.Output.Compression, "compression", defaults.Output.Compression, "output codec: none, zstd, s2 or lz4")
	flagSet.StringVarP(&flagged.Output.Directory, "output-dir", "o", defaults.Output.Directory, "output directory (default: next to each input)")
	flagSet.IntVar(&flagged.Output.Indent, "indent", defaults.Output.Indent, "JSON and YAML indentation width")
	flagSet.StringVar(&flagged.Log.Level, "log-level", defaults.Log.Level, "log level: debug, info, warn or error")
	flagSet.StringVar(&flagged.Log.Format, "log-format", defaults.Log.Format, "log format: text or json")
	flagSet.IntVarP(&flagged.Jobs, "jobs", "j", defaults.Jobs, "files decoded concurrently (0: one per CPU)")

	if err := flagSet.Parse(args); err != nil {
		return nil, err
	}

	cfg := defaults
	if configPath != "" {
		loaded, err := config.Load(normalizePath(configPath))
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	overrides := map[string]func(){
		"format":      func() { cfg.Output.Format = flagged.Output.Format },
		"compression": func() { cfg.Output.Compression = flagged.Output.Compression },
		"output-dir":  func() { cfg.Output.Directory = normalizePath(flagged.Output.Directory) },
		"indent":      func() { cfg.Output.Indent = flagged.Output.Indent },
		"log-level":   func() { cfg.Log.Level = flagged.Log.Level },
		"log-format":  func() { cfg.Log.Format = flagged.Log.Format },
		"jobs":        func() { cfg.Jobs = flagged.Jobs },
	}
	for name, apply := range overrides {
		if flagSet.Changed(name) {
			apply()
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return nil, errors.New("no input files")
	}

	paths := make([]string, 0, flagSet.NArg())
	for _, arg := range flagSet.Args() {
		if path := normalizePath(arg); path != "" {
			paths = append(paths, path)
		}
	}

	return &invocation{cfg: cfg, summary: summary, paths: paths}, nil
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}
	if cfg.JSONLogs() {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

type processor struct {
	logger    *slog.Logger
	exporter  *export.Exporter
	outputDir string
	summary   bool
}

type fileResult struct {
	path    string
	output  string
	summary []byte
	err     error
}

// processAll handles every path with at most jobs files in flight. A failing file does
// not stop the others; results keep the order of paths.
func (p *processor) processAll(paths []string, jobs int) []fileResult {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	results := make([]fileResult, len(paths))

	var g errgroup.Group
	g.SetLimit(jobs)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			results[i] = p.process(path)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (p *processor) process(path string) fileResult {
	res := fileResult{path: path}
	logger := p.logger.With("file", path)

	file, err := openMapped(path)
	if err != nil {
		res.err = err
		return res
	}
	defer file.Close()

	data := file.Bytes()
	logger.Debug("mapped input", "size", humanize.IBytes(uint64(len(data))), "blake3", hash.Digest(data))

	db, err := cfgbin.Parse(data, cfgbin.WithLogger(logger))
	if err != nil {
		res.err = err
		return res
	}

	if p.summary {
		var buf bytes.Buffer
		if err := writeSummary(&buf, path, len(data), db); err != nil {
			res.err = err
			return res
		}
		res.summary = buf.Bytes()

		return res
	}

	output, stats, err := p.exporter.WriteFile(db, path, data, p.outputDir)
	if err != nil {
		res.err = err
		return res
	}
	res.output = output

	logger.Info("exported",
		"output", output,
		"tables", len(db.Tables()),
		"size", humanize.IBytes(uint64(stats.OriginalSize)),     //nolint:gosec
		"written", humanize.IBytes(uint64(stats.CompressedSize)), //nolint:gosec
	)

	return res
}
