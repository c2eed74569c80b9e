package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	shelldeck "github.com/reoring/shelldeck"
	"github.com/reoring/shelldeck/deckfile"
	"github.com/reoring/shelldeck/i18n"
	"github.com/reoring/shelldeck/statements"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "build":
		buildCmd(os.Args[2:])
	case "check":
		checkCmd(os.Args[2:])
	case "tags":
		tagsCmd(os.Stdout)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "sddeck CLI\n\nUsage:\n  sddeck build -in deck.yaml -o out.inp [-config cfg.yaml] [-level normal] [-deferred] [-report report.json]\n  sddeck check -in deck.yaml [-config cfg.yaml] [-level strict]\n  sddeck tags\n\nNotes:\n  - build validates and writes the deck; nothing is written when validation fails.\n  - check prints a JSON report and exits 1 when errors are found.")
}

// common holds the flags shared by build and check.
type common struct {
	in        string
	config    string
	level     string
	lang      string
	deferred  bool
	verbose   bool
	logFormat string
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.in, "in", "", "deck description (YAML)")
	fs.StringVar(&c.config, "config", "", "validation config (YAML)")
	fs.StringVar(&c.level, "level", "", "validation level: disabled|normal|strict (overrides config)")
	fs.StringVar(&c.lang, "lang", "en", "message language: en|ja")
	fs.BoolVar(&c.deferred, "deferred", false, "run cross-object rules at finalize only")
	fs.BoolVar(&c.verbose, "v", false, "debug logging")
	fs.StringVar(&c.logFormat, "log-format", "text", "log format: text|json")
}

// model loads configuration and the deck, with rules registered once into
// the default registry.
func (c *common) model() (*shelldeck.Model, error) {
	if c.in == "" {
		return nil, fmt.Errorf("-in is required")
	}
	i18n.SetLanguage(c.lang)
	logger := newLogger(os.Stderr, c.logFormat, c.verbose)
	slog.SetDefault(logger)
	if err := statements.Register(shelldeck.DefaultRegistry); err != nil {
		return nil, err
	}
	opts := []shelldeck.Option{shelldeck.WithLogger(logger)}
	if c.config != "" {
		f, err := os.Open(c.config)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		cfg, err := shelldeck.LoadConfig(f)
		if err != nil {
			return nil, err
		}
		opts = append(opts, shelldeck.WithConfig(cfg))
	}
	if c.level != "" {
		lvl, err := shelldeck.ParseLevel(c.level)
		if err != nil {
			return nil, err
		}
		opts = append(opts, shelldeck.WithLevel(lvl))
	}
	if c.deferred {
		opts = append(opts, shelldeck.WithCrossObject(false))
	}
	f, err := os.Open(c.in)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return deckfile.Build(f, opts...)
}

func newLogger(w io.Writer, format string, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	ho := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, ho))
	}
	return slog.New(slog.NewTextHandler(w, ho))
}

func buildCmd(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	var c common
	var out, report string
	c.register(fs)
	fs.StringVar(&out, "o", "", "output filename (default stdout)")
	fs.StringVar(&report, "report", "", "write a JSON validation report to this file")
	_ = fs.Parse(args)

	m, err := c.model()
	if err != nil {
		fatalf("build: %v", err)
	}
	text, err := m.Render()
	if report != "" {
		if rerr := writeReportFile(report, m.Report()); rerr != nil {
			fatalf("report: %v", rerr)
		}
	}
	if err != nil {
		fatalf("build: %v", err)
	}
	if out == "" {
		fmt.Print(text)
		return
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		fatalf("creating output dir: %v", err)
	}
	if err := os.WriteFile(out, []byte(text), 0o644); err != nil {
		fatalf("writing output: %v", err)
	}
}

func checkCmd(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	var c common
	c.register(fs)
	_ = fs.Parse(args)

	m, err := c.model()
	if m == nil {
		fatalf("check: %v", err)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "check: %v\n", err)
	}
	r := m.Report()
	if werr := shelldeck.WriteReport(os.Stdout, r); werr != nil {
		fatalf("report: %v", werr)
	}
	if err != nil || !r.OK() {
		os.Exit(1)
	}
}

func tagsCmd(w io.Writer) {
	for _, t := range statements.Catalog().Tags() {
		fmt.Fprintln(w, t)
	}
}

func writeReportFile(path string, r shelldeck.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := shelldeck.WriteReport(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
