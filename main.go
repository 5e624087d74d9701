package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/mattn/go-isatty"
	"github.com/mcncl/jsoncore/internal/analyzer"
	"github.com/mcncl/jsoncore/internal/batch"
	"github.com/mcncl/jsoncore/internal/config"
	"github.com/mcncl/jsoncore/internal/errors"
	"github.com/mcncl/jsoncore/internal/fingerprint"
	"github.com/mcncl/jsoncore/internal/formatter"
	"github.com/mcncl/jsoncore/internal/input"
	"github.com/mcncl/jsoncore/internal/logging"
	"github.com/mcncl/jsoncore/internal/reader"
	"github.com/mcncl/jsoncore/internal/value"
)

// CLI defines the command-line interface
type CLI struct {
	Config   string `help:"Path to a configuration file. Defaults to the nearest .jsoncore.yml." short:"c" type:"path"`
	MaxDepth int    `help:"Maximum nesting depth of arrays and objects (overrides config)."`
	Debug    bool   `help:"Enable debug logging." short:"d"`
	Version  bool   `help:"Show version information." short:"v"`

	Check CheckCmd `cmd:"" help:"Validate JSON files."`
	Fmt   FmtCmd   `cmd:"" default:"withargs" help:"Print the compact canonical form of a JSON document."`
	Hash  HashCmd  `cmd:"" help:"Print a fingerprint of each JSON document."`
	Stats StatsCmd `cmd:"" help:"Print statistics about a JSON document."`
}

// Context holds the runtime context shared by all commands
type Context struct {
	Config *config.Config
	Logger log.Logger
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Version information
const (
	Version = "0.1.0"
)

var errCheckFailed = stderrors.New("some documents are invalid")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run parses args, executes the selected command and returns the exit code
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("jsoncore"),
		kong.Description("A strict JSON parser, formatter and validator"),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "jsoncore: error: %v\n", err)
		var parseErr *kong.ParseError
		if stderrors.As(err, &parseErr) {
			_ = parseErr.Context.PrintUsage(true)
		}
		return 1
	}

	// No arguments at all means interactive formatting
	if len(args) == 0 {
		cli.Fmt.Interactive = true
	}

	if cli.Version {
		fmt.Fprintf(stdout, "jsoncore version %s\n", Version)
		return 0
	}

	app, err := newContext(cli, stdin, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", errors.UserFriendlyError(err))
		return 1
	}

	kctx.BindTo(ctx, (*context.Context)(nil))
	if err := kctx.Run(app); err != nil {
		if stderrors.Is(err, errCheckFailed) {
			_ = level.Debug(app.Logger).Log("msg", "command failed", "err", err)
			return 1
		}
		// Use our custom error handling to provide user-friendly error messages
		fmt.Fprintf(stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(stderr, "\nFor help, run: jsoncore --help\n")
		return 1
	}
	return 0
}

// newContext loads the configuration, applies flag overrides and builds the logger
func newContext(cli *CLI, stdin io.Reader, stdout, stderr io.Writer) (*Context, error) {
	configPath := cli.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	workers := cli.Check.Workers
	if workers == 0 {
		workers = cli.Hash.Workers
	}

	cfg, err := config.LoadConfigWithCLI(configPath, config.Overrides{
		MaxDepth: cli.MaxDepth,
		SortKeys: cli.Fmt.SortKeys,
		KeyCase:  cli.Fmt.KeyCase,
		Workers:  workers,
		Debug:    cli.Debug,
	})
	if err != nil {
		return nil, errors.NewConfigError(err.Error(), err)
	}

	logger, err := logging.New(stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, errors.NewConfigError(err.Error(), err)
	}
	if configPath != "" {
		_ = level.Debug(logger).Log("msg", "loaded configuration", "path", configPath)
	}

	return &Context{
		Config: cfg,
		Logger: logger,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}, nil
}

func (c *Context) newReader() *reader.Reader {
	return reader.New(reader.WithMaxDepth(c.Config.Parser.MaxDepth))
}

func (c *Context) newRunner() (*batch.Runner, error) {
	return batch.NewRunner(c.Config.Batch.Workers, c.newReader(), c.Config.Input.MaxBytes, c.Logger)
}

// CheckCmd validates files concurrently
type CheckCmd struct {
	Files   []string `arg:"" help:"JSON files to validate." type:"path"`
	Workers int      `help:"Number of files parsed concurrently (overrides config)." short:"w"`
	Quiet   bool     `help:"Only report invalid files." short:"q"`
}

// Run reports ok or FAIL for every file
func (c *CheckCmd) Run(ctx context.Context, app *Context) error {
	runner, err := app.newRunner()
	if err != nil {
		return err
	}
	defer runner.Release()

	failed := 0
	for _, res := range runner.Run(ctx, c.Files) {
		if res.Err != nil {
			failed++
			fmt.Fprintf(app.Stdout, "%s %s: %s\n", color.RedString("FAIL"), res.Path, errors.UserFriendlyError(res.Err))
			continue
		}
		if !c.Quiet {
			fmt.Fprintf(app.Stdout, "%s   %s\n", color.GreenString("ok"), res.Path)
		}
	}

	_ = level.Info(app.Logger).Log("msg", "check finished", "files", len(c.Files), "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errCheckFailed, failed, len(c.Files))
	}
	return nil
}

// HashCmd prints order-independent fingerprints
type HashCmd struct {
	Files   []string `arg:"" help:"JSON files to fingerprint." type:"path"`
	Workers int      `help:"Number of files parsed concurrently (overrides config)." short:"w"`
}

// Run prints "<fingerprint>  <path>" for every readable document
func (h *HashCmd) Run(ctx context.Context, app *Context) error {
	runner, err := app.newRunner()
	if err != nil {
		return err
	}
	defer runner.Release()

	failed := 0
	for _, res := range runner.Run(ctx, h.Files) {
		if res.Err != nil {
			failed++
			fmt.Fprintf(app.Stderr, "%s: %s\n", res.Path, errors.UserFriendlyError(res.Err))
			continue
		}
		fmt.Fprintf(app.Stdout, "%s  %s\n", fingerprint.String(res.Value), res.Path)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errCheckFailed, failed, len(h.Files))
	}
	return nil
}

// FmtCmd prints the canonical serialization of one document
type FmtCmd struct {
	File        string `arg:"" optional:"" help:"Path to input JSON file. If not specified, reads from stdin." type:"path"`
	Output      string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	SortKeys    bool   `help:"Sort object keys (overrides config)." short:"s"`
	KeyCase     string `help:"Rewrite object keys: snake, kebab, camel or lower_camel (overrides config)." short:"k"`
	Interactive bool   `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Run parses, reformats and writes the document
func (f *FmtCmd) Run(app *Context) error {
	doc, _, err := app.readDocument(f.File, f.Interactive)
	if err != nil {
		return err
	}

	fm, err := formatter.New(app.Config.Output)
	if err != nil {
		return errors.NewConfigError("invalid output settings", err)
	}
	out, err := fm.Format(doc)
	if err != nil {
		return errors.NewOutputError("failed to format JSON", err)
	}

	return app.writeOutput(f.Output, out)
}

// StatsCmd summarizes one document
type StatsCmd struct {
	File        string `arg:"" optional:"" help:"Path to input JSON file. If not specified, reads from stdin." type:"path"`
	Interactive bool   `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Run prints the analyzer report
func (s *StatsCmd) Run(app *Context) error {
	doc, size, err := app.readDocument(s.File, s.Interactive)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprint(app.Stdout, analyzer.Analyze(doc).Report(size)); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readDocument loads JSON from a file or stdin and parses it, returning the
// document and its decompressed size
func (c *Context) readDocument(path string, interactive bool) (value.Value, int, error) {
	data, err := c.readInput(path, interactive)
	if err != nil {
		return value.Null(), 0, err
	}
	_ = level.Debug(c.Logger).Log("msg", "read input", "bytes", len(data))

	doc, err := c.newReader().Parse(data)
	if err != nil {
		return value.Null(), 0, errors.NewParsingError("failed to parse JSON", err)
	}
	return doc, len(data), nil
}

// readInput reads raw bytes from file or stdin
func (c *Context) readInput(path string, interactive bool) ([]byte, error) {
	if path != "" {
		return input.LoadFile(path, c.Config.Input.MaxBytes)
	}

	if isTerminal(c.Stdin) {
		if !interactive {
			return nil, errors.NewInputError("no input provided", errors.ErrNoInput)
		}
		fmt.Fprintln(c.Stderr, "jsoncore interactive mode")
		fmt.Fprintln(c.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")
		data, err := input.ReadAll(c.Stdin, c.Config.Input.MaxBytes)
		if err != nil {
			return nil, err
		}
		fmt.Fprintln(c.Stderr, "\nProcessing JSON...")
		return data, nil
	}

	return input.ReadAll(c.Stdin, c.Config.Input.MaxBytes)
}

// writeOutput writes text to a file or stdout
func (c *Context) writeOutput(path, text string) error {
	if path != "" {
		if err := os.WriteFile(path, []byte(text+"\n"), 0o644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", path), err)
		}
		fmt.Fprintf(c.Stderr, "Formatted JSON written to %s\n", path)
		return nil
	}

	if _, err := fmt.Fprintln(c.Stdout, text); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// isTerminal reports whether r is an interactive terminal
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
