package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"github.com/mcncl/jsonbeautifier/internal/config"
	"github.com/mcncl/jsonbeautifier/internal/errors"
	"github.com/mcncl/jsonbeautifier/internal/logging"
	"github.com/mcncl/jsonbeautifier/internal/parser"
	"github.com/mcncl/jsonbeautifier/internal/printer"
	"github.com/mcncl/jsonbeautifier/internal/session"
	"github.com/mcncl/jsonbeautifier/internal/state"
	"github.com/mcncl/jsonbeautifier/internal/theme"
	"github.com/mcncl/jsonbeautifier/internal/tui"
	"github.com/mcncl/jsonbeautifier/internal/watch"
)

// CLI defines the command-line interface
var CLI struct {
	Input         string `help:"Path to input JSON file. If not specified, reads from stdin when piped." short:"i" type:"path"`
	Output        string `help:"Path to write the formatted document to (print mode)." short:"o" type:"path"`
	Config        string `help:"Path to config file. Searched for upwards from the current directory if not specified." short:"c" type:"path"`
	JWT           bool   `help:"Decode the input as a JSON Web Token." short:"j"`
	Search        string `help:"Initial search term." short:"s"`
	Query         string `help:"Show only the value at this gjson path, e.g. 'payload.sub' or 'items.0'." short:"q"`
	Theme         string `help:"Color theme: blue, green, yellow, red or white." short:"t"`
	Print         bool   `help:"Print the formatted document instead of opening the interface." short:"P"`
	Compact       bool   `help:"Print minified JSON (print mode)."`
	CollapseDepth int    `help:"Collapse nodes at this depth and below. 0 keeps everything expanded." default:"-1"`
	Watch         bool   `help:"Reload the input file when it changes." short:"w"`
	NoColor       bool   `help:"Disable colored output."`
	Debug         bool   `help:"Enable debug logging." short:"d"`
	Version       bool   `help:"Show version information." short:"v"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	// Parse CLI arguments with Kong
	parser := kong.Must(&CLI,
		kong.Name("jsonbeautifier"),
		kong.Description("Format, explore and search JSON documents and JWTs"),
		kong.UsageOnError(),
	)

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		// If there's an error parsing arguments, the usage will already be shown by kong.UsageOnError()
		os.Exit(1)
	}

	// Show version and exit if requested
	if CLI.Version {
		fmt.Printf("jsonbeautifier version %s\n", Version)
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fail(err)
	}

	if err := run(&Context{Debug: CLI.Debug, Config: cfg}); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
	fmt.Fprintf(os.Stderr, "\nFor help, run: jsonbeautifier --help\n")
	os.Exit(1)
}

// loadConfig loads the config file, if any, and applies the CLI flags on top
func loadConfig() (*config.Config, error) {
	path := CLI.Config
	if path == "" {
		path = config.FindConfigFile()
	}

	overrides := config.Overrides{
		Theme:   CLI.Theme,
		JWT:     CLI.JWT,
		NoColor: CLI.NoColor,
		Debug:   CLI.Debug,
	}
	if CLI.CollapseDepth >= 0 {
		depth := CLI.CollapseDepth
		overrides.CollapseDepth = &depth
	}

	cfg, err := config.LoadConfigWithCLI(path, overrides)
	if err != nil {
		return nil, errors.NewConfigError("failed to load configuration", err)
	}
	return cfg, nil
}

// run executes the main program logic
func run(ctx *Context) error {
	if ctx.Config == nil {
		ctx.Config = config.NewConfig()
	}
	if CLI.Watch && CLI.Input == "" {
		return errors.NewInputError("--watch requires an input file", errors.ErrNoInput)
	}

	if printMode() {
		return runPrint(ctx)
	}
	return runInteractive(ctx)
}

// printMode reports whether output goes to stdout instead of the interface
func printMode() bool {
	return CLI.Print || !isTerminal(os.Stdout)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// runPrint formats the input once and writes it out, then keeps reprinting
// on every change when watching
func runPrint(ctx *Context) error {
	cfg := ctx.Config
	logger := logging.New(cfg.Log.Level, os.Stderr)
	logging.SetDefault(logger)

	if CLI.Input == "" && isTerminal(os.Stdin) {
		return errors.NewInputError("no input provided", errors.ErrNoInput)
	}
	text, err := readInput()
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	sess := newSession(cfg, logger)
	loadDocument(sess, text)
	if err := printDocument(sess, cfg, logger); err != nil {
		return err
	}
	if !CLI.Watch {
		return nil
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	runCtx := logging.WithLogger(sigCtx, logger)

	w, err := startWatcher(runCtx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	for u := range w.Updates() {
		if u.Err != nil {
			logger.Warn("reload failed", logging.FieldPath, u.Path, logging.FieldError, u.Err)
			continue
		}
		sess.SetInput(u.Content)
		if err := printDocument(sess, cfg, logger); err != nil {
			logger.Error("reload rejected", logging.FieldPath, u.Path, logging.FieldError, errors.UserFriendlyError(err))
		}
	}
	return nil
}

// printDocument writes the current document to stdout or the output file
func printDocument(sess *session.Session, cfg *config.Config, logger *log.Logger) error {
	if err := sess.Err(); err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	useColor := colorEnabled(cfg, isTerminal(os.Stdout))
	if CLI.Output != "" {
		f, err := os.Create(CLI.Output)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		defer func() { _ = f.Close() }()
		w = f
		useColor = cfg.Output.Color == config.ColorAlways
	}

	p := printer.New(w, printer.Options{Color: useColor, Indent: cfg.IndentString()})
	var err error
	if CLI.Compact {
		err = p.PrintText(sess.Compact())
	} else {
		err = p.PrintView(sess.View())
	}
	if err != nil {
		return errors.NewOutputError("failed to write output", err)
	}

	if CLI.Output != "" {
		logger.Info("formatted document written", logging.FieldOutput, CLI.Output)
	}
	return nil
}

// colorEnabled resolves output.color against whether the target is a terminal
func colorEnabled(cfg *config.Config, terminal bool) bool {
	switch cfg.Output.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return terminal && os.Getenv("NO_COLOR") == ""
	}
}

// runInteractive opens the terminal interface
func runInteractive(ctx *Context) error {
	cfg := ctx.Config
	logger, closeLog, err := interactiveLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	logging.SetDefault(logger)

	text, err := readInput()
	if err != nil {
		return err
	}

	store, err := state.NewStore(cfg.StateFile)
	if err != nil {
		logger.Warn("theme will not be remembered", logging.FieldError, err)
		store = nil
	}

	sess := newSession(cfg, logger)
	loadDocument(sess, text)

	runCtx, cancel := context.WithCancel(logging.WithLogger(context.Background(), logger))
	defer cancel()

	opts := tui.Options{
		Session: sess,
		Theme:   resolveTheme(cfg, store, logger),
		Store:   store,
		Logger:  logger,
	}
	if CLI.Watch {
		w, err := startWatcher(runCtx, cfg)
		if err != nil {
			return err
		}
		defer func() { _ = w.Close() }()
		opts.Updates = w.Updates()
	}

	logger.Debug("starting interface", logging.FieldMode, sess.Mode(), logging.FieldTheme, opts.Theme)
	program := tea.NewProgram(tui.New(opts), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return errors.NewOutputError("terminal interface failed", err)
	}
	return nil
}

// interactiveLogger logs to log.file while the interface owns the terminal,
// and nowhere otherwise
func interactiveLogger(cfg *config.Config) (*log.Logger, func(), error) {
	if cfg.Log.File == "" {
		return logging.Discard(), func() {}, nil
	}
	logger, f, err := logging.NewFile(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return nil, nil, errors.NewConfigError(fmt.Sprintf("failed to open log file '%s'", cfg.Log.File), err)
	}
	return logger, func() { _ = f.Close() }, nil
}

// resolveTheme picks the starting theme. A --theme flag wins, then the
// theme remembered from the last run, then the config file.
func resolveTheme(cfg *config.Config, store *state.Store, logger *log.Logger) theme.ID {
	if CLI.Theme != "" || store == nil {
		return cfg.ThemeID()
	}
	saved, err := store.GetString(state.ThemeKey)
	if err != nil {
		logger.Warn("failed to read saved theme", logging.FieldPath, store.Path(), logging.FieldError, err)
		return cfg.ThemeID()
	}
	if saved == "" {
		return cfg.ThemeID()
	}
	id, err := theme.Parse(saved)
	if err != nil {
		logger.Warn("discarding saved theme", logging.FieldTheme, saved, logging.FieldError, err)
		if err := store.Delete(state.ThemeKey); err != nil {
			logger.Warn("failed to discard saved theme", logging.FieldPath, store.Path(), logging.FieldError, err)
		}
		return cfg.ThemeID()
	}
	return id
}

func startWatcher(ctx context.Context, cfg *config.Config) (*watch.Watcher, error) {
	logger := logging.FromContext(ctx)
	debounce := time.Duration(cfg.Watch.DebounceMS) * time.Millisecond
	w, err := watch.New(CLI.Input, debounce, logger)
	if err != nil {
		return nil, errors.NewInputError(fmt.Sprintf("failed to watch '%s'", CLI.Input), err)
	}
	go w.Run(ctx)
	logger.Debug("watching input", logging.FieldPath, CLI.Input)
	return w, nil
}

func newSession(cfg *config.Config, logger *log.Logger) *session.Session {
	return session.New(session.Options{
		Mode:          cfg.SessionMode(),
		Indent:        cfg.IndentString(),
		CollapseDepth: cfg.CollapseDepth,
		Logger:        logger,
	})
}

// loadDocument applies the query, the input and the search term, in that
// order, since an empty input clears the term
func loadDocument(sess *session.Session, text string) {
	sess.SetQuery(CLI.Query)
	sess.SetInput(text)
	sess.SetSearchTerm(CLI.Search)
}

// readInput reads the document from the input file or piped stdin. A
// terminal on stdin yields no input.
func readInput() (string, error) {
	if CLI.Input != "" {
		return parser.ReadFile(CLI.Input)
	}

	if isTerminal(os.Stdin) {
		return "", nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", errors.NewInputError("failed to read from stdin", err)
	}
	return string(data), nil
}
