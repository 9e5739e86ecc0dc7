// Package cli wires flags, configuration and the todo store together.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/todomgr/internal/config"
	"github.com/idilsaglam/todomgr/internal/errs"
	"github.com/idilsaglam/todomgr/internal/location"
	"github.com/idilsaglam/todomgr/internal/logging"
	"github.com/idilsaglam/todomgr/internal/store/jsonstore"
	"github.com/idilsaglam/todomgr/internal/tui"
	"github.com/idilsaglam/todomgr/internal/ui"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usageErr(format string, args ...any) error {
	return &exitError{code: ExitUsage, err: fmt.Errorf(format, args...)}
}

type options struct {
	add, remove, done, important string
	changeDir, configPath        string
	list, repl, tui, verbose     bool
	replCount                    int
	replInterval                 time.Duration
}

// Run executes one invocation and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}

	p := ui.NewPrinter(stdout, stderr, ui.ThemeByName(config.DefaultTheme), config.DefaultColor)
	var ee *exitError
	switch {
	case errors.As(err, &ee):
		if !errors.Is(ee.err, errReported) {
			p.Fail(ee.Error())
		}
		return ee.code
	default:
		// flag parsing and other cobra errors
		p.Fail(err.Error())
		fmt.Fprintln(stderr, cmd.UsageString())
		return ExitUsage
	}
}

// errReported marks failures that were already printed.
var errReported = errors.New("reported")

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "todo",
		Short: "A tiny personal todo list kept in one JSON file",
		Long: `todo keeps a flat list of todos in a JSON data file. The location of the
data file is remembered in ~/` + location.PointerFileName + `, so --change-dir
sticks across runs.

Only one of --add, --remove, --done and --important may be given per run.`,
		Example: `  todo --add "buy milk"
  todo --done "buy milk" --list
  todo --change-dir ~/Dropbox/todos.json
  todo --repl --list --repl-interval 5s
  todo --tui`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringVarP(&opts.add, "add", "a", "", "add a todo")
	f.StringVarP(&opts.remove, "remove", "r", "", "remove the first todo with this name")
	f.StringVar(&opts.done, "done", "", "mark the first todo with this name as done")
	f.StringVar(&opts.important, "important", "", "mark the first todo with this name as important")
	f.BoolVarP(&opts.list, "list", "l", false, "list all todos")
	f.StringVarP(&opts.changeDir, "change-dir", "c", "", "move the data file pointer to this path")
	f.BoolVarP(&opts.repl, "repl", "p", false, "repeat the given action until interrupted")
	f.IntVar(&opts.replCount, "repl-count", 0, "stop the repl after this many rounds (0 = until interrupted)")
	f.DurationVar(&opts.replInterval, "repl-interval", config.DefaultReplInterval, "pause between repl rounds")
	f.BoolVar(&opts.tui, "tui", false, "browse todos interactively")
	f.StringVar(&opts.configPath, "config", "", "config file (default "+config.UserConfigFile()+")")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	return cmd
}

// ---------------------------------------------------
// One invocation
// ---------------------------------------------------

type runner struct {
	cmd     *cobra.Command
	opts    *options
	cfg     *config.Config
	logger  *log.Logger
	printer *ui.Printer
	store   *jsonstore.Store
	actions []action
}

type action struct {
	verb string
	name string
	op   func(string) error
}

func run(cmd *cobra.Command, opts *options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return usageErr("%w", err)
	}
	if opts.verbose {
		cfg.LogLevel = "debug"
	}
	if cmd.Flags().Changed("repl-interval") {
		cfg.ReplInterval = opts.replInterval.String()
	}
	if err := cfg.Finalize(); err != nil {
		return usageErr("%w", err)
	}

	logger, closer, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		File:   cfg.LogFile,
		Stderr: cmd.ErrOrStderr(),
	})
	if err != nil {
		return &exitError{code: ExitError, err: err}
	}
	defer closer.Close()
	if cfg.File != "" {
		logger.Debug("config loaded", "file", cfg.File)
	}

	r := &runner{
		cmd:     cmd,
		opts:    opts,
		cfg:     cfg,
		logger:  logger,
		printer: ui.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), ui.ThemeByName(cfg.Theme), cfg.Color),
	}
	if err := r.report(r.openStore()); err != nil {
		return err
	}
	return r.report(r.execute(cmd.Context()))
}

// report prints I/O failures once and turns them into exit code 1.
func (r *runner) report(err error) error {
	if err == nil {
		return nil
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return err
	}
	if errs.IsIO(err) {
		r.logger.Error("i/o failure", "err", err)
	} else {
		r.logger.Error("command failed", "err", err)
	}
	r.printer.Fail(err.Error())
	return &exitError{code: ExitError, err: errReported}
}

func (r *runner) openStore() error {
	res, err := location.NewResolver(r.logger)
	if err != nil {
		return err
	}
	r.logger.Debug("using pointer file", "path", res.PointerPath())
	s, err := jsonstore.Current(res, r.cfg.DataFile, r.logger)
	if err != nil {
		return err
	}
	r.store = s

	if r.opts.changeDir != "" {
		p, err := filepath.Abs(r.opts.changeDir)
		if err != nil {
			return fmt.Errorf("change-dir: %w", err)
		}
		if err := s.ChangeLocation(p); err != nil {
			return err
		}
		r.printer.Info("Data file moved to: %s", p)
	}
	return nil
}

func (r *runner) execute(ctx context.Context) error {
	if r.opts.tui {
		return tui.Run(ctx, r.store, tui.Options{
			Theme:  ui.ThemeByName(r.cfg.Theme),
			Color:  r.cfg.Color,
			Logger: r.logger,
			Watch:  true,
			Output: r.cmd.OutOrStdout(),
		})
	}

	r.actions = r.collectActions()
	for round := 1; ; round++ {
		more, err := r.round()
		if err != nil {
			return err
		}
		if !more || !r.opts.repl {
			return nil
		}
		if r.opts.replCount > 0 && round >= r.opts.replCount {
			return nil
		}
		if !sleep(ctx, r.cfg.ReplDelay) {
			r.logger.Debug("repl interrupted", "rounds", round)
			return nil
		}
	}
}

func (r *runner) collectActions() []action {
	fl := r.cmd.Flags()
	var acts []action
	if fl.Changed("add") {
		acts = append(acts, action{"Adding", r.opts.add, r.store.Add})
	}
	if fl.Changed("remove") {
		acts = append(acts, action{"Removing", r.opts.remove, r.store.Remove})
	}
	if fl.Changed("done") {
		acts = append(acts, action{"Marking as done", r.opts.done, r.store.MarkDone})
	}
	if fl.Changed("important") {
		acts = append(acts, action{"Marking as important", r.opts.important, r.store.MarkImportant})
	}
	return acts
}

// round applies the parsed flags once. It returns false when there is
// nothing worth repeating.
func (r *runner) round() (bool, error) {
	var usage error
	switch len(r.actions) {
	case 0:
		if !r.opts.list {
			if r.opts.changeDir != "" && !r.opts.repl {
				return false, nil
			}
			return false, r.cmd.Help()
		}
		r.printer.Info("Listing all items...")
	case 1:
		a := r.actions[0]
		r.printer.Info("%s: %s", a.verb, a.name)
		if err := a.op(a.name); err != nil {
			return false, err
		}
	default:
		r.printer.Fail("Please provide only one action at a time")
		usage = &exitError{code: ExitUsage, err: errReported}
	}

	if r.opts.list {
		r.printer.Heading("your todos:")
		if err := r.store.List(r.printer.Out()); err != nil {
			return false, err
		}
	}
	if usage != nil {
		return false, usage
	}
	return true, nil
}

// sleep waits for d and reports false if ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
