package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gogpu/fxclone/alloc"
	"github.com/gogpu/fxclone/clone"
	"github.com/gogpu/fxclone/fx"
	"github.com/gogpu/fxclone/fxload"
	"github.com/gogpu/fxclone/internal/config"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// ExitError signals a non-zero exit code without calling os.Exit in RunE.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// rootOptions is the state shared by all subcommands.
type rootOptions struct {
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger *log.Logger
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "fxclone",
		Short: "Deep-clone and release effect modules under allocation accounting",
		Long: TitleStyle.Render("fxclone") + SubtitleStyle.Render(" - effect module clone engine") + `

fxclone loads an effect module fixture (TOML or YAML), deep-clones it
through an accounting allocator and releases it again. Every allocation
is counted, so a failed clone can be checked for leaks.

` + SubtitleStyle.Render("Examples:") + `
  fxclone clone testdata/bloom.toml     Clone and report allocations
  fxclone sweep testdata/bloom.toml     Inject a failure at every allocation
  fxclone check testdata/bloom.toml     Validate the module
  fxclone dump testdata/bloom.toml      Print the module`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.init(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is ./fxclone.toml or $XDG_CONFIG_HOME/fxclone/fxclone.toml)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newCloneCommand(opts),
		newSweepCommand(opts),
		newCheckCommand(opts),
		newDumpCommand(opts),
		newVersionCommand(),
	)
	return cmd
}

func (o *rootOptions) init(cmd *cobra.Command) error {
	cfg, err := config.Load(config.LoadOptions{ConfigFilePath: o.cfgFile})
	if err != nil {
		return err
	}
	o.cfg = cfg

	level := cfg.Level()
	if o.verbose {
		level = log.DebugLevel
	}
	o.logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: "fxclone",
		Level:  level,
	})
	if cfg.File != "" {
		o.logger.Debug("config loaded", "file", cfg.File)
	}
	return nil
}

// cloneFlags are the allocation flags shared by clone and sweep.
type cloneFlags struct {
	budget   int
	parallel bool
}

func (f *cloneFlags) register(cmd *cobra.Command, withBudget bool) {
	if withBudget {
		cmd.Flags().IntVar(&f.budget, "budget", 0, "live byte budget of the clone, 0 for unlimited (overrides config)")
	}
	cmd.Flags().BoolVar(&f.parallel, "parallel", false, "clone top-level sequences concurrently (overrides config)")
}

// resolve merges the flags over the configuration.
func (f *cloneFlags) resolve(cmd *cobra.Command, cfg *config.Config) (budget int, parallel bool) {
	budget, parallel = cfg.Budget, cfg.Parallel
	if cmd.Flags().Changed("budget") {
		budget = f.budget
	}
	if cmd.Flags().Changed("parallel") {
		parallel = f.parallel
	}
	return budget, parallel
}

// loadFixture reads a fixture with the configured format.
func (o *rootOptions) loadFixture(path string) (*fx.Module, error) {
	format, err := o.cfg.FixtureFormat(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load error: %w", err)
	}
	defer f.Close()

	m, err := fxload.Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	o.logger.Debug("fixture loaded", "path", path, "format", format)
	return m, nil
}

// newCloner returns a cloner over a fresh counter.
func (o *rootOptions) newCloner(budget int, parallel bool) (*clone.Cloner, *alloc.Counter) {
	counter := alloc.NewCounter(budget)
	return clone.New(clone.Options{
		Allocator: counter,
		Logger:    o.logger,
		Parallel:  parallel,
	}), counter
}

func versionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// Skip config loading.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "fxclone %s\n", versionString())
			return nil
		},
	}
}

// row writes one label/value line of a summary.
func row(cmd *cobra.Command, label string, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", LabelStyle.Render(label), fmt.Sprintf(format, args...))
}
