// Command mess files throwaway projects under <base>/<year>/<ISO week> and
// finds them again in later weeks.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mess/internal/app"
	"mess/internal/config"
	"mess/internal/logging"
	"mess/internal/tui"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

// exitNotImplemented is EX_SOFTWARE from sysexits.h.
const exitNotImplemented = 70

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, time.Now))
}

func run(args []string, stdout, stderr io.Writer, now func() time.Time) int {
	c := &cli{stdout: stdout, stderr: stderr, now: now}
	root := c.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if c.log != nil {
		_ = c.log.Sync()
	}
	if err == nil {
		return 0
	}

	fmt.Fprintf(stderr, "mess: %v\n", err)
	if errors.Is(err, app.ErrNotImplemented) {
		return exitNotImplemented
	}
	return 1
}

type cli struct {
	stdout io.Writer
	stderr io.Writer
	now    func() time.Time

	configFile string
	basePath   string
	color      string
	verbose    bool

	cfg  *config.Config
	log  *zap.Logger
	base string
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mess",
		Short: "Keep ad-hoc projects in weekly folders and rescue them later",
		Long: `mess keeps throwaway project directories under <base>/<year>/<week>,
where <week> is the ISO-8601 week number.

Examples:
  # Jump into this week's folder
  cd "$(mess new)"

  # Start a named project for this week
  cd "$(mess new parser-spike)"

  # Look for something from an earlier week
  mess rescue spike`,
		Version:           version,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&c.basePath, "basepath", "b", "", "base directory for all buckets (env MESS_BASE_PATH)")
	flags.StringVar(&c.configFile, "config", "", "config file (default <config dir>/mess/config.yaml)")
	flags.StringVar(&c.color, "color", string(app.ColorAuto), "color output: auto | always | never")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "log diagnostics to stderr")

	root.AddCommand(c.newCmd(), c.rescueCmd(), c.unimplementedCmd("prune", "Remove old buckets"),
		c.unimplementedCmd("install", "Install shell integration"))
	return root
}

// setup loads configuration once the flags are parsed. Only flags the user
// actually set override the file and environment.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	overrides := map[string]any{}
	if f := cmd.Flags().Lookup("basepath"); f != nil && f.Changed {
		overrides[config.KeyBasePath] = c.basePath
	}
	if f := cmd.Flags().Lookup("color"); f != nil && f.Changed {
		overrides[config.KeyColor] = c.color
	}
	if f := cmd.Flags().Lookup("verbose"); f != nil && f.Changed {
		overrides[config.KeyVerbose] = c.verbose
	}
	if f := cmd.Flags().Lookup("to"); f != nil && f.Changed {
		overrides[config.KeyTargetPath] = f.Value.String()
	}

	cfg, err := config.Load(config.Options{ConfigFile: c.configFile, Flags: overrides})
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.log = logging.New(c.stderr, cfg.Verbose)
	return nil
}

func (c *cli) resolveBase() (string, error) {
	if c.base != "" {
		return c.base, nil
	}
	base, err := c.cfg.ResolveBasePath()
	if err != nil {
		return "", err
	}
	c.log.Debug("resolved base path", zap.String("base", base))
	c.base = base
	return base, nil
}

func (c *cli) newCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new [name]",
		Short: "Create (or print) this week's folder, optionally with a named project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name *app.Directory
			if len(args) == 1 {
				dir, err := app.ParseDirectory(args[0])
				if err != nil {
					return err
				}
				name = &dir
			}

			base, err := c.resolveBase()
			if err != nil {
				return err
			}
			path, err := app.NewProject(base, c.now(), name, c.log)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.stdout, path)
			return nil
		},
	}
}

func (c *cli) rescueCmd() *cobra.Command {
	var to string
	var interactive bool

	cmd := &cobra.Command{
		Use:   "rescue [search]",
		Short: "List projects from earlier weeks, optionally fuzzy-filtered",
		Long: `List every project from earlier weeks, grouped by year/week.

The search is a case-sensitive fuzzy match: its characters must appear in
the project name in order. The current week is never listed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			if c.cfg.TargetPath != "" {
				c.log.Debug("--to is reserved and currently unused", zap.String("to", c.cfg.TargetPath))
			}

			base, err := c.resolveBase()
			if err != nil {
				return err
			}
			now := c.now()
			reports, err := app.Rescue(app.RescueOptions{
				BasePath: base,
				Now:      now,
				Query:    query,
				Log:      c.log,
			})
			if err != nil {
				return err
			}

			if !interactive {
				return app.WriteReports(c.stdout, reports, app.NewReportStyle(c.stdout, c.cfg.Color))
			}
			if len(reports) == 0 {
				return nil
			}
			entry, err := tui.Run(tui.Input{Reports: reports, Query: query, Now: now, Output: c.stderr})
			if err != nil {
				if errors.Is(err, tui.ErrUserQuit) {
					return nil
				}
				return err
			}
			fmt.Fprintln(c.stdout, entry.Path)
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "destination for rescued projects (reserved, env MESS_TARGET_PATH)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick a project interactively and print its path")
	return cmd
}

// unimplementedCmd reports ErrNotImplemented without loading configuration,
// so a broken config file cannot change its exit status.
func (c *cli) unimplementedCmd(name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short + " (not implemented)",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("%s: %w", name, app.ErrNotImplemented)
		},
	}
}
