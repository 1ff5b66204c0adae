package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/veslyn/tally/internal/buildinfo"
	"github.com/veslyn/tally/pkg/app"
	"github.com/veslyn/tally/pkg/config"
	"github.com/veslyn/tally/pkg/core"
	"github.com/veslyn/tally/pkg/datefmt"
	"github.com/veslyn/tally/pkg/install"
	"github.com/veslyn/tally/pkg/journal"
	"github.com/veslyn/tally/pkg/logging"
	"github.com/veslyn/tally/pkg/store"
	tuimodel "github.com/veslyn/tally/pkg/tui/model"
	"github.com/veslyn/tally/pkg/view"
)

var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tally",
	Short: "Tap-to-log event tracker for the terminal",
	Long:  "Tally records a timestamped event on a single keypress and charts your days. Run it bare for the TUI, or use the subcommands for scripting.",
	RunE:  runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.DefaultPath()+")")

	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(uninstallCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// --- Wiring helpers ---

func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultPath()
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(resolveConfigPath())
	if err != nil {
		return nil, err
	}
	config.FromEnv(cfg)
	if errs := config.Validate(cfg); len(errs) > 0 {
		return nil, fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	return logging.New(w, logging.Options{
		Level:   logging.ParseLevel(cfg.Log.Level),
		Journal: cfg.Log.Journal,
	})
}

func openBackend(cfg *config.Config) (store.Backend, error) {
	switch cfg.Storage.Backend {
	case "sqlite":
		return store.NewSQLite(filepath.Join(cfg.DataDir(), "tally.db"))
	case "memory":
		return store.NewMemory(), nil
	default:
		return store.NewFile(cfg.DataDir()), nil
	}
}

// openApp builds the full engine stack. The returned closer flushes the
// storage backend.
func openApp(cfg *config.Config, logger *slog.Logger) (*app.App, func(), error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}
	fmtr, err := datefmt.New(cfg.Locale, loc)
	if err != nil {
		return nil, nil, err
	}
	backend, err := openBackend(cfg)
	if err != nil {
		return nil, nil, err
	}
	st := store.New(backend, logger)
	j := journal.Open(st, cfg.Storage.Key, logger)
	a := app.New(j, fmtr, app.SystemClipboard{}, install.NewDesktopPrompt(), logger)
	closer := func() {
		if err := st.Close(); err != nil {
			logger.Error("close store", "err", err)
		}
	}
	return a, closer, nil
}

// --- Root: TUI ---

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The alternate screen owns the terminal, so the TUI logs to a file
	// in the data directory instead of stderr.
	logW := io.Discard
	if f, err := logging.OpenLogFile(cfg.DataDir()); err == nil {
		defer f.Close()
		logW = f
	}
	logger := newLogger(cfg, logW)

	a, closeApp, err := openApp(cfg, logger)
	if err != nil {
		return err
	}
	defer closeApp()

	period, err := core.ParsePeriod(cfg.Chart.Period)
	if err != nil {
		period = core.PeriodWeek
	}

	p := tea.NewProgram(tuimodel.New(a, period), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// --- Log ---

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Record one event",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		a, closeApp, err := openApp(cfg, newLogger(cfg, os.Stderr))
		if err != nil {
			return err
		}
		defer closeApp()

		_, toast := a.LogEvent()
		fmt.Fprintln(cmd.OutOrStdout(), toast.Text)
		return nil
	},
}

// --- List ---

var (
	listPeriod string
	listJSON   bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded days and their entries",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		a, closeApp, err := openApp(cfg, newLogger(cfg, os.Stderr))
		if err != nil {
			return err
		}
		defer closeApp()

		entries := a.Entries()
		if listPeriod != "" {
			p, err := core.ParsePeriod(listPeriod)
			if err != nil {
				return err
			}
			entries = view.FilterPeriod(entries, p, time.Now())
		}
		groups := view.GroupByDay(entries, a.Formatter())

		if listJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(groups)
		}

		if len(groups) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no entries")
			return nil
		}

		f := a.Formatter()
		for _, g := range groups {
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d)\n", g.Label, len(g.Entries))
			for _, e := range g.Entries {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", f.Time(e.Timestamp))
			}
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listPeriod, "period", "", "limit to a period: week, month, or all")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
}

// --- Stats ---

var (
	statsPeriod string
	statsJSON   bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-day counts for a period",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		a, closeApp, err := openApp(cfg, newLogger(cfg, os.Stderr))
		if err != nil {
			return err
		}
		defer closeApp()

		period, err := core.ParsePeriod(cfg.Chart.Period)
		if err != nil {
			period = core.PeriodWeek
		}
		if statsPeriod != "" {
			period, err = core.ParsePeriod(statsPeriod)
			if err != nil {
				return err
			}
		}

		chart := a.Chart(period)

		if statsJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(chart)
		}

		if len(chart.Bins) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no entries in this period")
			return nil
		}

		total := 0
		for _, b := range chart.Bins {
			fmt.Fprintf(cmd.OutOrStdout(), "%-12s %4d %s\n", b.Label, b.Count, strings.Repeat("▇", min(b.Count, 40)))
			total += b.Count
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-12s %4d\n", "total", total)
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsPeriod, "period", "", "period: week, month, or all (default from config)")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output as JSON")
}

// --- Copy ---

var copyStdout bool

var copyCmd = &cobra.Command{
	Use:   "copy",
	Short: "Copy every entry as text to the clipboard",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		a, closeApp, err := openApp(cfg, newLogger(cfg, os.Stderr))
		if err != nil {
			return err
		}
		defer closeApp()

		if copyStdout {
			text, ok := a.Export()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing to copy")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		}

		toast := a.CopyAll()
		if !toast.OK {
			return errors.New(toast.Text)
		}
		fmt.Fprintln(cmd.OutOrStdout(), toast.Text)
		return nil
	},
}

func init() {
	copyCmd.Flags().BoolVar(&copyStdout, "stdout", false, "print to stdout instead of the clipboard")
}

// --- Clear ---

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every recorded entry",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !clearYes {
			return errors.New("refusing to clear without --yes")
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		a, closeApp, err := openApp(cfg, newLogger(cfg, os.Stderr))
		if err != nil {
			return err
		}
		defer closeApp()

		toast := a.ClearAll()
		fmt.Fprintln(cmd.OutOrStdout(), toast.Text)
		return nil
	},
}

func init() {
	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "confirm deleting all entries")
}

// --- Install / Uninstall ---

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install a desktop entry so tally appears in app launchers",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if install.Installed() {
			fmt.Fprintln(cmd.OutOrStdout(), install.Status())
			return nil
		}
		bin, err := os.Executable()
		if err != nil {
			return err
		}
		bin, err = filepath.Abs(bin)
		if err != nil {
			return err
		}
		if err := install.Install(bin); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), install.Status())
		return nil
	},
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the desktop entry",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := install.Uninstall(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "desktop entry removed")
		return nil
	},
}

// --- Config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the tally.yaml config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := resolveConfigPath()
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
		if err := config.Default().Save(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a config file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolveConfigPath()
		if len(args) > 0 {
			path = args[0]
		}

		cfg, err := config.Load(path)
		if err != nil {
			return err
		}

		errs := config.Validate(cfg)
		if len(errs) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid\n", path)
			return nil
		}
		for _, e := range errs {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", e)
		}
		return fmt.Errorf("%s: %d error(s)", path, len(errs))
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), resolveConfigPath())
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configPathCmd)
}

// --- Version ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tally %s (%s) built %s\n", buildinfo.Version, buildinfo.Commit, buildinfo.Date)
	},
}
