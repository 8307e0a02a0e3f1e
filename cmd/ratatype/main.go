// Package main provides the CLI entrypoint for ratatype.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pato/ratatype/internal/config"
	"github.com/pato/ratatype/internal/generator"
	"github.com/pato/ratatype/internal/history"
	"github.com/pato/ratatype/internal/model"
	"github.com/pato/ratatype/internal/stats"
	"github.com/pato/ratatype/internal/statsui"
	"github.com/pato/ratatype/internal/store"
	"github.com/pato/ratatype/internal/tui"
)

const (
	defaultDuration      = 30
	defaultSource        = "google"
	defaultMaxWordLength = 7
	defaultWeakTop       = 8
	defaultWeakFactor    = 2.0
	defaultWeakWindow    = 20
	defaultCurveWindow   = 20

	minWordLength = 3
	maxWordLength = 20
)

var (
	practiceDuration   int
	practiceCorrection bool
	practiceSource     string
	practiceMaxWordLen int
	practiceFocusWeak  bool
	practiceWeakTop    int
	practiceWeakFactor float64
	practiceWeakWindow int

	statsSource      string
	statsSince       string
	statsLast        int
	statsCurveWindow int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ratatype",
		Short:         "Terminal typing speed trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().IntVarP(&practiceDuration, "duration", "d", defaultDuration, "test duration in seconds")
	rootCmd.Flags().BoolVarP(&practiceCorrection, "require-correction", "c", false, "stay on a character until it is typed correctly")
	rootCmd.Flags().StringVarP(&practiceSource, "source", "s", defaultSource, "text source (google, system, builtin)")
	rootCmd.Flags().IntVarP(&practiceMaxWordLen, "max-word-length", "m", defaultMaxWordLength, "maximum word length from word sources")
	rootCmd.Flags().BoolVar(&practiceFocusWeak, "focus-weak", false, "bias generation toward weak keys")
	rootCmd.Flags().IntVar(&practiceWeakTop, "weak-top", defaultWeakTop, "number of weak keys to focus on")
	rootCmd.Flags().Float64Var(&practiceWeakFactor, "weak-factor", defaultWeakFactor, "weight factor for weak keys")
	rootCmd.Flags().IntVar(&practiceWeakWindow, "weak-window", defaultWeakWindow, "number of recent sessions to compute weak keys")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "duration", &practiceDuration, fileCfg.Practice.Duration)
	applyBoolConfig(cmd, "require-correction", &practiceCorrection, fileCfg.Practice.RequireCorrection)
	applyStringConfig(cmd, "source", &practiceSource, fileCfg.Practice.Source)
	applyIntConfig(cmd, "max-word-length", &practiceMaxWordLen, fileCfg.Practice.MaxWordLength)
	applyBoolConfig(cmd, "focus-weak", &practiceFocusWeak, fileCfg.Practice.FocusWeak)
	applyIntConfig(cmd, "weak-top", &practiceWeakTop, fileCfg.Practice.WeakTop)
	applyFloatConfig(cmd, "weak-factor", &practiceWeakFactor, fileCfg.Practice.WeakFactor)
	applyIntConfig(cmd, "weak-window", &practiceWeakWindow, fileCfg.Practice.WeakWindow)

	source, err := model.ParseTextSource(practiceSource)
	if err != nil {
		return err
	}

	cfg := model.Config{
		Duration:          practiceDuration,
		RequireCorrection: practiceCorrection,
		Source:            source,
		MaxWordLength:     practiceMaxWordLen,
		FocusWeak:         practiceFocusWeak,
		WeakTop:           practiceWeakTop,
		WeakFactor:        practiceWeakFactor,
		WeakWindow:        practiceWeakWindow,
	}

	if err := validateConfig(cfg); err != nil {
		return err
	}

	// A broken archive only costs stats, not the session itself.
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logErrf("failed to open db, sessions will not be archived: %v\n", err)
		st = nil
	}
	if st != nil {
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
	}

	provider := generator.NewProvider(cfg, func(format string, args ...any) {
		logErrf(format+"\n", args...)
	})

	weakNoticePrinted := false
	if cfg.FocusWeak && st != nil {
		aggs, err := st.KeyAggregates(context.Background(), cfg.WeakWindow, cfg.Source.String())
		if err != nil {
			logErrf("failed to load weak keys: %v\n", err)
		} else {
			weakSet := stats.SelectWeakKeys(aggs, cfg.WeakTop)
			if len(weakSet) == 0 {
				logErrln("no stats available for weak-key focus yet; using the normal generator")
				weakNoticePrinted = true
			}
			provider.SetWeakKeys(weakSet)
		}
	}

	recorder := history.NewRecorder(history.DefaultPath())

	model := tui.NewModel(cfg, st, provider, recorder, weakNoticePrinted)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Browse session stats",
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSource, "source", "", "text source filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	return cmd
}

func runStatsCmd(_ *cobra.Command, _ []string) error {
	source := statsSource
	if source != "" {
		parsed, err := model.ParseTextSource(source)
		if err != nil {
			return fmt.Errorf("invalid --source value: %w", err)
		}
		source = parsed.String()
	}

	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	cfg := model.StatsConfig{
		Source:      source,
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	model := statsui.NewModel(st, cfg)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# ratatype configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# duration = %d               # Test duration in seconds
# require-correction = false  # Stay on a character until it is typed correctly
# source = %q            # Text source: google, system, builtin
# max-word-length = %d         # Maximum word length from word sources
# focus-weak = false          # Bias generation toward weak keys
# weak-top = %d                # Number of weak keys to focus on
# weak-factor = %.1f           # Weight factor for weak keys
# weak-window = %d            # Number of recent sessions to compute weak keys
`,
		defaultDuration,
		defaultSource,
		defaultMaxWordLength,
		defaultWeakTop,
		defaultWeakFactor,
		defaultWeakWindow,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Duration < 1 {
		return fmt.Errorf("--duration must be >= 1")
	}
	if cfg.MaxWordLength < minWordLength || cfg.MaxWordLength > maxWordLength {
		return fmt.Errorf("--max-word-length must be between %d and %d", minWordLength, maxWordLength)
	}
	if cfg.WeakTop < 0 {
		return fmt.Errorf("--weak-top must be >= 0")
	}
	if cfg.WeakFactor < 0 {
		return fmt.Errorf("--weak-factor must be >= 0")
	}
	if cfg.WeakWindow < 0 {
		return fmt.Errorf("--weak-window must be >= 0")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
