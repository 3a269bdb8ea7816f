package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/getmockd/filemock/internal/discovery"
	"github.com/getmockd/filemock/pkg/cli/internal/output"
	"github.com/getmockd/filemock/pkg/engine"
	"github.com/getmockd/filemock/pkg/mockfile"
)

// CheckOutput is the JSON form of the check command.
type CheckOutput struct {
	Patterns []string      `json:"patterns"`
	Mocks    []CheckedMock `json:"mocks"`
	Skipped  []SkippedFile `json:"skipped"`
}

// CheckedMock describes one mock file that loaded.
type CheckedMock struct {
	Method string `json:"method"`
	URL    string `json:"url"`
	Type   string `json:"type"`
	Status int    `json:"status"`
	File   string `json:"file"`
}

// SkippedFile describes one mock file that failed to load.
type SkippedFile struct {
	File  string `json:"file,omitempty"`
	Error string `json:"error"`
}

var checkWatch bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate mock files without starting the proxy",
	Long: `Discover every mock file matched by the configured patterns and parse it.
Prints one line per mock and every file that would be skipped. Exits non-zero
if any file fails to parse.

With --watch, the check re-runs whenever a matching file changes until
interrupted.`,
	Example: `  filemock check --mocks './mocks/**/*.mock'
  filemock check --json
  filemock check --watch -m './mocks/*.mock'`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVarP(&checkWatch, "watch", "w", false, "Re-run the check when mock files change")
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	if len(cfg.MockPaths) == 0 {
		return errors.New("no mock patterns configured (use --mocks or MOCK_PATHS)")
	}

	logger := newLogger(cfg, cmd.ErrOrStderr())
	eng := newEngine(cfg, logger)

	if !checkWatch {
		return checkOnce(cmd, eng)
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := discovery.NewWatcher(cfg.MockPaths, 0, logger)
	if err != nil {
		return err
	}

	report := func() {
		if err := checkOnce(cmd, eng); err != nil {
			output.Warn(cmd.ErrOrStderr(), "%v", err)
		}
	}
	report()
	return w.Run(ctx, report)
}

// checkOnce scans every mock file and prints the result.
func checkOnce(cmd *cobra.Command, eng *engine.Engine) error {
	mocks, errs := eng.Scan()

	out := CheckOutput{
		Patterns: eng.Patterns(),
		Mocks:    make([]CheckedMock, 0, len(mocks)),
		Skipped:  make([]SkippedFile, 0, len(errs)),
	}
	for _, m := range mocks {
		kind := "exact"
		if m.Wildcard {
			kind = "wildcard"
		}
		out.Mocks = append(out.Mocks, CheckedMock{
			Method: m.Method,
			URL:    m.URL,
			Type:   kind,
			Status: m.Spec.Status,
			File:   m.Source,
		})
	}
	for _, e := range errs {
		skipped := SkippedFile{Error: e.Error()}
		var pe *mockfile.ParseError
		if errors.As(e, &pe) {
			skipped.File = pe.File
			skipped.Error = pe.Err.Error()
		}
		out.Skipped = append(out.Skipped, skipped)
	}

	w := cmd.OutOrStdout()
	if jsonOutput {
		if err := output.JSON(w, out); err != nil {
			return err
		}
	} else {
		if len(out.Mocks) == 0 && len(out.Skipped) == 0 {
			fmt.Fprintln(w, "No mock files found")
		}
		tw := output.Table(w)
		for _, m := range out.Mocks {
			fmt.Fprintf(tw, "%s\t%s\t(%s)\t%d\t%s\n", m.Method, m.URL, m.Type, m.Status, m.File)
		}
		_ = tw.Flush()
		for _, s := range out.Skipped {
			output.Warn(cmd.ErrOrStderr(), "skipped %s: %s", s.File, s.Error)
		}
	}

	if len(out.Skipped) > 0 {
		return fmt.Errorf("%d mock file(s) failed to parse", len(out.Skipped))
	}
	return nil
}

// commandContext returns the command's context, or Background when the
// command runs without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
