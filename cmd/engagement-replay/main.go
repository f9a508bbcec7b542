// Command engagement-replay replays a timed event scenario against the
// engagement tracker on a simulated clock. It is used to tune heartbeat
// intervals and timeouts offline.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/expo-parsely/engagement-tracker/pkg/status"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		asJSON  bool
		verbose bool
		strict  bool
	)

	root := &cobra.Command{
		Use:           "engagement-replay <scenario.yaml>",
		Short:         "Replay an engagement scenario on a simulated clock",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := LoadScenario(args[0])
			if err != nil {
				return err
			}

			logger := logrus.New()
			logger.SetOutput(io.Discard)
			if verbose {
				logger.SetOutput(cmd.ErrOrStderr())
				logger.SetLevel(logrus.DebugLevel)
			}
			// Component setup logs through the standard logger.
			logrus.SetOutput(logger.Out)
			logrus.SetLevel(logger.GetLevel())

			result, err := Replay(cmd.Context(), scenario, cmd.OutOrStdout(), logger)
			if err != nil {
				return err
			}

			if err := printResult(cmd.OutOrStdout(), result, asJSON); err != nil {
				return err
			}
			if strict && result.Failed > 0 {
				return fmt.Errorf("%d events failed", result.Failed)
			}
			return nil
		},
	}
	root.Flags().BoolVar(&asJSON, "json", false, "print the final status as JSON")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "log bridge calls to stderr")
	root.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any event fails")
	return root
}

func printResult(out io.Writer, result *Result, asJSON bool) error {
	timeout := time.Duration(result.Config.ActiveTimeoutSeconds) * time.Second
	view := status.NewView(result.Final, timeout)

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	_, err := fmt.Fprintf(out, "final: active=%t heartbeats=%d engaged=%ds activities=%d duration=%ds last_activity=%q",
		view.IsActive, view.HeartbeatCount, view.TotalEngagedSeconds, view.TotalActivities,
		view.SessionDurationSeconds, view.LastActivity)
	if err != nil {
		return err
	}
	if view.EndReason != "" {
		_, err = fmt.Fprintf(out, " reason=%s", view.EndReason)
		if err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(out)
	return err
}
