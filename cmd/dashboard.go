package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/thesrcielos/exambuddy/internal/dashboard"
	"github.com/thesrcielos/exambuddy/pkg/client"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show per-topic progress for a user",
	RunE:  runDashboard,
}

func init() {
	dashboardCmd.Flags().String("url", envOr("EXAMBUDDY_URL", "http://localhost:8080"), "API base URL")
	dashboardCmd.Flags().String("token", os.Getenv("EXAMBUDDY_TOKEN"), "bearer token from /api/auth/login")
	dashboardCmd.Flags().StringSlice("topics", nil, "topics to show first, in order")
	dashboardCmd.Flags().Bool("reset", false, "reset all stats after confirmation")
	dashboardCmd.Flags().Bool("watch", false, "keep the dashboard open and follow live updates")
	dashboardCmd.Flags().Duration("reconcile-delay", dashboard.DefaultReconcileDelay, "wait before re-fetching after a reset")
}

func runDashboard(cmd *cobra.Command, args []string) error {
	baseURL, _ := cmd.Flags().GetString("url")
	token, _ := cmd.Flags().GetString("token")
	topics, _ := cmd.Flags().GetStringSlice("topics")
	reset, _ := cmd.Flags().GetBool("reset")
	watch, _ := cmd.Flags().GetBool("watch")
	delay, _ := cmd.Flags().GetDuration("reconcile-delay")
	if v := os.Getenv("STATS_RECONCILE_DELAY"); v != "" && !cmd.Flags().Changed("reconcile-delay") {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid STATS_RECONCILE_DELAY %q: %w", v, err)
		}
		delay = d
	}

	if token == "" {
		return errors.New("--token (or EXAMBUDDY_TOKEN) is required")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := client.New(baseURL, token)
	model := dashboard.New(c, dashboard.WithReconcileDelay(delay))
	return driveDashboard(ctx, model, c, dashboardOptions{
		topics: topics,
		reset:  reset,
		watch:  watch,
		in:     bufio.NewReader(cmd.InOrStdin()),
		out:    cmd.OutOrStdout(),
	})
}

type dashboardOptions struct {
	topics []string
	reset  bool
	watch  bool
	in     *bufio.Reader
	out    io.Writer
}

// driveDashboard loads the model, offering retries on failure, then runs the
// optional reset and live follow.
func driveDashboard(ctx context.Context, model *dashboard.Model, c *client.Client, opts dashboardOptions) error {
	err := model.Load(ctx)
	for err != nil {
		renderDashboard(opts.out, model.Snapshot(), opts.topics)
		if !ask(opts.in, opts.out, "Retry? [y/N] ") {
			return err
		}
		err = model.Retry(ctx)
	}
	renderDashboard(opts.out, model.Snapshot(), opts.topics)

	if opts.reset {
		approved, err := model.Reset(ctx, func() bool {
			return ask(opts.in, opts.out, "Reset all stats? This cannot be undone. [y/N] ")
		})
		if !approved {
			fmt.Fprintln(opts.out, "Reset cancelled.")
		} else {
			renderDashboard(opts.out, model.Snapshot(), opts.topics)
			if err != nil {
				return err
			}
		}
	}

	if !opts.watch {
		return nil
	}

	unsubscribe := model.Subscribe(func(snap dashboard.Snapshot) {
		fmt.Fprintf(opts.out, "\n-- updated %s --\n", time.Now().Format(time.Kitchen))
		renderDashboard(opts.out, snap, opts.topics)
	})
	defer unsubscribe()

	err = c.Watch(ctx, model.Apply)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func ask(in *bufio.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
