package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/renobudget/internal/client"
	"github.com/theirongolddev/renobudget/internal/estimate"
	"github.com/theirongolddev/renobudget/internal/logging"
	"github.com/theirongolddev/renobudget/internal/server"
)

var (
	flagServeAddr         string
	flagServeEventsBuffer int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve estimates over HTTP",
	Long: `Serve estimates over HTTP.

  GET  /healthz
  GET  /v1/status
  GET  /v1/events
  GET  /v1/catalog
  GET  /v1/catalog/:project
  POST /v1/estimate   {"home_value": "...", "yearly_income": "...", "project_type": "..."}`,
	RunE: runServe,
}

var serveStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Query a running server's status",
	RunE:  runServeStatus,
}

func init() {
	serveCmd.PersistentFlags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default from config)")
	serveCmd.Flags().IntVar(&flagServeEventsBuffer, "events-buffer", 200, "Max in-memory events retained")

	serveCmd.AddCommand(serveStatusCmd)
	rootCmd.AddCommand(serveCmd)
}

func serveAddr(e *env) string {
	if flagServeAddr != "" {
		return flagServeAddr
	}
	return e.cfg.Server.Addr
}

func runServe(_ *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}
	logger := logging.NewStructuredLogger(os.Stderr, level)

	svc := server.New(server.Config{
		Addr:         serveAddr(e),
		Calculator:   e.calc,
		Checker:      e.checker,
		Money:        e.money,
		Catalog:      estimate.Catalog,
		Logger:       logger,
		EventsBuffer: flagServeEventsBuffer,
	})

	fmt.Printf("  renobudget listening on http://%s\n", serveAddr(e))
	fmt.Println("  Stop with Ctrl+C")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runServeStatus(_ *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	c, err := client.New(serveAddr(e))
	if err != nil {
		return err
	}
	fmt.Printf("  Address: %s\n", c.BaseURL())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	st, err := c.Status(ctx)
	if err != nil {
		fmt.Printf("  API status: %v\n", err)
		return nil
	}

	fmt.Printf("  Started: %s (up %s)\n", st.StartedAt.Local().Format(time.RFC3339), time.Since(st.StartedAt).Round(time.Second))
	fmt.Printf("  Requests: %d\n", st.Requests)
	fmt.Printf("  Estimates: %d\n", st.Estimates)
	fmt.Printf("  Rejected inputs: %d\n", st.ValidationFailures)
	fmt.Printf("  Calculation failures: %d\n", st.CalcFailures)
	if st.LastEstimateAt.IsZero() {
		fmt.Printf("  Last estimate: none yet\n")
	} else {
		fmt.Printf("  Last estimate: %s\n", st.LastEstimateAt.Local().Format(time.RFC3339))
	}
	if st.TableGaps > 0 {
		fmt.Printf("  Table gaps: %d (run `renobudget catalog`)\n", st.TableGaps)
	}
	if st.LastError != "" {
		fmt.Printf("  Last error: %s\n", st.LastError)
	}
	return nil
}
