// Command dbeyond is the CLI front end to the query analysis pipeline.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/V-Rytham/DBeyond/internal/config"
	"github.com/V-Rytham/DBeyond/internal/modules/analyzer"
	"github.com/V-Rytham/DBeyond/internal/server"
	"github.com/V-Rytham/DBeyond/pkg/logger"
)

var (
	asJSON  bool
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "dbeyond",
	Short: "SQL complexity analyzer with quantum-style state preparation",
	Long: `DBeyond classifies SQL query strings by structural complexity,
extracts a fixed feature set and maps it onto a unit-normalized state
vector with a heuristic qubit estimate.`,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <sql>",
	Short: "Analyze a single SQL query",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level := "error"
		if verbose {
			level = "debug"
		}
		log := logger.New(logger.Config{Level: level, Pretty: true})

		svc := analyzer.NewService(analyzer.DefaultConfig(), log)
		report := svc.Analyze(args[0])

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		printReport(report)
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the analysis HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: true})
		logger.SetGlobalLogger(log)

		svc := analyzer.NewService(analyzer.DefaultConfig(), log)
		srv := server.New(server.Config{
			Port:     cfg.Port,
			Log:      log,
			Config:   cfg,
			Analyzer: svc,
			DevMode:  cfg.DevMode,
		})

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start()
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("server failed: %w", err)
			}
		case <-sigCh:
		}

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutMS)*time.Millisecond,
		)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func printReport(report analyzer.Report) {
	fs := report.Features

	fmt.Printf("Classification:   %s\n", fs.Classification)
	fmt.Printf("Complexity score: %d\n", fs.ComplexityScore)
	fmt.Printf("Query length:     %d\n", fs.QueryLength)
	fmt.Println()
	fmt.Printf("  joins:            %d\n", fs.JoinCount)
	fmt.Printf("  subqueries:       %d\n", fs.SubqueryCount)
	fmt.Printf("  aggregations:     %d\n", fs.AggregationCount)
	fmt.Printf("  group by:         %v\n", fs.HasGroupBy)
	fmt.Printf("  having:           %v\n", fs.HasHaving)
	fmt.Printf("  window functions: %v\n", fs.HasWindowFunction)
	fmt.Println()

	components := make([]string, len(report.Quantum.StateVector))
	for i, x := range report.Quantum.StateVector {
		components[i] = fmt.Sprintf("%.4f", x)
	}
	fmt.Printf("State vector:    [%s]\n", strings.Join(components, ", "))
	fmt.Printf("Qubit estimate:  %d\n", report.Quantum.QubitEstimate)
	fmt.Printf("Readiness score: %.3f\n", report.Quantum.ReadinessScore)
}

func main() {
	analyzeCmd.Flags().BoolVar(&asJSON, "json", false, "print the raw report as JSON")
	analyzeCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
