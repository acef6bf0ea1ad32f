package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/partition-core/rewriter"
	"github.com/katalvlaran/partition-core/snapshot"
	"github.com/katalvlaran/partition-core/telemetry"
)

var (
	graphPath     string
	directivePath string
	traceEnabled  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the partitioning pipeline over a graph fixture",
	Example: `  partition run --graph ./testdata/graph.json --directives ./testdata/directives.yaml
  partition run -g ./graph.json -v`,
	RunE: runPartition,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&graphPath, "graph", "g", "", "path to a JSON operation-graph fixture (required)")
	runCmd.Flags().StringVarP(&directivePath, "directives", "d", "", "path to a YAML directive file (optional, defaults to no directives)")
	runCmd.Flags().BoolVar(&traceEnabled, "trace", false, "emit an in-process OpenTelemetry trace of the run")
	_ = runCmd.MarkFlagRequired("graph")
}

func runPartition(cmd *cobra.Command, args []string) error {
	log := GetLogger()

	nodes, err := LoadFixture(graphPath)
	if err != nil {
		return err
	}
	pc, err := LoadDirectives(directivePath)
	if err != nil {
		return err
	}

	tracer, shutdown := telemetry.NewTracer(traceEnabled)
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	reg := prometheus.NewRegistry()
	snap := snapshot.New(nodes, pc,
		snapshot.WithLogger(log),
		snapshot.WithTracer(tracer),
		snapshot.WithMetrics(telemetry.NewMetrics(reg)),
		snapshot.WithMatcher(rewriter.Registry{}),
	)

	exp, err := snap.Run(context.Background())
	if err != nil {
		return fmt.Errorf("run pipeline: %w", err)
	}

	out := toReport(exp)
	enc := yaml.NewEncoder(os.Stdout)
	defer enc.Close()
	return enc.Encode(out)
}
