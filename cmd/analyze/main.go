// analyze runs one quality and consistency scan over a stored artifact
// collection and prints the findings, colorized for terminals or as JSON for
// scripting.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"timeline-insight/internal/config"
	"timeline-insight/internal/intelligence"
	"timeline-insight/internal/logging"
	"timeline-insight/internal/quality"
	"timeline-insight/internal/storage"
	"timeline-insight/internal/timeline"
	"timeline-insight/pkg/types"
)

type report struct {
	Coverage    types.CoverageSummary     `json:"coverage"`
	MissingInfo types.MissingInfoResult   `json:"missingInfo"`
	Conflicts   []types.PotentialConflict `json:"conflicts"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "analyze failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		storePath = flag.String("store", "", "artifact store path, overrides TLI_STORE_PATH")
		asJSON    = flag.Bool("json", false, "emit the report as JSON")
	)
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if *storePath != "" {
		cfg.Store.Path = *storePath
	}

	logger := logging.New(logging.ParseLevel(cfg.Logging.Level), cfg.Logging.Format)
	store := storage.NewFileStore(cfg.Store.Path, logger)

	entries, err := store.List(context.Background())
	if err != nil {
		return err
	}
	if len(entries) > cfg.Store.MaxArtifacts {
		entries = entries[:cfg.Store.MaxArtifacts]
	}

	detector := intelligence.NewDetector(
		intelligence.WithSimilarityThreshold(cfg.Engine.SimilarityThreshold),
		intelligence.WithDateConflictMinDays(cfg.Engine.DateConflictDays),
		intelligence.WithMaxConflicts(cfg.Engine.MaxConflicts),
	)

	rep := report{
		Coverage:    timeline.Coverage(entries),
		MissingInfo: quality.ComputeMissingInfo(entries),
		Conflicts:   detector.DetectConflicts(entries),
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	printReport(&rep)
	return nil
}

func printReport(rep *report) {
	header := color.New(color.Bold, color.FgCyan)
	header.Println("Timeline coverage")
	fmt.Printf("  total %d, dated %d, undated %d\n\n",
		rep.Coverage.Total, rep.Coverage.Dated, rep.Coverage.Undated)

	header.Println("Missing information")
	printMissing("entities", rep.MissingInfo.MissingEntitiesIDs)
	printMissing("location", rep.MissingInfo.MissingLocationIDs)
	printMissing("amount", rep.MissingInfo.MissingAmountIDs)
	printMissing("date", rep.MissingInfo.MissingDateIDs)
	fmt.Println()

	header.Printf("Potential conflicts (%d)\n", len(rep.Conflicts))
	if len(rep.Conflicts) == 0 {
		color.Green("  none detected")
		return
	}
	for i := range rep.Conflicts {
		c := &rep.Conflicts[i]
		severityColor(c.Severity).Printf("  [%s] %s %s\n", c.Severity, c.Type, c.ConflictID)
		fmt.Printf("    %s\n", c.Summary)
		fmt.Printf("    %s (%s) vs %s (%s)\n",
			c.Artifacts[0].ArtifactID, c.Details.LeftValue,
			c.Artifacts[1].ArtifactID, c.Details.RightValue)
	}
}

func printMissing(field string, ids []string) {
	if len(ids) == 0 {
		fmt.Printf("  %-9s none\n", field)
		return
	}
	color.Yellow("  %-9s %d artifact(s): %v", field, len(ids), ids)
}

func severityColor(s types.ConflictSeverity) *color.Color {
	switch s {
	case types.SeverityHigh:
		return color.New(color.FgRed, color.Bold)
	case types.SeverityMedium:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgWhite)
	}
}
