package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/roadrisk/core/predictlog"
	"github.com/kilianp07/roadrisk/pkg/export"
)

var (
	exportFormat string
	exportRoad   string
	exportSince  string
	exportLimit  int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the prediction log as a maintenance report",
	RunE:  exportLog,
}

func init() {
	f := exportCmd.Flags()
	f.StringVar(&exportFormat, "format", "csv", "output format: csv or json")
	f.StringVar(&exportRoad, "road", "", "only export this road")
	f.StringVar(&exportSince, "since", "", "only export records at or after this RFC3339 time")
	f.IntVar(&exportLimit, "limit", 0, "keep only the newest N records")
	rootCmd.AddCommand(exportCmd)
}

func exportLog(cmd *cobra.Command, _ []string) error {
	cfg, err := loadOptionalConfig(cmd)
	if err != nil {
		return err
	}
	q := predictlog.Query{RoadName: exportRoad, Limit: exportLimit}
	if exportSince != "" {
		t, err := time.Parse(time.RFC3339, exportSince)
		if err != nil {
			return fmt.Errorf("parse --since: %w", err)
		}
		q.Start = t
	}
	store, err := predictlog.Open(cfg.Logging)
	if err != nil {
		return fmt.Errorf("open prediction log: %w", err)
	}
	if store == nil {
		return fmt.Errorf("prediction log is disabled")
	}
	defer func() { _ = store.Close() }()
	records, err := store.Query(cmd.Context(), q)
	if err != nil {
		return err
	}
	return export.Write(cmd.OutOrStdout(), exportFormat, records)
}
