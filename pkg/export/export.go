package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/kilianp07/roadrisk/core/predictlog"
)

// Header is the CSV column layout of a maintenance report.
var Header = []string{
	"id", "timestamp", "road_name", "risk_score", "maintenance_priority",
	"deterioration_rate", "lifespan", "needs_repair",
}

// WriteJSON writes the records to w as a JSON array.
func WriteJSON(w io.Writer, records []predictlog.Record) error {
	if records == nil {
		records = []predictlog.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// WriteCSV writes one row per record, in the order given.
func WriteCSV(w io.Writer, records []predictlog.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range records {
		a := r.Assessment
		rec := []string{
			r.ID,
			r.Timestamp.UTC().Format(time.RFC3339),
			r.RoadName,
			strconv.Itoa(a.RiskScore),
			string(a.Priority),
			strconv.FormatFloat(a.DeteriorationRate, 'f', -1, 64),
			strconv.FormatFloat(a.Lifespan, 'f', -1, 64),
			strconv.FormatBool(a.NeedsRepair),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Write dispatches to WriteJSON or WriteCSV by format name.
func Write(w io.Writer, format string, records []predictlog.Record) error {
	switch format {
	case "json":
		return WriteJSON(w, records)
	case "csv":
		return WriteCSV(w, records)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}
