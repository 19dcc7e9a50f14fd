package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/roadrisk/core/model"
	"github.com/kilianp07/roadrisk/core/predictlog"
)

func TestPredictCommand(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("engine:\n  k: 5\nlog:\n  level: error\n"), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"predict", "-c", cfgFile, "--road", "N7", "--age", "22", "--traffic", "90", "--heavy", "60", "--rainfall", "85", "--temperature", "70", "--soil", "silt"})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })
	require.NoError(t, rootCmd.Execute())

	var a model.Assessment
	require.NoError(t, json.Unmarshal(out.Bytes(), &a))
	assert.Equal(t, "N7", a.RoadName)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, model.PriorityFor(a.RiskScore), a.Priority)
	assert.Len(t, a.SimilarRoads, 5)
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "predictions.jsonl")
	store, err := predictlog.NewJSONLStore(logPath)
	require.NoError(t, err)
	for _, road := range []string{"A1", "B2", "A1"} {
		require.NoError(t, store.Append(context.Background(), predictlog.NewRecord(model.Assessment{ID: road, RoadName: road, Priority: model.PriorityLow})))
	}
	cfgFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("logging:\n  backend: jsonl\n  path: "+logPath+"\n"), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"export", "-c", cfgFile, "--road", "A1", "--format", "csv"})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })
	require.NoError(t, rootCmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "id,timestamp,road_name"))
}
