package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)
	require.NotEmpty(t, ds)
	first := ds[0]
	assert.Equal(t, 2001, first.ConstructionYear)
	assert.Equal(t, 2, first.SoilType)
	assert.Equal(t, 4, first.TrafficVolume)
	assert.InDelta(t, 18.80657034034078, first.DeteriorationRate, 1e-12)
	assert.Equal(t, 1, first.NeedsRepair)

	// Each call returns an independent copy.
	ds[0].Age = -1
	again, err := Default()
	require.NoError(t, err)
	assert.NotEqual(t, -1.0, again[0].Age)
}

func TestLoadYAMLKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roads.yaml")
	data := `- constructionYear: 2010
  lastRepairYear: 2015
  soilType: 1
  trafficVolume: 2
  weatherCondition: 1
  materialQuality: 0
  deteriorationRate: 6.5
  age: 15
  timeSinceRepair: 10
  needsRepair: 0
- constructionYear: 1999
  lastRepairYear: 2001
  soilType: 0
  trafficVolume: 4
  weatherCondition: 2
  materialQuality: 2
  deteriorationRate: 21
  age: 26
  timeSinceRepair: 24
  needsRepair: 1
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	ds, err := Load(path)
	require.NoError(t, err)
	require.Len(t, ds, 2)
	assert.Equal(t, 2010, ds[0].ConstructionYear)
	assert.Equal(t, 1999, ds[1].ConstructionYear)
	assert.Equal(t, 21.0, ds[1].DeteriorationRate)
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roads.json")
	data := `[{"constructionYear":2010,"lastRepairYear":2012,"soilType":1,"trafficVolume":0,"weatherCondition":0,"materialQuality":1,"deteriorationRate":3,"age":15,"timeSinceRepair":13,"needsRepair":0}]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	ds, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, ds, 1)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		data string
		ext  string
	}{
		{"empty", `[]`, ".json"},
		{"bad json", `{`, ".json"},
		{"format", `[]`, ".csv"},
		{"soil out of range", `[{"soilType":7,"age":1,"timeSinceRepair":1}]`, ".json"},
		{"repair after age", `[{"age":1,"timeSinceRepair":2}]`, ".json"},
		{"repair before construction", `[{"constructionYear":2010,"lastRepairYear":2000,"age":1,"timeSinceRepair":1}]`, ".json"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Parse([]byte(c.data), c.ext); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
	_, err := Parse([]byte(`[]`), ".json")
	assert.ErrorIs(t, err, ErrInvalidDataset)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
