package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilianp07/roadrisk/config"
	"github.com/kilianp07/roadrisk/core/assessment"
	"github.com/kilianp07/roadrisk/core/dataset"
	"github.com/kilianp07/roadrisk/core/form"
	"github.com/kilianp07/roadrisk/core/model"
	"github.com/kilianp07/roadrisk/core/prediction"
	"github.com/kilianp07/roadrisk/infra/logger"
)

var predictInput form.Input

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Assess a single road and print the result as JSON",
	RunE:  predict,
}

func init() {
	f := predictCmd.Flags()
	f.StringVar(&predictInput.RoadName, "road", "", "road name")
	f.Float64Var(&predictInput.RoadAge, "age", 0, "road age in years (0-30)")
	f.Float64Var(&predictInput.TrafficVolume, "traffic", 50, "traffic volume (0-100)")
	f.Float64Var(&predictInput.HeavyVehiclesPercentage, "heavy", 20, "heavy vehicles percentage (0-100)")
	f.Float64Var(&predictInput.AnnualRainfall, "rainfall", 50, "annual rainfall (0-100)")
	f.Float64Var(&predictInput.TemperatureFluctuation, "temperature", 50, "temperature fluctuation (0-100)")
	f.StringVar(&predictInput.SoilType, "soil", "clay", "soil type label")
	_ = predictCmd.MarkFlagRequired("road")
	rootCmd.AddCommand(predictCmd)
}

func predict(cmd *cobra.Command, _ []string) error {
	cfg, err := loadOptionalConfig(cmd)
	if err != nil {
		return err
	}
	logger.Configure(cfg.Log)

	var ds []model.RoadObservation
	if cfg.Engine.DatasetPath != "" {
		ds, err = dataset.Load(cfg.Engine.DatasetPath)
	} else {
		ds, err = dataset.Default()
	}
	if err != nil {
		return err
	}
	engine, err := prediction.NewKNNEngine(ds, cfg.Engine.K)
	if err != nil {
		return err
	}
	a, err := assessment.NewAssessor(engine, cfg.Form, nil, logger.New("predict")).Assess(cmd.Context(), predictInput)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(a)
}

// loadOptionalConfig reads the config file when it exists or was set
// explicitly, and falls back to defaults otherwise.
func loadOptionalConfig(cmd *cobra.Command) (*config.Config, error) {
	path := cfgPath
	if !cmd.Flags().Changed("config") {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			path = ""
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
