package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/starling/internal/clean"
	"github.com/simonhull/firebird-suite/starling/internal/config"
	"github.com/simonhull/firebird-suite/starling/internal/fileops"
	"github.com/simonhull/firebird-suite/starling/internal/logger"
	"github.com/simonhull/firebird-suite/starling/internal/mesa"
	"github.com/simonhull/firebird-suite/starling/internal/output"
	"github.com/simonhull/firebird-suite/starling/internal/patch"
	"github.com/simonhull/firebird-suite/starling/internal/runner"
)

// newRunner is swapped out in tests
var newRunner = runner.New

// addModelFlags registers the flags every model command shares
func addModelFlags(cmd *cobra.Command) {
	d := config.Default()
	cmd.Flags().String("model-dir", d.ModelDir, "MESA model work directory")
	cmd.Flags().String("mesa-dir", d.MesaDir, "MESA installation directory")
	cmd.Flags().Float64("mass", d.InitialMass, "Initial mass in solar masses")
	cmd.Flags().Float64("z", d.InitialZ, "Initial metallicity, between 0 and 0.04")
}

// loadConfig merges settings for cmd and sets up logging from them
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	opts := config.LoadOptions{File: file, Flags: cmd.Flags()}
	cfg, err := config.Load(opts)
	if err != nil {
		return nil, err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if output.IsVerbose() {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.NewLogger(level, cmd.ErrOrStderr()))

	if used := config.Used(opts); used != "" {
		logger.Debug("loaded config", logger.F("file", used))
	}
	return cfg, nil
}

func params(cfg *config.Config) mesa.Params {
	return mesa.Params{
		MesaDir:     cfg.MesaDir,
		ModelDir:    cfg.ModelDir,
		InitialMass: cfg.InitialMass,
		InitialZ:    cfg.InitialZ,
	}
}

// validate runs every check before anything is touched
func validate(cfg *config.Config) error {
	output.Verbose(fmt.Sprintf("Checking MESA installation at %s", cfg.MesaDir))
	if err := mesa.Validate(params(cfg)); err != nil {
		return err
	}
	logger.Debug("configuration valid",
		logger.F("model_dir", cfg.ModelDir),
		logger.F("mesa_dir", cfg.MesaDir),
		logger.F("initial_mass", mesa.FormatMass(cfg.InitialMass)),
		logger.F("initial_z", mesa.FormatMetallicity(cfg.InitialZ)))
	return nil
}

// patchModel applies the parameter rules to every target file
func patchModel(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	ops, err := patch.ModelOps(params(cfg))
	if err != nil {
		return err
	}

	output.Info(fmt.Sprintf("Patching model for %s Msun, Z=%s",
		mesa.FormatMass(cfg.InitialMass), mesa.FormatMetallicity(cfg.InitialZ)))

	report, err := fileops.Execute(ctx, ops, fileops.ExecuteOptions{
		DryRun:   cfg.DryRun,
		ShowDiff: cfg.ShowDiff,
		Writer:   cmd.OutOrStdout(),
	})
	if err != nil {
		return fmt.Errorf("patching model: %w", err)
	}

	if cfg.DryRun {
		output.Info(fmt.Sprintf("[DRY RUN] %d files would change, %d already up to date", report.Applied, report.Skipped))
		return nil
	}
	output.Success(fmt.Sprintf("Patched %d files, %d already up to date", report.Applied, report.Skipped))
	return nil
}

// cleanModel removes generated files and prints per-category counts
func cleanModel(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	output.Info("Removing generated files")

	cleaner := clean.New(cfg.ModelDir, cfg.MesaDir, clean.Options{
		DryRun: cfg.DryRun,
		Quiet:  !output.IsVerbose() && !cfg.DryRun,
		Writer: cmd.OutOrStdout(),
	})
	report, err := cleaner.Clean(ctx)

	for _, category := range []string{
		clean.CategoryNohup,
		clean.CategoryLogs,
		clean.CategoryCache,
		clean.CategoryBinary,
		clean.CategoryModels,
	} {
		output.Step(fmt.Sprintf("%-13s %d", category+":", report.Count(category)))
	}

	if err != nil {
		return fmt.Errorf("cleaning model: %w", err)
	}
	if cfg.DryRun {
		output.Info(fmt.Sprintf("[DRY RUN] %d files would be removed", report.Total()))
		return nil
	}
	output.Success(fmt.Sprintf("Removed %d files", report.Removed))
	return nil
}

// runModel starts clean, mk and a detached rn
func runModel(ctx context.Context, cfg *config.Config) error {
	output.Info(fmt.Sprintf("Running model in %s", cfg.ModelDir))

	r := newRunner(cfg.ModelDir, runner.Options{Shell: cfg.Shell})
	result, err := r.Run(ctx)
	if err != nil {
		return fmt.Errorf("running model: %w", err)
	}

	output.Success(fmt.Sprintf("Run started (pid %d), output in %s", result.PID, result.Log))
	return nil
}
