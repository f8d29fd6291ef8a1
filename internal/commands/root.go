package commands

import (
	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/starling"
	"github.com/simonhull/firebird-suite/starling/internal/config"
	"github.com/simonhull/firebird-suite/starling/internal/output"
)

// RootCmd creates and returns the root command for the starling CLI
func RootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "starling",
		Short: "Prepare and launch MESA stellar evolution models",
		Long: `starling points a MESA model directory at an installation, sets the
initial mass and metallicity, clears stale output and starts the run.

Settings come from flags, STARLING_* environment variables and
starling.yml, in that order. Run 'starling init' to write a config file.

  starling update --mass 2.5 --z 0.014
  starling patch --dry-run --diff
  starling clean`,
		Version:      starling.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
			output.SetWriter(cmd.OutOrStdout())
		},
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Config file (default ./"+config.FileName+")")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().String("log-level", config.Default().LogLevel, "Log level: debug, info, warn, error or silent")

	return cmd
}

// NewRootCmd returns the root command with every subcommand registered.
func NewRootCmd() *cobra.Command {
	cmd := RootCmd()
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(CheckCmd())
	cmd.AddCommand(PatchCmd())
	cmd.AddCommand(CleanCmd())
	cmd.AddCommand(RunCmd())
	cmd.AddCommand(InitCmd())
	cmd.AddCommand(VersionCmd())
	return cmd
}
