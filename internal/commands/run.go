package commands

import (
	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/starling/internal/config"
)

// RunCmd builds the model and starts it in the background
func RunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run ./clean and ./mk, then start ./rn in the background",
		Long: `Run the model's ./clean and ./mk scripts, then start ./rn detached
from the terminal with its output appended to nohup.out. The run keeps
going after starling exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := validate(cfg); err != nil {
				return err
			}
			return runModel(cmd.Context(), cfg)
		},
	}

	addModelFlags(cmd)
	cmd.Flags().String("shell", config.Default().Shell, "Shell used to run the model scripts")
	return cmd
}
