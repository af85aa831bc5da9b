package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kiesman99/retile/internal/retile"
	"github.com/kiesman99/retile/pkg/tile"
)

var batchCmd = &cobra.Command{
	Use:   "batch MANIFEST",
	Short: "Run every job listed in a YAML manifest",
	Long: `Run every job listed in MANIFEST. Jobs either give an explicit ordering or
a seed to scramble with (set inverse to unscramble). A failing job does not
stop the others; all failures are reported at the end.

Example manifest:
  jobs:
    - input: page1.png
      output: out1.png
      tile: 2x2
      ordering: [1, 0, 3, 2]
    - input: page2.jpg
      output: out2.png
      tile: 64x64
      seed: 42
      inverse: true`,
	Args:    cobra.ExactArgs(1),
	PreRunE: bindLocalFlags,
	RunE: func(cmd *cobra.Command, args []string) error {
		manifest, err := retile.LoadManifest(appFs, args[0])
		if err != nil {
			return err
		}

		runner, err := newRunner()
		if err != nil {
			return err
		}

		return runner.Batch(cmd.Context(), manifest, viper.GetInt("concurrency"))
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringP("format", "f", "", "output format for every job (default: from output extension)")
	batchCmd.Flags().Int("quality", tile.DefaultJPEGQuality, "JPEG quality")
	batchCmd.Flags().IntP("concurrency", "c", 4, "jobs run at the same time")
}
